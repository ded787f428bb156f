package auth

// State is the lifecycle position of an account. It is derived, not stored.
type State string

const (
	StateUnregistered        State = "unregistered"
	StatePendingVerification State = "pending_verification"
	StateVerified            State = "verified"
)

// Event is a flow step that may move an account between states.
type Event string

const (
	EventRegister   Event = "register"
	EventLogin      Event = "login"
	EventResend     Event = "resend_verification"
	EventVerify     Event = "verify_email"
	EventOAuthLogin Event = "oauth_login"
)

type transitionKey struct {
	from  State
	event Event
}

var transitions = map[transitionKey]State{
	{StateUnregistered, EventRegister}:          StatePendingVerification,
	{StateUnregistered, EventOAuthLogin}:        StateVerified,
	{StatePendingVerification, EventResend}:     StatePendingVerification,
	{StatePendingVerification, EventVerify}:     StateVerified,
	{StatePendingVerification, EventOAuthLogin}: StateVerified,
	{StateVerified, EventLogin}:                 StateVerified,
	{StateVerified, EventOAuthLogin}:            StateVerified,
	// a token issued before an OAuth sign-in verified the account stays usable
	{StateVerified, EventVerify}:                StateVerified,
}

// rejections name the user-facing error for refused transitions.
var rejections = map[transitionKey]error{
	{StatePendingVerification, EventLogin}:    ErrUnverified,
	{StateVerified, EventResend}:              ErrAlreadyVerified,
	{StatePendingVerification, EventRegister}: ErrConflict,
	{StateVerified, EventRegister}:            ErrConflict,
	{StateUnregistered, EventLogin}:           ErrAccountNotFound,
	{StateUnregistered, EventResend}:          ErrAccountNotFound,
	{StateUnregistered, EventVerify}:          ErrAccountNotFound,
}

// StateOf derives the lifecycle state of acc. A nil account is Unregistered.
func StateOf(acc *Account) State {
	switch {
	case acc == nil:
		return StateUnregistered
	case acc.Verified:
		return StateVerified
	default:
		return StatePendingVerification
	}
}

// Transition returns the state reached by applying event in from.
func Transition(from State, event Event) (State, error) {
	key := transitionKey{from, event}
	if to, ok := transitions[key]; ok {
		return to, nil
	}
	if err, ok := rejections[key]; ok {
		return from, err
	}
	return from, ErrIllegalTransition
}
