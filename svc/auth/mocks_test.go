package auth_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/anihub/pkg/email"
	"github.com/dmitrymomot/anihub/svc/auth"
)

// MockAccountRepository is a mock implementation of auth.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (auth.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(auth.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (auth.Account, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(auth.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmailOrName(ctx context.Context, email, name string) (auth.Account, error) {
	args := m.Called(ctx, email, name)
	return args.Get(0).(auth.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, acc auth.Account) (auth.Account, error) {
	args := m.Called(ctx, acc)
	return args.Get(0).(auth.Account), args.Error(1)
}

func (m *MockAccountRepository) SetVerified(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAccountRepository) UpsertOAuth(ctx context.Context, in auth.OAuthAccount) (auth.Account, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(auth.Account), args.Error(1)
}

// MockVerificationStore is a mock implementation of auth.VerificationStore.
type MockVerificationStore struct {
	mock.Mock
}

func (m *MockVerificationStore) IssueFor(ctx context.Context, id uuid.UUID) (string, time.Time, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockVerificationStore) Consume(ctx context.Context, raw string) (uuid.UUID, error) {
	args := m.Called(ctx, raw)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// MockTokenIssuer is a mock implementation of auth.TokenIssuer.
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(c auth.Claims) (string, time.Time, error) {
	args := m.Called(c)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenIssuer) Verify(token string) (auth.Claims, error) {
	args := m.Called(token)
	return args.Get(0).(auth.Claims), args.Error(1)
}

// MockMetricsRecorder is a mock implementation of auth.MetricsRecorder.
type MockMetricsRecorder struct {
	mock.Mock
}

func (m *MockMetricsRecorder) ObserveOperation(operation, result string) {
	m.Called(operation, result)
}

func (m *MockMetricsRecorder) ObserveDispatchFailure() {
	m.Called()
}

// MockEmailSender is a mock implementation of email.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}
