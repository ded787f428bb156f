package logger

import "log/slog"

// Error returns an empty Attr for a nil error.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// AccountID records the account identifier under "account_id".
func AccountID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("account_id", id)
}

func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Operation(name string) slog.Attr {
	return slog.String("operation", name)
}

func Provider(name string) slog.Attr {
	return slog.String("provider", name)
}

func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
