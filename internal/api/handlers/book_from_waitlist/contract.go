package book_from_waitlist

import (
	"context"

	bookFromWaitlist "github.com/velline/salon-booking-service/internal/usecase/book_from_waitlist"
)

type BookFromWaitlistUseCase interface {
	Execute(ctx context.Context, req *bookFromWaitlist.Request) (*bookFromWaitlist.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
