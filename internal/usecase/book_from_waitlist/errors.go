package book_from_waitlist

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_from_waitlist: invalid input data")

	// ErrEntryNotFound возвращается, когда запись листа ожидания не найдена
	ErrEntryNotFound = errors.New("book_from_waitlist: waitlist entry not found")

	// ErrEntryNotPromoted возвращается, когда запись листа ожидания
	// не находится в статусе notified
	ErrEntryNotPromoted = errors.New("book_from_waitlist: waitlist entry is not in notified state")

	// ErrForbidden возвращается, когда запись листа ожидания принадлежит
	// другому клиенту
	ErrForbidden = errors.New("book_from_waitlist: entry belongs to another client")

	// ErrSlotNoLongerAvailable возвращается, когда освободившийся слот
	// успели занять до того, как приглашенный клиент его забронировал
	ErrSlotNoLongerAvailable = errors.New("book_from_waitlist: slot is no longer available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_from_waitlist: internal error")
)
