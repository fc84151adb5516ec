package book_from_waitlist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/velline/salon-booking-service/internal/api/handlers"
	"github.com/velline/salon-booking-service/internal/api/middleware"
	bookFromWaitlist "github.com/velline/salon-booking-service/internal/usecase/book_from_waitlist"
)

const (
	msgInvalidEntryID     = "некорректный ID записи листа ожидания"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingIdentity    = "отсутствует личность инициатора"
	msgEntryNotFound      = "запись листа ожидания не найдена"
	msgEntryNotPromoted   = "запись листа ожидания не получала приглашения"
	msgForbidden          = "бронирование по чужой записи листа ожидания запрещено"
	msgSlotTaken          = "предложенный слот уже занят"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase BookFromWaitlistUseCase
	logger  Logger
}

func NewHandler(useCase BookFromWaitlistUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/waitlist/{entryId}/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	entryID, err := strconv.ParseInt(mux.Vars(r)["entryId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /waitlist/{id}/book - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /waitlist/{id}/book - Missing actor identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req BookFromWaitlistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /waitlist/{id}/book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(entryID, actor)
	if err != nil {
		h.logger.Warn("POST /waitlist/{id}/book - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookFromWaitlist.ErrEntryNotFound):
			h.logger.Warn("POST /waitlist/{id}/book - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgEntryNotFound)

		case errors.Is(err, bookFromWaitlist.ErrEntryNotPromoted):
			h.logger.Warn("POST /waitlist/{id}/book - Entry not promoted: entry_id=%d", entryID)
			handlers.RespondConflict(w, msgEntryNotPromoted)

		case errors.Is(err, bookFromWaitlist.ErrForbidden):
			h.logger.Warn("POST /waitlist/{id}/book - Forbidden: entry_id=%d, actor_id=%d", entryID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookFromWaitlist.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /waitlist/{id}/book - Slot taken: entry_id=%d, staff_id=%d", entryID, req.StaffID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, bookFromWaitlist.ErrInvalidInput):
			h.logger.Warn("POST /waitlist/{id}/book - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /waitlist/{id}/book - Failed: entry_id=%d, error=%v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /waitlist/{id}/book - Booked from waitlist: entry_id=%d, reservation_id=%d",
		entryID, result.ReservationID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
