package cancel_reservation

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/velline/salon-booking-service/internal/api/handlers"
	"github.com/velline/salon-booking-service/internal/api/middleware"
	"github.com/velline/salon-booking-service/internal/domain"
	changeStatus "github.com/velline/salon-booking-service/internal/usecase/change_status"
)

const (
	msgInvalidReservationID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingIdentity      = "отсутствует личность инициатора"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "отмена чужой записи запрещена"
	msgCannotCancel         = "запись нельзя отменить в текущем статусе"
)

type Handler struct {
	useCase ChangeStatusUseCase
	logger  Logger
}

func NewHandler(useCase ChangeStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Missing actor identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req CancelReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Целевой статус определяется ролью инициатора
	newStatus := domain.StatusCancelledByClient
	if actor.IsPrivileged() {
		newStatus = domain.StatusCancelledByAdmin
	}

	result, err := h.useCase.Execute(r.Context(), &changeStatus.Request{
		ReservationID: reservationID,
		Actor:         actor,
		NewStatus:     newStatus,
		Reason:        req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, changeStatus.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, changeStatus.ErrForbidden):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Forbidden: reservation_id=%d, actor_id=%d", reservationID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, changeStatus.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid transition: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, changeStatus.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		default:
			h.logger.Error("PATCH /reservations/{id}/cancel - Failed: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/cancel - Cancelled: reservation_id=%d, actor_id=%d, waitlist_promoted=%t",
		reservationID, actor.ID, result.WaitlistPromoted)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
