package change_reservation_status

import (
	"errors"
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
	msgInvalidStatus        = "неизвестный статус записи"
	msgMissingIdentity      = "отсутствует личность инициатора"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "смена статуса доступна только персоналу"
	msgInvalidTransition    = "переход в запрошенный статус невозможен"
	msgFutureCompletion     = "нельзя завершить запись с будущей датой"
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

// Handle PATCH /api/v1/reservations/{reservationId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/status - Missing actor identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	newStatus := domain.ReservationStatus(req.Status)
	if !domain.ValidStatus(newStatus) {
		h.logger.Warn("PATCH /reservations/{id}/status - Unknown status: %q", req.Status)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
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
			h.logger.Warn("PATCH /reservations/{id}/status - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, changeStatus.ErrForbidden):
			h.logger.Warn("PATCH /reservations/{id}/status - Forbidden: reservation_id=%d, actor_id=%d, role=%s",
				reservationID, actor.ID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, changeStatus.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid transition: reservation_id=%d, new_status=%s",
				reservationID, newStatus)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, changeStatus.ErrFutureCompletion):
			h.logger.Warn("PATCH /reservations/{id}/status - Future completion: reservation_id=%d, new_status=%s",
				reservationID, newStatus)
			handlers.RespondBadRequest(w, msgFutureCompletion)

		case errors.Is(err, changeStatus.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /reservations/{id}/status - Failed: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/status - Status changed: reservation_id=%d, new_status=%s, changed=%t",
		reservationID, result.Status, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
