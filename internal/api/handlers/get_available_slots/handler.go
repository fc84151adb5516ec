package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/velline/salon-booking-service/internal/api/handlers"
	"github.com/velline/salon-booking-service/internal/domain"
	getAvailableSlots "github.com/velline/salon-booking-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidStaffID    = "некорректный ID мастера"
	msgInvalidQuery      = "некорректные параметры запроса"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStaffNotFound     = "мастер не найден"
	msgInvalidDuration   = "некорректный тариф длительности услуги"
	msgServiceNotOffered = "мастер не оказывает выбранную услугу"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/available-slots?serviceId=&durationTierId=&date=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := strconv.ParseInt(mux.Vars(r)["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/available-slots - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	query := r.URL.Query()

	serviceID, err := strconv.ParseInt(query.Get("serviceId"), 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	durationTierID, err := strconv.ParseInt(query.Get("durationTierId"), 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		StaffID:        staffID,
		ServiceID:      serviceID,
		DurationTierID: durationTierID,
		Date:           date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
			h.logger.Warn("GET /staff/{id}/available-slots - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidServiceDuration):
			h.logger.Warn("GET /staff/{id}/available-slots - Invalid duration tier: tier_id=%d", durationTierID)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getAvailableSlots.ErrServiceNotOffered):
			h.logger.Warn("GET /staff/{id}/available-slots - Service not offered: staff_id=%d, service_id=%d", staffID, serviceID)
			handlers.RespondBadRequest(w, msgServiceNotOffered)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /staff/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /staff/{id}/available-slots - Failed: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/{id}/available-slots - %d slots for staff_id=%d, date=%s",
		len(result.Slots), staffID, query.Get("date"))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
