package run_reminders

import (
	"net/http"
	"time"

	"github.com/velline/salon-booking-service/internal/api/handlers"
	"github.com/velline/salon-booking-service/internal/api/middleware"
	runReminders "github.com/velline/salon-booking-service/internal/usecase/run_reminders"
)

const (
	msgMissingIdentity = "отсутствует личность инициатора"
	msgForbidden       = "запуск напоминаний доступен только персоналу"
)

// RemindersRunResponse HTTP response model
type RemindersRunResponse struct {
	Reminders24h   int `json:"reminders24h"`
	Reminders2h    int `json:"reminders2h"`
	ReviewRequests int `json:"reviewRequests"`
	Total          int `json:"total"`
}

type Handler struct {
	useCase RunRemindersUseCase
	logger  Logger
}

func NewHandler(useCase RunRemindersUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/internal/reminders/run
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /internal/reminders/run - Missing actor identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	if !actor.IsPrivileged() {
		h.logger.Warn("POST /internal/reminders/run - Forbidden: actor_id=%d, role=%s", actor.ID, actor.Role)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &runReminders.Request{Now: time.Now()})
	if err != nil {
		h.logger.Error("POST /internal/reminders/run - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /internal/reminders/run - Completed: 24h=%d, 2h=%d, reviews=%d",
		result.Reminders24h, result.Reminders2h, result.ReviewRequests)
	handlers.RespondJSON(w, http.StatusOK, &RemindersRunResponse{
		Reminders24h:   result.Reminders24h,
		Reminders2h:    result.Reminders2h,
		ReviewRequests: result.ReviewRequests,
		Total:          result.Total(),
	})
}
