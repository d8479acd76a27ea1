package get_user_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/service/appointments/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments
// Query params: upcoming (optional, "true" - только будущие заявки)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	upcomingOnly := r.URL.Query().Get("upcoming") == "true"

	result, err := h.service.GetUserAppointments(r.Context(), &models.GetUserAppointmentsRequest{
		UserID:       userID,
		UpcomingOnly: upcomingOnly,
	})
	if err != nil {
		h.logger.Error("GET /appointments - Failed to get appointments: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved successfully: user_id=%d, count=%d",
		userID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
