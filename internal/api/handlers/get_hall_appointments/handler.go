package get_hall_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/service/appointments"
)

const (
	msgInvalidHallID = "некорректный ID прачечной"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/halls/{hallId}/appointments
// Query params: date (optional, YYYY-MM-DD), serviceType (optional), status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	hallIDStr := vars["hallId"]

	hallID, err := strconv.ParseInt(hallIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /halls/{id}/appointments - Invalid hall ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHallID)
		return
	}

	req, err := ToServiceRequest(hallID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /halls/{id}/appointments - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetHallAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /halls/{id}/appointments - Invalid filter: hall_id=%d, error=%v", hallID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /halls/{id}/appointments - Failed to get appointments: hall_id=%d, error=%v", hallID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /halls/{id}/appointments - Appointments retrieved successfully: hall_id=%d, count=%d",
		hallID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
