package update_machine_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/service/machines"
	"github.com/m04kA/SMC-LaundryService/internal/service/machines/models"
)

const (
	msgInvalidMachineID   = "некорректный ID машины"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMachineNotFound    = "машина не найдена"
	msgInvalidStatus      = "недопустимый статус машины"
)

type Handler struct {
	service MachineService
	logger  Logger
}

func NewHandler(service MachineService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/machines/{machineId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	machineIDStr := vars["machineId"]

	machineID, err := strconv.ParseInt(machineIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /machines/{id}/status - Invalid machine ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMachineID)
		return
	}

	var req models.UpdateMachineStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /machines/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), machineID, &req)
	if err != nil {
		switch {
		case errors.Is(err, machines.ErrMachineNotFound):
			h.logger.Warn("PATCH /machines/{id}/status - Machine not found: machine_id=%d", machineID)
			handlers.RespondNotFound(w, msgMachineNotFound)

		case errors.Is(err, machines.ErrInvalidStatus):
			h.logger.Warn("PATCH /machines/{id}/status - Invalid status: machine_id=%d, status=%s", machineID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /machines/{id}/status - Failed to update status: machine_id=%d, error=%v", machineID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /machines/{id}/status - Status updated successfully: machine_id=%d, status=%s",
		machineID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
