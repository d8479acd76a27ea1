package get_hall_machines

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/service/machines"
)

const (
	msgInvalidHallID = "некорректный ID прачечной"
	msgHallNotFound  = "прачечная не найдена"
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

// Handle GET /api/v1/halls/{hallId}/machines
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	hallIDStr := vars["hallId"]

	hallID, err := strconv.ParseInt(hallIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /halls/{id}/machines - Invalid hall ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHallID)
		return
	}

	result, err := h.service.GetByHall(r.Context(), hallID)
	if err != nil {
		switch {
		case errors.Is(err, machines.ErrHallNotFound):
			h.logger.Warn("GET /halls/{id}/machines - Hall not found: hall_id=%d", hallID)
			handlers.RespondNotFound(w, msgHallNotFound)

		default:
			h.logger.Error("GET /halls/{id}/machines - Failed to get machines: hall_id=%d, error=%v", hallID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /halls/{id}/machines - Machines retrieved successfully: hall_id=%d, count=%d",
		hallID, len(result.Machines))
	handlers.RespondJSON(w, http.StatusOK, result)
}
