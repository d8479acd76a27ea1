package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/SMC-LaundryService/internal/usecase/get_available_slots"
)

const (
	msgInvalidHallID      = "некорректный ID прачечной"
	msgMissingServiceType = "тип услуги обязателен"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidLoadCount   = "некорректное количество загрузок"
	msgHallNotFound       = "прачечная не найдена"
	msgNoWashers          = "в прачечной нет стиральных машин"
	msgNoDryers           = "в прачечной нет сушильных машин"
	msgNoMachines         = "в прачечной нет ни стиральных, ни сушильных машин"
	msgInvalidInput       = "некорректные параметры запроса"
	msgDateInPast         = "дата уже прошла"
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

// Handle GET /api/v1/halls/{hallId}/available-slots
// Query params: serviceType (required: wash, dry, wash_dry), date (required, YYYY-MM-DD),
// loadCount (optional, default 1) - слоты считаются доступными только при
// наличии машин на все загрузки сразу
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	hallIDStr := vars["hallId"]
	hallID, err := strconv.ParseInt(hallIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /halls/{id}/available-slots - Invalid hall ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHallID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /halls/{id}/available-slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceType := r.URL.Query().Get("serviceType")
	if serviceType == "" {
		h.logger.Warn("GET /halls/{id}/available-slots - Missing service type")
		handlers.RespondBadRequest(w, msgMissingServiceType)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /halls/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	loadCount := 1
	if loadCountStr := r.URL.Query().Get("loadCount"); loadCountStr != "" {
		loadCount, err = strconv.Atoi(loadCountStr)
		if err != nil {
			h.logger.Warn("GET /halls/{id}/available-slots - Invalid load count: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLoadCount)
			return
		}
	}

	useCaseReq, err := ToUseCaseRequest(userID, hallID, serviceType, dateStr, loadCount)
	if err != nil {
		h.logger.Warn("GET /halls/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrHallNotFound):
			h.logger.Warn("GET /halls/{id}/available-slots - Hall not found: hall_id=%d", hallID)
			handlers.RespondNotFound(w, msgHallNotFound)

		case errors.Is(err, getAvailableSlots.ErrNoWashersInHall):
			h.logger.Warn("GET /halls/{id}/available-slots - No washers: hall_id=%d", hallID)
			handlers.RespondNotFound(w, msgNoWashers)

		case errors.Is(err, getAvailableSlots.ErrNoDryersInHall):
			h.logger.Warn("GET /halls/{id}/available-slots - No dryers: hall_id=%d", hallID)
			handlers.RespondNotFound(w, msgNoDryers)

		case errors.Is(err, getAvailableSlots.ErrNoMachinesInHall):
			h.logger.Warn("GET /halls/{id}/available-slots - No machines: hall_id=%d", hallID)
			handlers.RespondNotFound(w, msgNoMachines)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /halls/{id}/available-slots - Date in past: hall_id=%d, date=%s", hallID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /halls/{id}/available-slots - Invalid input: hall_id=%d, error=%v", hallID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /halls/{id}/available-slots - Failed to get slots: hall_id=%d, service=%s, error=%v",
				hallID, serviceType, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /halls/{id}/available-slots - Slots retrieved successfully: hall_id=%d, service=%s, slots_count=%d",
		hallID, serviceType, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
