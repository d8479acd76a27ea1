package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-LaundryService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgHallNotFound       = "прачечная не найдена"
	msgUserNotFound       = "кошелёк пользователя не найден"
	msgSlotNotAvailable   = "на выбранное время нет свободных машин"
	msgInsufficientFunds  = "недостаточно средств на кошельке"
	msgWalletUnavailable  = "сервис кошельков временно недоступен"
	msgInvalidDate        = "некорректная дата бронирования"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: user_id=%d, hall_id=%d", userID, req.HallID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrInsufficientFunds):
			h.logger.Warn("POST /appointments - Insufficient funds: user_id=%d, hall_id=%d", userID, req.HallID)
			handlers.RespondPaymentRequired(w, msgInsufficientFunds)

		case errors.Is(err, createBooking.ErrHallNotFound):
			h.logger.Warn("POST /appointments - Hall not found: hall_id=%d", req.HallID)
			handlers.RespondNotFound(w, msgHallNotFound)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /appointments - User wallet not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: user_id=%d, hall_id=%d", userID, req.HallID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid time slot: user_id=%d, hall_id=%d", userID, req.HallID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrWalletUnavailable):
			h.logger.Error("POST /appointments - Wallet unavailable: user_id=%d, error=%v", userID, err)
			handlers.RespondBadGateway(w, msgWalletUnavailable)

		default:
			h.logger.Error("POST /appointments - Failed to create appointments: user_id=%d, hall_id=%d, error=%v",
				userID, req.HallID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointments created successfully: user_id=%d, hall_id=%d, count=%d, total=%.2f",
		userID, req.HallID, len(result.Appointments), result.TotalCost)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
