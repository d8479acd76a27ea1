package create_booking

import "errors"

var (
	// ErrHallNotFound возвращается, когда прачечная не найдена
	ErrHallNotFound = errors.New("create_booking: hall not found")

	// ErrUserNotFound возвращается, когда кошелёк пользователя не найден
	ErrUserNotFound = errors.New("create_booking: user wallet not found")

	// ErrInvalidDate возвращается при бронировании на прошедшую дату
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidTimeSlot возвращается, когда время слота некорректно
	// (уже прошло или услуга не помещается в рабочие часы прачечной)
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда на слот не хватает свободных машин
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInsufficientFunds возвращается, когда на кошельке не хватает средств
	ErrInsufficientFunds = errors.New("create_booking: insufficient funds")

	// ErrWalletUnavailable возвращается, когда сервис кошельков недоступен
	ErrWalletUnavailable = errors.New("create_booking: wallet service unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
