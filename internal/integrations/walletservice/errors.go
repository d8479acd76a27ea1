package walletservice

import "errors"

var (
	// ErrUserNotFound возвращается, когда кошелёк пользователя не найден
	ErrUserNotFound = errors.New("walletservice client: user not found")

	// ErrInsufficientFunds возвращается, когда на кошельке не хватает средств для списания
	ErrInsufficientFunds = errors.New("walletservice client: insufficient funds")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("walletservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("walletservice client: invalid response")
)
