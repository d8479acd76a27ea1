package walletservice

// Balance модель баланса кошелька из WalletService
type Balance struct {
	UserID  int64   `json:"user_id"`
	Balance float64 `json:"balance"`
}

// AffordabilityResult результат проверки достаточности средств.
// Shortfall - сколько не хватает до требуемой суммы (0, если хватает).
type AffordabilityResult struct {
	CanBook        bool    `json:"can_book"`
	CurrentBalance float64 `json:"current_balance"`
	Shortfall      float64 `json:"shortfall"`
}

// transferRequest тело запроса на списание/зачисление
type transferRequest struct {
	Amount    float64 `json:"amount"`
	Reference string  `json:"reference"`
}

// transferResponse ответ на списание/зачисление
type transferResponse struct {
	Success    bool    `json:"success"`
	NewBalance float64 `json:"new_balance"`
}

// ErrorResponse модель ошибки от WalletService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
