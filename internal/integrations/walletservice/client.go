package walletservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с WalletService - внешним сервисом
// кошельков (debit/credit ledger). Планировщик не меняет балансы сам:
// он запрашивает достаточность средств и инициирует списания/возвраты.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента WalletService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetBalance получает текущий баланс кошелька пользователя
func (c *Client) GetBalance(ctx context.Context, userID int64) (float64, error) {
	url := fmt.Sprintf("%s/internal/users/%d/wallet", c.baseURL, userID)

	var balance Balance
	if err := c.doGet(ctx, url, &balance); err != nil {
		return 0, err
	}

	return balance.Balance, nil
}

// ValidateAffordability проверяет, хватает ли средств на сумму amount.
// Не меняет баланс; возвращает CanBook и размер недостачи.
func (c *Client) ValidateAffordability(ctx context.Context, userID int64, amount float64) (*AffordabilityResult, error) {
	url := fmt.Sprintf("%s/internal/users/%d/wallet/validate?amount=%.2f", c.baseURL, userID, amount)

	var result AffordabilityResult
	if err := c.doGet(ctx, url, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Debit списывает amount с кошелька пользователя.
// reference - идентификатор операции (например "appointment_42").
func (c *Client) Debit(ctx context.Context, userID int64, amount float64, reference string) error {
	url := fmt.Sprintf("%s/internal/users/%d/wallet/debit", c.baseURL, userID)
	return c.doTransfer(ctx, url, amount, reference)
}

// Credit зачисляет amount на кошелёк пользователя (возврат средств).
// reference - идентификатор операции (например "refund_appointment_42").
func (c *Client) Credit(ctx context.Context, userID int64, amount float64, reference string) error {
	url := fmt.Sprintf("%s/internal/users/%d/wallet/credit", c.baseURL, userID)
	return c.doTransfer(ctx, url, amount, reference)
}

// doGet выполняет GET-запрос и декодирует JSON-ответ
func (c *Client) doGet(ctx context.Context, url string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrUserNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

// doTransfer выполняет POST-запрос списания/зачисления
func (c *Client) doTransfer(ctx context.Context, url string, amount float64, reference string) error {
	payload, err := json.Marshal(transferRequest{
		Amount:    amount,
		Reference: reference,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrUserNotFound
	case http.StatusPaymentRequired, http.StatusConflict:
		return ErrInsufficientFunds
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var result transferResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if !result.Success {
		return fmt.Errorf("%w: transfer rejected, reference=%s", ErrInvalidResponse, reference)
	}

	c.log.Info("Wallet transfer completed: reference=%s, amount=%.2f, new_balance=%.2f",
		reference, amount, result.NewBalance)

	return nil
}
