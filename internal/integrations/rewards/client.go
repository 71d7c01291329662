package rewards

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
)

// Client клиент для работы с RewardsService (купоны и накопленные минуты)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента RewardsService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetEligibility получает снапшот скидочных возможностей клиента
func (c *Client) GetEligibility(ctx context.Context, customerID int64) (domain.DiscountEligibility, error) {
	url := fmt.Sprintf("%s/internal/customers/%d/eligibility", c.baseURL, customerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.DiscountEligibility{}, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.DiscountEligibility{}, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		// Клиент без истории — пустой снапшот, это не ошибка
		return domain.DiscountEligibility{}, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return domain.DiscountEligibility{}, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var eligibility EligibilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&eligibility); err != nil {
		return domain.DiscountEligibility{}, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return eligibility.ToDomain(), nil
}

// ConsumeCoupons списывает купоны клиента.
// idempotencyKey привязывает списание к конкретной попытке бронирования:
// повторный запрос с тем же ключом не списывает купоны повторно.
func (c *Client) ConsumeCoupons(ctx context.Context, customerID int64, couponIDs []string, idempotencyKey string) error {
	if len(couponIDs) == 0 {
		return nil
	}

	url := fmt.Sprintf("%s/internal/customers/%d/coupons/consume", c.baseURL, customerID)
	return c.post(ctx, "ConsumeCoupons", url, consumeCouponsRequest{
		CouponIDs:      couponIDs,
		IdempotencyKey: idempotencyKey,
	})
}

// ReleaseCoupons возвращает ранее списанные купоны (компенсация саги)
func (c *Client) ReleaseCoupons(ctx context.Context, customerID int64, couponIDs []string, idempotencyKey string) error {
	if len(couponIDs) == 0 {
		return nil
	}

	url := fmt.Sprintf("%s/internal/customers/%d/coupons/release", c.baseURL, customerID)
	return c.post(ctx, "ReleaseCoupons", url, releaseCouponsRequest{
		CouponIDs:      couponIDs,
		IdempotencyKey: idempotencyKey,
	})
}

// DeductMinutes списывает накопленные минуты клиента
func (c *Client) DeductMinutes(ctx context.Context, customerID int64, minutes int, idempotencyKey string) error {
	if minutes <= 0 {
		return nil
	}

	url := fmt.Sprintf("%s/internal/customers/%d/minutes/deduct", c.baseURL, customerID)
	return c.post(ctx, "DeductMinutes", url, deductMinutesRequest{
		Minutes:        minutes,
		IdempotencyKey: idempotencyKey,
	})
}

// RefundMinutes возвращает ранее списанные минуты (компенсация саги)
func (c *Client) RefundMinutes(ctx context.Context, customerID int64, minutes int, idempotencyKey string) error {
	if minutes <= 0 {
		return nil
	}

	url := fmt.Sprintf("%s/internal/customers/%d/minutes/refund", c.baseURL, customerID)
	return c.post(ctx, "RefundMinutes", url, refundMinutesRequest{
		Minutes:        minutes,
		IdempotencyKey: idempotencyKey,
	})
}

// GetEligibilityWithGracefulDegradation получает снапшот скидок с graceful degradation.
// При недоступности RewardsService возвращает ErrServiceDegraded, что позволяет
// расчёту цены продолжить работу без скидок.
func (c *Client) GetEligibilityWithGracefulDegradation(ctx context.Context, customerID int64) (domain.DiscountEligibility, error) {
	c.log.Info("Fetching discount eligibility for customer_id=%d", customerID)

	eligibility, err := c.GetEligibility(ctx, customerID)
	if err != nil {
		// Недоступность сервиса, timeout, ошибки парсинга — деградируем до пустого снапшота.
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему.
		c.log.Error("RewardsService unavailable, applying graceful degradation for customer_id=%d: %v", customerID, err)
		return domain.DiscountEligibility{}, fmt.Errorf("%w: customer_id=%d, error=%v", ErrServiceDegraded, customerID, err)
	}

	c.log.Info("Successfully fetched eligibility for customer_id=%d: minutes=%d coupons=%d",
		customerID, eligibility.AccumulatedMinutes, len(eligibility.Coupons))
	return eligibility, nil
}

// post выполняет POST-запрос и транслирует статус-коды в ошибки клиента
func (c *Client) post(ctx context.Context, op, url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %s - marshal request: %v", ErrInternal, op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %s - create request: %v", ErrInternal, op, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s - execute request: %v", ErrInternal, op, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrCouponNotFound, op)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrInsufficientMinutes, op)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %s - unexpected status code %d: %s", ErrInvalidResponse, op, resp.StatusCode, string(respBody))
	}
}
