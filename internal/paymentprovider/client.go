// Package paymentprovider реализует клиент платёжного провайдера Stripe.
//
// Клиент переводит доменные намерения ("списать столько-то за курс")
// в вызовы REST API провайдера и нормализует его ошибки в *errs.GatewayError.
// Повторных попыток клиент не делает: политика ретраев принадлежит вызывающему.
package paymentprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kruenglish/course-platform/internal/lib/errs"
)

// statusSucceeded единственный статус намерения, означающий успешную оплату.
const statusSucceeded = "succeeded"

// Client клиент Stripe API. Запросы кодируются формой, авторизация по
// секретному ключу.
type Client struct {
	secretKey  string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент Stripe.
func NewClient(secretKey string) *Client {
	return &Client{
		secretKey:  secretKey,
		apiURL:     "https://api.stripe.com/v1",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, form url.Values) (*http.Request, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if method == http.MethodPost {
		// Ключ идемпотентности защищает от двойного списания при повторе запроса.
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}
	return req, nil
}

func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &errs.GatewayError{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errs.GatewayError{StatusCode: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var provErr providerError
		if err := json.Unmarshal(raw, &provErr); err == nil && provErr.Error.Message != "" {
			return &errs.GatewayError{StatusCode: resp.StatusCode, Message: provErr.Error.Message}
		}
		return &errs.GatewayError{StatusCode: resp.StatusCode, Message: string(raw)}
	}

	if result != nil {
		if err := json.Unmarshal(raw, result); err != nil {
			return &errs.GatewayError{StatusCode: resp.StatusCode, Message: err.Error()}
		}
	}
	return nil
}

// CreatePaymentIntent создаёт платёжное намерение на сумму amountMajorUnits
// в целых единицах валюты. Провайдер принимает сумму в минимальных единицах,
// перевод (умножение на 100) выполняет сам клиент.
func (c *Client) CreatePaymentIntent(ctx context.Context, amountMajorUnits int, currency string, metadata map[string]string) (*PaymentIntent, error) {
	const op = "paymentprovider.CreatePaymentIntent"

	if amountMajorUnits <= 0 {
		return nil, fmt.Errorf("%s: amount must be positive, got %d", op, amountMajorUnits)
	}

	form := url.Values{}
	form.Set("amount", strconv.Itoa(amountMajorUnits*100))
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")
	for key, value := range metadata {
		form.Set("metadata["+key+"]", value)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/payment_intents", form)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var intent PaymentIntent
	if err := c.do(req, &intent); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if intent.ClientSecret == "" {
		return nil, fmt.Errorf("%s: %w", op, &errs.GatewayError{Message: "payment intent has no client secret"})
	}
	return &intent, nil
}

// ConfirmPayment запрашивает статус намерения у провайдера. Возвращает true
// только для статуса succeeded; любой другой статус, включая промежуточные
// pending и requires_action, даёт false без ошибки, чтобы вызывающий мог
// опрашивать повторно.
func (c *Client) ConfirmPayment(ctx context.Context, intentID string) (bool, error) {
	const op = "paymentprovider.ConfirmPayment"

	req, err := c.newRequest(ctx, http.MethodGet, "/payment_intents/"+url.PathEscape(intentID), nil)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	var intent PaymentIntent
	if err := c.do(req, &intent); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return intent.Status == statusSucceeded, nil
}

// CreateCustomer создаёт клиента у провайдера и возвращает его ID.
func (c *Client) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	const op = "paymentprovider.CreateCustomer"

	form := url.Values{}
	form.Set("email", email)
	form.Set("name", name)

	req, err := c.newRequest(ctx, http.MethodPost, "/customers", form)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var customer Customer
	if err := c.do(req, &customer); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return customer.ID, nil
}

// CreateRefund создаёт возврат по списанию. Уже возвращённое или
// несуществующее списание провайдер отклоняет, что приходит как GatewayError.
func (c *Client) CreateRefund(ctx context.Context, chargeID string) (*Refund, error) {
	const op = "paymentprovider.CreateRefund"

	form := url.Values{}
	form.Set("charge", chargeID)

	req, err := c.newRequest(ctx, http.MethodPost, "/refunds", form)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var refund Refund
	if err := c.do(req, &refund); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &refund, nil
}

// ListCharges возвращает список списаний, созданных после createdAfter.
func (c *Client) ListCharges(ctx context.Context, limit int, createdAfter time.Time) ([]Charge, error) {
	const op = "paymentprovider.ListCharges"

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	if !createdAfter.IsZero() {
		query.Set("created[gte]", strconv.FormatInt(createdAfter.Unix(), 10))
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/charges?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var list chargeList
	if err := c.do(req, &list); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list.Data, nil
}
