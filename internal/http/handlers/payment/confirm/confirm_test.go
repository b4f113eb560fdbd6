package confirm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kruenglish/course-platform/internal/lib/errs"
	"github.com/kruenglish/course-platform/internal/services/enrollment"
)

// MockService реализует интерфейс confirm.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Confirm(ctx context.Context, paymentIntentID string) (*enrollment.ConfirmResult, error) {
	args := m.Called(ctx, paymentIntentID)
	if res := args.Get(0); res != nil {
		return res.(*enrollment.ConfirmResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestConfirmHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное подтверждение активирует запись",
			body: `{"payment_intent_id":"pi_1"}`,
			setupMock: func(m *MockService) {
				m.On("Confirm", mock.Anything, "pi_1").
					Return(&enrollment.ConfirmResult{Success: true, EnrollmentID: 5}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"enrollment_id":5`,
		},
		{
			name:           "некорректный JSON",
			body:           `{not json`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name:           "пустой payment_intent_id не проходит валидацию",
			body:           `{"payment_intent_id":""}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"status":"Error"`,
		},
		{
			name: "незавершенная оплата дает 400 без активации",
			body: `{"payment_intent_id":"pi_pending"}`,
			setupMock: func(m *MockService) {
				m.On("Confirm", mock.Anything, "pi_pending").
					Return(&enrollment.ConfirmResult{Success: false}, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `payment has not succeeded`,
		},
		{
			name: "успешная оплата без записи дает 404",
			body: `{"payment_intent_id":"pi_lost"}`,
			setupMock: func(m *MockService) {
				m.On("Confirm", mock.Anything, "pi_lost").
					Return(nil, &errs.OrphanedPaymentError{PaymentIntentID: "pi_lost"})
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `no enrollment found for this payment`,
		},
		{
			name: "ошибка платежного провайдера дает 502",
			body: `{"payment_intent_id":"pi_1"}`,
			setupMock: func(m *MockService) {
				m.On("Confirm", mock.Anything, "pi_1").
					Return(nil, &errs.GatewayError{StatusCode: 500, Message: "provider down"})
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `payment provider unavailable`,
		},
		{
			name: "прочие ошибки дают 500",
			body: `{"payment_intent_id":"pi_1"}`,
			setupMock: func(m *MockService) {
				m.On("Confirm", mock.Anything, "pi_1").Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not confirm payment`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/payment-confirmations", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
