package intentcreate

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
	"github.com/kruenglish/course-platform/internal/models"
	"github.com/kruenglish/course-platform/internal/services/enrollment"
)

// MockService реализует интерфейс intentcreate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CreateIntent(ctx context.Context, req models.DummyIntent) (*enrollment.IntentResult, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*enrollment.IntentResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateIntentHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное создание намерения",
			body: `{"amount":390,"course_id":1,"user_email":"somchai@example.com","user_name":"Somchai"}`,
			setupMock: func(m *MockService) {
				m.On("CreateIntent", mock.Anything, mock.Anything).
					Return(&enrollment.IntentResult{ClientSecret: "pi_1_secret", PaymentIntentID: "pi_1"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"client_secret":"pi_1_secret"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{not json`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name:           "нулевая сумма не проходит валидацию",
			body:           `{"amount":0,"course_id":1,"user_email":"somchai@example.com","user_name":"Somchai"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"status":"Error"`,
		},
		{
			name:           "некорректный email не проходит валидацию",
			body:           `{"amount":390,"course_id":1,"user_email":"not-an-email","user_name":"Somchai"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"status":"Error"`,
		},
		{
			name: "несуществующий курс дает 404",
			body: `{"amount":390,"course_id":99,"user_email":"somchai@example.com","user_name":"Somchai"}`,
			setupMock: func(m *MockService) {
				m.On("CreateIntent", mock.Anything, mock.Anything).Return(nil, errs.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `course not found`,
		},
		{
			name: "ошибка платежного провайдера дает 502",
			body: `{"amount":390,"course_id":1,"user_email":"somchai@example.com","user_name":"Somchai"}`,
			setupMock: func(m *MockService) {
				m.On("CreateIntent", mock.Anything, mock.Anything).
					Return(nil, &errs.GatewayError{StatusCode: 500, Message: "provider down"})
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `payment provider unavailable`,
		},
		{
			name: "прочие ошибки дают 500",
			body: `{"amount":390,"course_id":1,"user_email":"somchai@example.com","user_name":"Somchai"}`,
			setupMock: func(m *MockService) {
				m.On("CreateIntent", mock.Anything, mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not create payment intent`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/payment-intents", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
