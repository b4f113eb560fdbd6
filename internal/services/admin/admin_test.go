package admin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kruenglish/course-platform/internal/lib/errs"
	"github.com/kruenglish/course-platform/internal/lib/jwt"
	"github.com/kruenglish/course-platform/internal/lib/password"
	"github.com/kruenglish/course-platform/internal/paymentprovider"
)

// MockRepository реализует интерфейс admin.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockProvider реализует интерфейс admin.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) ListCharges(ctx context.Context, limit int, createdAfter time.Time) ([]paymentprovider.Charge, error) {
	args := m.Called(ctx, limit, createdAfter)
	if res := args.Get(0); res != nil {
		return res.([]paymentprovider.Charge), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProvider) CreateRefund(ctx context.Context, chargeID string) (*paymentprovider.Refund, error) {
	args := m.Called(ctx, chargeID)
	if res := args.Get(0); res != nil {
		return res.(*paymentprovider.Refund), args.Error(1)
	}
	return nil, args.Error(1)
}

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

func newTestService(t *testing.T, repo *MockRepository, provider *MockProvider) *Service {
	t.Helper()
	hash, err := password.GetHash("correct_password")
	require.NoError(t, err)
	maker := jwt.NewMaker("test_secret_key", 12*time.Hour)
	return New(repo, provider, maker, "admin", hash, testLogger)
}

func charge(id string, amount int64, status string, refunded bool) paymentprovider.Charge {
	c := paymentprovider.Charge{
		ID:       id,
		Amount:   amount,
		Currency: "thb",
		Status:   status,
		Refunded: refunded,
		Created:  1700000000,
	}
	c.BillingDetails.Email = "somchai@example.com"
	c.BillingDetails.Name = "Somchai"
	return c
}

func TestLogin(t *testing.T) {
	t.Run("верные учетные данные дают токен с ролью admin", func(t *testing.T) {
		service := newTestService(t, new(MockRepository), new(MockProvider))

		token, err := service.Login(context.Background(), "admin", "correct_password")

		require.NoError(t, err)
		assert.NotEmpty(t, token)

		maker := jwt.NewMaker("test_secret_key", 12*time.Hour)
		claims, err := maker.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("неверный пароль отклоняется", func(t *testing.T) {
		service := newTestService(t, new(MockRepository), new(MockProvider))

		_, err := service.Login(context.Background(), "admin", "wrong_password")

		var authErr *errs.AuthError
		assert.ErrorAs(t, err, &authErr)
	})

	t.Run("неверное имя пользователя отклоняется", func(t *testing.T) {
		service := newTestService(t, new(MockRepository), new(MockProvider))

		_, err := service.Login(context.Background(), "root", "correct_password")

		var authErr *errs.AuthError
		assert.ErrorAs(t, err, &authErr)
	})
}

func TestStats(t *testing.T) {
	t.Run("доход считается только по успешным невозвращенным платежам", func(t *testing.T) {
		repo := new(MockRepository)
		provider := new(MockProvider)
		service := newTestService(t, repo, provider)

		repo.On("CountUsers", mock.Anything).Return(42, nil)
		provider.On("ListCharges", mock.Anything, 100, mock.AnythingOfType("time.Time")).
			Return([]paymentprovider.Charge{
				charge("ch_1", 39000, "succeeded", false),
				charge("ch_2", 59000, "succeeded", true),
				charge("ch_3", 150000, "failed", false),
				charge("ch_4", 39000, "succeeded", false),
			}, nil)

		stats, err := service.Stats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 42, stats.TotalUsers)
		assert.Equal(t, int64(78000), stats.TotalRevenue)
		assert.Equal(t, 2, stats.PaymentCount)
		assert.Len(t, stats.RecentPayments, 2)
		assert.Equal(t, "ch_1", stats.RecentPayments[0].ID)

		repo.AssertExpectations(t)
		provider.AssertExpectations(t)
	})

	t.Run("ошибка провайдера прерывает сбор статистики", func(t *testing.T) {
		repo := new(MockRepository)
		provider := new(MockProvider)
		service := newTestService(t, repo, provider)

		repo.On("CountUsers", mock.Anything).Return(42, nil)
		provider.On("ListCharges", mock.Anything, 100, mock.AnythingOfType("time.Time")).
			Return(nil, errors.New("provider down"))

		_, err := service.Stats(context.Background())
		assert.Error(t, err)
	})
}

func TestPayments(t *testing.T) {
	t.Run("некорректный лимит заменяется значением по умолчанию", func(t *testing.T) {
		repo := new(MockRepository)
		provider := new(MockProvider)
		service := newTestService(t, repo, provider)

		provider.On("ListCharges", mock.Anything, 50, mock.AnythingOfType("time.Time")).
			Return([]paymentprovider.Charge{charge("ch_1", 39000, "succeeded", false)}, nil)

		payments, err := service.Payments(context.Background(), 0)

		require.NoError(t, err)
		require.Len(t, payments, 1)
		assert.Equal(t, "somchai@example.com", payments[0].CustomerEmail)

		provider.AssertExpectations(t)
	})

	t.Run("лимит в допустимых пределах передается провайдеру", func(t *testing.T) {
		repo := new(MockRepository)
		provider := new(MockProvider)
		service := newTestService(t, repo, provider)

		provider.On("ListCharges", mock.Anything, 25, mock.AnythingOfType("time.Time")).
			Return([]paymentprovider.Charge{}, nil)

		payments, err := service.Payments(context.Background(), 25)

		require.NoError(t, err)
		assert.Empty(t, payments)
	})
}

func TestRefund(t *testing.T) {
	t.Run("успешный возврат", func(t *testing.T) {
		repo := new(MockRepository)
		provider := new(MockProvider)
		service := newTestService(t, repo, provider)

		provider.On("CreateRefund", mock.Anything, "ch_1").
			Return(&paymentprovider.Refund{ID: "re_1", Amount: 39000, Status: "succeeded", ChargeID: "ch_1"}, nil)

		refund, err := service.Refund(context.Background(), "ch_1")

		require.NoError(t, err)
		assert.Equal(t, "re_1", refund.ID)
	})

	t.Run("ошибка провайдера возвращается вызывающему", func(t *testing.T) {
		repo := new(MockRepository)
		provider := new(MockProvider)
		service := newTestService(t, repo, provider)

		provider.On("CreateRefund", mock.Anything, "ch_missing").
			Return(nil, &errs.GatewayError{StatusCode: 404, Message: "no such charge"})

		_, err := service.Refund(context.Background(), "ch_missing")

		var gatewayErr *errs.GatewayError
		assert.ErrorAs(t, err, &gatewayErr)
	})
}
