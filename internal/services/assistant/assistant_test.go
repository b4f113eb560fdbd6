package assistant

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kruenglish/course-platform/internal/models"
)

// MockProvider реализует интерфейс assistant.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) ChatCompletion(ctx context.Context, systemPrompt, userMessage string, maxTokens int, temperature float64) (string, error) {
	args := m.Called(ctx, systemPrompt, userMessage, maxTokens, temperature)
	return args.String(0), args.Error(1)
}

// MockRepository реализует интерфейс assistant.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]*models.Course), args.Error(1)
	}
	return nil, args.Error(1)
}

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

func testCourses() []*models.Course {
	return []*models.Course{
		{ID: 1, Name: "General English", Type: models.CourseTypeGeneral, Price: 390},
		{ID: 2, Name: "CEFR Platinum English", Type: models.CourseTypeCEFR, Price: 590},
		{ID: 3, Name: "Combo Small Group", Type: models.CourseTypeCombo, Price: 1500},
	}
}

func TestChat(t *testing.T) {
	t.Run("ответ провайдера возвращается как есть", func(t *testing.T) {
		provider := new(MockProvider)
		provider.On("ChatCompletion", mock.Anything, mock.Anything, "What courses do you have?", 500, 0.7).
			Return("We offer three courses.", nil)

		service := New(provider, new(MockRepository), testLogger)

		reply, err := service.Chat(context.Background(), "What courses do you have?")

		require.NoError(t, err)
		assert.Equal(t, "We offer three courses.", reply)
		provider.AssertExpectations(t)
	})

	t.Run("ошибка провайдера заменяется встроенным ответом", func(t *testing.T) {
		provider := new(MockProvider)
		provider.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything, 500, 0.7).
			Return("", errors.New("rate limited"))

		service := New(provider, new(MockRepository), testLogger)

		reply, err := service.Chat(context.Background(), "How much does it cost?")

		require.NoError(t, err)
		assert.Contains(t, reply, "390 THB")
	})

	t.Run("без провайдера работают ответы по ключевым словам", func(t *testing.T) {
		service := New(nil, new(MockRepository), testLogger)

		tests := []struct {
			message  string
			fragment string
		}{
			{"how much is the price", "390 THB"},
			{"ราคาเท่าไหร่", "390 THB"},
			{"can I take a level test", "free level test"},
			{"what is the schedule", "Classes run every day"},
			{"who are the teachers", "native English speakers"},
			{"hello", "What would you like to know?"},
		}

		for _, tt := range tests {
			reply, err := service.Chat(context.Background(), tt.message)
			require.NoError(t, err)
			assert.True(t, strings.Contains(reply, tt.fragment),
				"reply to %q should contain %q, got %q", tt.message, tt.fragment, reply)
		}
	})

	t.Run("пустое сообщение отклоняется", func(t *testing.T) {
		service := New(nil, new(MockRepository), testLogger)

		_, err := service.Chat(context.Background(), "")
		assert.Error(t, err)
	})
}

func TestRecommendCourse(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		goal     string
		wantType string
	}{
		{
			name:     "начальный уровень получает общий курс",
			level:    "A1",
			goal:     "speak with colleagues",
			wantType: models.CourseTypeGeneral,
		},
		{
			name:     "уровень B1 получает структурированный курс",
			level:    "B1",
			goal:     "",
			wantType: models.CourseTypeCEFR,
		},
		{
			name:     "цель сертификата получает структурированный курс",
			level:    "A2",
			goal:     "I need a certificate for work",
			wantType: models.CourseTypeCEFR,
		},
		{
			name:     "цель быстрого прогресса получает комбо",
			level:    "A2",
			goal:     "intensive study before my trip",
			wantType: models.CourseTypeCombo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("GetAllCourses", mock.Anything).Return(testCourses(), nil)

			service := New(nil, repo, testLogger)

			course, reason, err := service.RecommendCourse(context.Background(), tt.level, tt.goal)

			require.NoError(t, err)
			assert.Equal(t, tt.wantType, course.Type)
			assert.NotEmpty(t, reason)
		})
	}

	t.Run("ошибка хранилища возвращается вызывающему", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetAllCourses", mock.Anything).Return(nil, errors.New("db error"))

		service := New(nil, repo, testLogger)

		_, _, err := service.RecommendCourse(context.Background(), "A1", "")
		assert.Error(t, err)
	})
}
