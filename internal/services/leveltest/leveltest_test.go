package leveltest

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kruenglish/course-platform/internal/models"
)

// MockRepository реализует интерфейс leveltest.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateLevelTest(ctx context.Context, userID *int, level string, score int) (*models.LevelTest, error) {
	args := m.Called(ctx, userID, level, score)
	if res := args.Get(0); res != nil {
		return res.(*models.LevelTest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetUserLevelTests(ctx context.Context, userID int) ([]*models.LevelTest, error) {
	args := m.Called(ctx, userID)
	if res := args.Get(0); res != nil {
		return res.([]*models.LevelTest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetUser(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func makeAnswers(correct, total int) []bool {
	answers := make([]bool, total)
	for i := 0; i < correct; i++ {
		answers[i] = true
	}
	return answers
}

func TestScore(t *testing.T) {
	tests := []struct {
		name          string
		answers       []bool
		expectedScore int
		expectedLevel string
	}{
		{
			name:          "пустой список ответов дает A1",
			answers:       []bool{},
			expectedScore: 0,
			expectedLevel: "A1",
		},
		{
			name:          "девять правильных ответов дает A1",
			answers:       makeAnswers(9, 20),
			expectedScore: 9,
			expectedLevel: "A1",
		},
		{
			name:          "десять правильных ответов дает A2",
			answers:       makeAnswers(10, 20),
			expectedScore: 10,
			expectedLevel: "A2",
		},
		{
			name:          "четырнадцать правильных ответов дает A2",
			answers:       makeAnswers(14, 20),
			expectedScore: 14,
			expectedLevel: "A2",
		},
		{
			name:          "пятнадцать правильных ответов дает B1",
			answers:       makeAnswers(15, 20),
			expectedScore: 15,
			expectedLevel: "B1",
		},
		{
			name:          "все ответы правильные дает B1",
			answers:       makeAnswers(20, 20),
			expectedScore: 20,
			expectedLevel: "B1",
		},
		{
			name:          "порядок ответов не влияет на результат",
			answers:       []bool{false, true, false, true, true, false, true, true, true, true, true, true, false},
			expectedScore: 9,
			expectedLevel: "A1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, level := Score(tt.answers)
			assert.Equal(t, tt.expectedScore, score)
			assert.Equal(t, tt.expectedLevel, level)
		})
	}
}

func TestRecommendation(t *testing.T) {
	assert.Contains(t, Recommendation("B1"), "CEFR Platinum")
	assert.Contains(t, Recommendation("A2"), "General English")
	assert.Contains(t, Recommendation("A1"), "General English")
}

func TestSubmit(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	t.Run("успешная отправка теста без пользователя", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("CreateLevelTest", mock.Anything, (*int)(nil), "A2", 11).
			Return(&models.LevelTest{ID: 1, Level: "A2", Score: 11}, nil)

		service := New(repo, nil, logger)

		result, err := service.Submit(context.Background(), models.DummyLevelTest{
			Answers: makeAnswers(11, 20),
		})

		require.NoError(t, err)
		assert.Equal(t, 11, result.Score)
		assert.Equal(t, "A2", result.Level)
		assert.NotEmpty(t, result.Recommendation)
		assert.Equal(t, 1, result.TestID)
		repo.AssertExpectations(t)
	})

	t.Run("ошибка хранилища возвращается наружу", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("CreateLevelTest", mock.Anything, (*int)(nil), "A1", 0).
			Return(nil, errors.New("db error"))

		service := New(repo, nil, logger)

		_, err := service.Submit(context.Background(), models.DummyLevelTest{Answers: []bool{}})
		assert.Error(t, err)
	})
}
