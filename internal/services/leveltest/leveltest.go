// Package leveltest содержит оценку результата теста уровня языка.
package leveltest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kruenglish/course-platform/internal/lib/sl"
	"github.com/kruenglish/course-platform/internal/models"
	"github.com/kruenglish/course-platform/internal/rabbitmq"
)

// Пороговые значения уровней CEFR по числу правильных ответов.
const (
	thresholdB1 = 15
	thresholdA2 = 10
)

// Repository определяет методы хранилища для результатов теста.
type Repository interface {
	CreateLevelTest(ctx context.Context, userID *int, level string, score int) (*models.LevelTest, error)
	GetUserLevelTests(ctx context.Context, userID int) ([]*models.LevelTest, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
}

// Queue публикует уведомления. Допустим nil.
type Queue interface {
	Publish(routingKey string, message any) error
}

// Result результат прохождения теста.
type Result struct {
	Score          int    `json:"score"`
	Level          string `json:"level"`
	Recommendation string `json:"recommendation"`
	TestID         int    `json:"test_id,omitempty"`
}

// Service реализует обработку теста уровня.
type Service struct {
	repo  Repository
	queue Queue
	log   *slog.Logger
}

// New создаёт новый Service.
func New(repo Repository, queue Queue, log *slog.Logger) *Service {
	return &Service{repo: repo, queue: queue, log: log}
}

// Score подсчитывает число правильных ответов и определяет уровень.
func Score(answers []bool) (int, string) {
	score := 0
	for _, correct := range answers {
		if correct {
			score++
		}
	}

	switch {
	case score >= thresholdB1:
		return score, "B1"
	case score >= thresholdA2:
		return score, "A2"
	default:
		return score, "A1"
	}
}

// Recommendation возвращает рекомендацию курса для уровня.
func Recommendation(level string) string {
	switch level {
	case "B1":
		return "Your English is at an intermediate level. The CEFR Platinum course will help you reach B2 and beyond."
	case "A2":
		return "You have a solid foundation. We recommend the General English course to strengthen your skills."
	default:
		return "Start with the General English course to build your fundamentals step by step."
	}
}

// Submit оценивает ответы, сохраняет результат и публикует уведомление.
// UserID может отсутствовать, тест доступен без регистрации.
func (s *Service) Submit(ctx context.Context, req models.DummyLevelTest) (*Result, error) {
	const op = "leveltest.Submit"

	score, level := Score(req.Answers)

	test, err := s.repo.CreateLevelTest(ctx, req.UserID, level, score)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("level test completed",
		slog.Int("score", score),
		slog.String("level", level))

	s.publish(ctx, req.UserID, level, score)

	return &Result{
		Score:          score,
		Level:          level,
		Recommendation: Recommendation(level),
		TestID:         test.ID,
	}, nil
}

// History возвращает результаты тестов пользователя.
func (s *Service) History(ctx context.Context, userID int) ([]*models.LevelTest, error) {
	const op = "leveltest.History"

	tests, err := s.repo.GetUserLevelTests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tests, nil
}

func (s *Service) publish(ctx context.Context, userID *int, level string, score int) {
	if s.queue == nil || userID == nil {
		return
	}

	notification := models.LevelTestNotification{
		Level:          level,
		Score:          score,
		Recommendation: Recommendation(level),
	}
	if user, err := s.repo.GetUser(ctx, *userID); err == nil {
		notification.UserName = user.Name
		notification.UserEmail = user.Email
	}

	if err := s.queue.Publish(rabbitmq.KeyLevelTest, notification); err != nil {
		s.log.Warn("failed to publish level test notification", sl.Err(err))
	}
}
