// Package assistant содержит чат-помощника по курсам. При отсутствии
// внешнего провайдера языковой модели ответы формируются по правилам.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kruenglish/course-platform/internal/lib/sl"
	"github.com/kruenglish/course-platform/internal/models"
)

const systemPrompt = `You are a helpful assistant for Kru English, an online English school.
Available courses: General English (390 THB/month, conversation practice with Thai and native teachers),
CEFR Platinum (590 THB/month, structured curriculum from A1 to B2 with certificates),
Combo Deluxe (1500 THB, both courses plus private lessons).
Answer questions about courses, pricing, schedules and the free level test.
Keep answers short and friendly. Answer in the language the user writes in.`

// Provider определяет операции провайдера языковой модели.
type Provider interface {
	ChatCompletion(ctx context.Context, systemPrompt, userMessage string, maxTokens int, temperature float64) (string, error)
}

// Repository определяет методы хранилища для рекомендации курса.
type Repository interface {
	GetAllCourses(ctx context.Context) ([]*models.Course, error)
}

// Service реализует чат-помощника. provider может быть nil, тогда
// используются встроенные ответы по ключевым словам.
type Service struct {
	provider Provider
	repo     Repository
	log      *slog.Logger
}

// New создаёт новый Service.
func New(provider Provider, repo Repository, log *slog.Logger) *Service {
	return &Service{provider: provider, repo: repo, log: log}
}

// Chat отвечает на сообщение пользователя. Ошибка внешнего провайдера не
// возвращается клиенту, вместо неё отдаётся встроенный ответ.
func (s *Service) Chat(ctx context.Context, message string) (string, error) {
	const op = "assistant.Chat"

	if message == "" {
		return "", fmt.Errorf("%s: empty message", op)
	}

	if s.provider != nil {
		reply, err := s.provider.ChatCompletion(ctx, systemPrompt, message, 500, 0.7)
		if err == nil {
			return reply, nil
		}
		s.log.Warn("language model request failed, using fallback", sl.Err(err))
	}

	return fallbackReply(message), nil
}

// RecommendCourse подбирает курс по уровню и целям пользователя.
func (s *Service) RecommendCourse(ctx context.Context, level, goal string) (*models.Course, string, error) {
	const op = "assistant.RecommendCourse"

	courses, err := s.repo.GetAllCourses(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	wantType := models.CourseTypeGeneral
	reason := "General English is the best starting point for everyday conversation practice."

	switch {
	case strings.EqualFold(level, "B1") || strings.EqualFold(level, "B2"):
		wantType = models.CourseTypeCEFR
		reason = "The CEFR Platinum course offers a structured path with certificates for intermediate learners."
	case strings.Contains(strings.ToLower(goal), "exam") || strings.Contains(strings.ToLower(goal), "certificate"):
		wantType = models.CourseTypeCEFR
		reason = "The CEFR Platinum course prepares you for certification with a structured curriculum."
	case strings.Contains(strings.ToLower(goal), "intensive") || strings.Contains(strings.ToLower(goal), "fast"):
		wantType = models.CourseTypeCombo
		reason = "The Combo Deluxe package combines both courses with private lessons for the fastest progress."
	}

	for _, course := range courses {
		if course.Type == wantType {
			return course, reason, nil
		}
	}
	return nil, "", fmt.Errorf("%s: no course of type %s", op, wantType)
}

func fallbackReply(message string) string {
	lower := strings.ToLower(message)

	switch {
	case containsAny(lower, "price", "cost", "ราคา", "เท่าไหร่", "бат", "baht", "thb"):
		return "General English is 390 THB/month, CEFR Platinum is 590 THB/month, and the Combo Deluxe package is 1500 THB. All courses include live online classes."
	case containsAny(lower, "level", "test", "ระดับ", "ทดสอบ"):
		return "You can take our free level test on the website. It takes about 10 minutes and tells you whether to start at A1, A2 or B1."
	case containsAny(lower, "schedule", "time", "when", "ตาราง", "เวลา"):
		return "Classes run every day. General English has daily conversation sessions, CEFR Platinum runs Monday to Friday. Check the schedule page for exact times."
	case containsAny(lower, "teacher", "ครู", "native"):
		return "Our teachers include both native English speakers and experienced Thai teachers, so you can learn with whoever suits you best."
	default:
		return "Hi! I can help you with our courses, pricing, schedules and the free level test. What would you like to know?"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
