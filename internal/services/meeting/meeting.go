// Package meeting содержит управление онлайн-занятиями через
// провайдера видеоконференций.
package meeting

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kruenglish/course-platform/internal/lib/sl"
	"github.com/kruenglish/course-platform/internal/meetingprovider"
	"github.com/kruenglish/course-platform/internal/models"
)

// Provider определяет операции провайдера видеоконференций.
type Provider interface {
	CreateMeeting(ctx context.Context, req meetingprovider.CreateMeetingRequest) (*meetingprovider.Meeting, error)
	CreateClassMeeting(ctx context.Context, courseName, scheduleText string, durationMinutes int, recurrence *meetingprovider.Recurrence) (*meetingprovider.Meeting, error)
	GetMeeting(ctx context.Context, meetingID string) (*meetingprovider.Meeting, error)
	UpdateMeeting(ctx context.Context, meetingID string, patch meetingprovider.CreateMeetingRequest) error
	DeleteMeeting(ctx context.Context, meetingID string) error
	ListMeetings(ctx context.Context) ([]meetingprovider.Meeting, error)
	TestConnection(ctx context.Context) (string, error)
}

// Repository определяет методы хранилища для привязки занятий к расписанию.
type Repository interface {
	GetAllCourses(ctx context.Context) ([]*models.Course, error)
	GetSchedulesByCourseType(ctx context.Context, courseType string) ([]*models.Schedule, error)
}

// BulkItem результат создания одного занятия при массовом создании.
type BulkItem struct {
	CourseName string `json:"course_name"`
	Schedule   string `json:"schedule"`
	Success    bool   `json:"success"`
	MeetingID  int64  `json:"meeting_id,omitempty"`
	JoinURL    string `json:"join_url,omitempty"`
	Error      string `json:"error,omitempty"`
}

// BulkResult итог массового создания занятий.
type BulkResult struct {
	Total      int        `json:"total"`
	Successful int        `json:"successful"`
	Failed     int        `json:"failed"`
	Items      []BulkItem `json:"items"`
}

// Service реализует управление занятиями.
type Service struct {
	provider Provider
	repo     Repository
	log      *slog.Logger
}

// New создаёт новый Service.
func New(provider Provider, repo Repository, log *slog.Logger) *Service {
	return &Service{provider: provider, repo: repo, log: log}
}

// Create создаёт занятие для курса. Если структура повторения не задана,
// она выводится из текста расписания.
func (s *Service) Create(ctx context.Context, courseName, scheduleText string, durationMinutes int, recurrence *meetingprovider.Recurrence) (*meetingprovider.Meeting, error) {
	const op = "meeting.Create"

	meeting, err := s.provider.CreateClassMeeting(ctx, courseName, scheduleText, durationMinutes, recurrence)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("meeting created",
		slog.Int64("meeting_id", meeting.ID),
		slog.String("topic", meeting.Topic))
	return meeting, nil
}

// Get возвращает занятие по идентификатору.
func (s *Service) Get(ctx context.Context, meetingID string) (*meetingprovider.Meeting, error) {
	const op = "meeting.Get"

	meeting, err := s.provider.GetMeeting(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return meeting, nil
}

// Update изменяет параметры занятия.
func (s *Service) Update(ctx context.Context, meetingID string, patch meetingprovider.CreateMeetingRequest) error {
	const op = "meeting.Update"

	if err := s.provider.UpdateMeeting(ctx, meetingID, patch); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete удаляет занятие.
func (s *Service) Delete(ctx context.Context, meetingID string) error {
	const op = "meeting.Delete"

	if err := s.provider.DeleteMeeting(ctx, meetingID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// List возвращает предстоящие занятия аккаунта.
func (s *Service) List(ctx context.Context) ([]meetingprovider.Meeting, error) {
	const op = "meeting.List"

	meetings, err := s.provider.ListMeetings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return meetings, nil
}

// TestConnection проверяет доступность провайдера.
func (s *Service) TestConnection(ctx context.Context) (string, error) {
	const op = "meeting.TestConnection"

	account, err := s.provider.TestConnection(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return account, nil
}

// BulkCreate создаёт занятия для всех расписаний всех курсов. Неудача по
// одному расписанию не прерывает остальные, итог содержит оба счётчика.
func (s *Service) BulkCreate(ctx context.Context, durationMinutes int) (*BulkResult, error) {
	const op = "meeting.BulkCreate"

	courses, err := s.repo.GetAllCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &BulkResult{Items: []BulkItem{}}
	for _, course := range courses {
		schedules, err := s.repo.GetSchedulesByCourseType(ctx, course.Type)
		if err != nil {
			s.log.Warn("failed to load schedules for course",
				slog.String("course_type", course.Type), sl.Err(err))
			continue
		}

		for _, schedule := range schedules {
			scheduleText := fmt.Sprintf("%s %s-%s", schedule.DayOfWeek, schedule.StartTime, schedule.EndTime)
			item := BulkItem{CourseName: course.Name, Schedule: scheduleText}
			result.Total++

			meeting, err := s.provider.CreateClassMeeting(ctx, course.Name, scheduleText, durationMinutes, nil)
			if err != nil {
				item.Error = err.Error()
				result.Failed++
				s.log.Warn("failed to create meeting for schedule",
					slog.String("course", course.Name),
					slog.String("schedule", scheduleText),
					sl.Err(err))
			} else {
				item.Success = true
				item.MeetingID = meeting.ID
				item.JoinURL = meeting.JoinURL
				result.Successful++
			}
			result.Items = append(result.Items, item)
		}
	}

	s.log.Info("bulk meeting creation finished",
		slog.Int("total", result.Total),
		slog.Int("successful", result.Successful),
		slog.Int("failed", result.Failed))
	return result, nil
}
