// Package course содержит логику каталога курсов с кэшированием.
package course

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kruenglish/course-platform/internal/lib/sl"
	"github.com/kruenglish/course-platform/internal/models"
)

const cacheTTL = time.Hour

// Repository определяет методы хранилища для каталога курсов.
type Repository interface {
	GetAllCourses(ctx context.Context) ([]*models.Course, error)
	GetCourse(ctx context.Context, id int) (*models.Course, error)
	CreateCourse(ctx context.Context, req models.DummyCourse) (*models.Course, error)
	GetSchedulesByCourseType(ctx context.Context, courseType string) ([]*models.Schedule, error)
	CreateSchedule(ctx context.Context, req models.DummySchedule) (*models.Schedule, error)
	GetTeacher(ctx context.Context, id int) (*models.Teacher, error)
	GetAllTeachers(ctx context.Context) ([]*models.Teacher, error)
	CreateTeacher(ctx context.Context, req models.DummyTeacher) (*models.Teacher, error)
}

// Cache определяет операции кэша каталога.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service реализует каталог курсов.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создаёт новый Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// GetAll возвращает все курсы, в первую очередь из кэша.
// Ошибки кэша не фатальны, запрос уходит в хранилище.
func (s *Service) GetAll(ctx context.Context) ([]*models.Course, error) {
	const op = "course.GetAll"

	var cached []*models.Course
	found, err := s.cache.Get(ctx, "courses:all", &cached)
	if err != nil {
		s.log.Warn("cache lookup failed", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	courses, err := s.repo.GetAllCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(ctx, "courses:all", courses, cacheTTL); err != nil {
		s.log.Warn("cache store failed", sl.Err(err))
	}
	return courses, nil
}

// Get возвращает курс по идентификатору.
func (s *Service) Get(ctx context.Context, id int) (*models.Course, error) {
	const op = "course.Get"

	key := fmt.Sprintf("course:%d", id)

	var cached models.Course
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("cache lookup failed", sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	course, err := s.repo.GetCourse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(ctx, key, course, cacheTTL); err != nil {
		s.log.Warn("cache store failed", sl.Err(err))
	}
	return course, nil
}

// Create добавляет новый курс и сбрасывает кэш списка.
func (s *Service) Create(ctx context.Context, req models.DummyCourse) (*models.Course, error) {
	const op = "course.Create"

	course, err := s.repo.CreateCourse(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Invalidate(ctx, "courses:all"); err != nil {
		s.log.Warn("cache invalidation failed", sl.Err(err))
	}
	return course, nil
}

// Schedules возвращает расписание занятий по типу курса вместе с
// данными преподавателей. Отсутствующий преподаватель не ошибка,
// слот возвращается без него.
func (s *Service) Schedules(ctx context.Context, courseType string) ([]*models.ScheduleWithTeacher, error) {
	const op = "course.Schedules"

	schedules, err := s.repo.GetSchedulesByCourseType(ctx, courseType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*models.ScheduleWithTeacher, 0, len(schedules))
	for _, schedule := range schedules {
		item := &models.ScheduleWithTeacher{Schedule: *schedule}
		if schedule.TeacherID != nil {
			teacher, err := s.repo.GetTeacher(ctx, *schedule.TeacherID)
			if err != nil {
				s.log.Warn("schedule references missing teacher",
					slog.Int("schedule_id", schedule.ID),
					slog.Int("teacher_id", *schedule.TeacherID))
			} else {
				item.Teacher = teacher
			}
		}
		result = append(result, item)
	}
	return result, nil
}

// CreateSchedule добавляет новый слот расписания. Ссылка на преподавателя
// проверяется, если передана.
func (s *Service) CreateSchedule(ctx context.Context, req models.DummySchedule) (*models.Schedule, error) {
	const op = "course.CreateSchedule"

	if req.TeacherID != nil {
		if _, err := s.repo.GetTeacher(ctx, *req.TeacherID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	schedule, err := s.repo.CreateSchedule(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return schedule, nil
}

// Teachers возвращает всех преподавателей.
func (s *Service) Teachers(ctx context.Context) ([]*models.Teacher, error) {
	const op = "course.Teachers"

	teachers, err := s.repo.GetAllTeachers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return teachers, nil
}

// CreateTeacher добавляет нового преподавателя.
func (s *Service) CreateTeacher(ctx context.Context, req models.DummyTeacher) (*models.Teacher, error) {
	const op = "course.CreateTeacher"

	teacher, err := s.repo.CreateTeacher(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return teacher, nil
}
