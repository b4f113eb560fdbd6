// Package enrollment содержит бизнес-логику оформления записи на курс:
// создание платёжного намерения, создание записи в статусе pending и
// её активацию после подтверждения оплаты провайдером.
//
// Это единственная многошаговая, чувствительная к порядку логика системы.
// Запись достигает статуса active только после явно наблюдаемого
// успешного статуса у провайдера, никогда оптимистично.
package enrollment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/kruenglish/course-platform/internal/lib/errs"
	"github.com/kruenglish/course-platform/internal/lib/sl"
	"github.com/kruenglish/course-platform/internal/models"
	"github.com/kruenglish/course-platform/internal/paymentprovider"
	"github.com/kruenglish/course-platform/internal/rabbitmq"
)

// Repository определяет методы хранилища, нужные воркфлоу записи.
type Repository interface {
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, req models.DummyUser) (*models.User, error)
	UpdateUserPaymentInfo(ctx context.Context, id int, customerID string, subscriptionID *string) (*models.User, error)
	GetCourse(ctx context.Context, id int) (*models.Course, error)
	CreateEnrollment(ctx context.Context, userID, courseID int, status, paymentIntentID string) (*models.Enrollment, error)
	GetEnrollmentByPaymentIntentID(ctx context.Context, paymentIntentID string) (*models.Enrollment, error)
	UpdateEnrollmentStatus(ctx context.Context, id int, status string) (*models.Enrollment, error)
	GetUserEnrollments(ctx context.Context, userID int) ([]*models.Enrollment, error)
}

// Provider определяет операции платёжного провайдера.
type Provider interface {
	CreatePaymentIntent(ctx context.Context, amountMajorUnits int, currency string, metadata map[string]string) (*paymentprovider.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, intentID string) (bool, error)
	CreateCustomer(ctx context.Context, email, name string) (string, error)
}

// Queue публикует уведомления. Допустим nil, тогда публикации нет.
type Queue interface {
	Publish(routingKey string, message any) error
}

// IntentResult результат создания платёжного намерения. ClientSecret
// передаётся клиенту для завершения оплаты напрямую с провайдером.
type IntentResult struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
}

// ConfirmResult результат подтверждения оплаты.
type ConfirmResult struct {
	Success      bool `json:"success"`
	EnrollmentID int  `json:"enrollment_id,omitempty"`
}

// Service реализует воркфлоу записи на курс.
type Service struct {
	repo     Repository
	provider Provider
	queue    Queue
	currency string
	log      *slog.Logger
}

// New создаёт новый Service.
func New(repo Repository, provider Provider, queue Queue, currency string, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		queue:    queue,
		currency: currency,
		log:      log,
	}
}

// CreateIntent создаёт платёжное намерение и запись на курс в статусе
// pending, привязанную к намерению. Пользователь находится по email или
// создаётся; создание в хранилище идемпотентно по email.
func (s *Service) CreateIntent(ctx context.Context, req models.DummyIntent) (*IntentResult, error) {
	const op = "enrollment.CreateIntent"

	course, err := s.repo.GetCourse(ctx, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.repo.GetUserByEmail(ctx, req.UserEmail)
	if errors.Is(err, errs.ErrNotFound) {
		user, err = s.repo.CreateUser(ctx, models.DummyUser{
			Email: req.UserEmail,
			Name:  req.UserName,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if user.PaymentCustomerID == nil {
		// Клиент у провайдера заводится лениво; неудача не блокирует оплату.
		customerID, custErr := s.provider.CreateCustomer(ctx, user.Email, user.Name)
		if custErr != nil {
			s.log.Warn("failed to create provider customer", sl.Err(custErr))
		} else if _, updErr := s.repo.UpdateUserPaymentInfo(ctx, user.ID, customerID, nil); updErr != nil {
			s.log.Warn("failed to store provider customer id", sl.Err(updErr))
		}
	}

	intent, err := s.provider.CreatePaymentIntent(ctx, req.Amount, s.currency, map[string]string{
		"course_id": strconv.Itoa(course.ID),
		"user_id":   strconv.Itoa(user.ID),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	enrollment, err := s.repo.CreateEnrollment(ctx, user.ID, course.ID, models.EnrollmentStatusPending, intent.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("created pending enrollment",
		slog.Int("enrollment_id", enrollment.ID),
		slog.Int("course_id", course.ID),
		slog.String("payment_intent_id", intent.ID))

	return &IntentResult{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	}, nil
}

// Confirm запрашивает статус оплаты у провайдера и при успехе активирует
// запись. Неуспешный статус провайдера — не ошибка, а "ещё не оплачено".
// Успешная оплата без локальной записи — ошибка целостности данных.
// Повторное подтверждение уже активной записи возвращает успех без
// второго перехода.
func (s *Service) Confirm(ctx context.Context, paymentIntentID string) (*ConfirmResult, error) {
	const op = "enrollment.Confirm"

	succeeded, err := s.provider.ConfirmPayment(ctx, paymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !succeeded {
		return &ConfirmResult{Success: false}, nil
	}

	enrollment, err := s.repo.GetEnrollmentByPaymentIntentID(ctx, paymentIntentID)
	if errors.Is(err, errs.ErrNotFound) {
		orphan := &errs.OrphanedPaymentError{PaymentIntentID: paymentIntentID}
		s.log.Error("payment succeeded but no enrollment record exists",
			slog.String("payment_intent_id", paymentIntentID))
		return nil, fmt.Errorf("%s: %w", op, orphan)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if enrollment.Status == models.EnrollmentStatusActive {
		return &ConfirmResult{Success: true, EnrollmentID: enrollment.ID}, nil
	}

	enrollment, err = s.repo.UpdateEnrollmentStatus(ctx, enrollment.ID, models.EnrollmentStatusActive)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("enrollment activated",
		slog.Int("enrollment_id", enrollment.ID),
		slog.String("payment_intent_id", paymentIntentID))

	s.publishConfirmation(ctx, enrollment)

	return &ConfirmResult{Success: true, EnrollmentID: enrollment.ID}, nil
}

// ListUserEnrollments возвращает записи пользователя вместе с данными курсов.
func (s *Service) ListUserEnrollments(ctx context.Context, userID int) ([]*models.EnrollmentWithCourse, error) {
	const op = "enrollment.ListUserEnrollments"

	enrollments, err := s.repo.GetUserEnrollments(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*models.EnrollmentWithCourse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		item := &models.EnrollmentWithCourse{Enrollment: *enrollment}
		course, err := s.repo.GetCourse(ctx, enrollment.CourseID)
		if err != nil {
			s.log.Warn("enrollment references missing course",
				slog.Int("enrollment_id", enrollment.ID),
				slog.Int("course_id", enrollment.CourseID))
		} else {
			item.Course = course
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *Service) publishConfirmation(ctx context.Context, enrollment *models.Enrollment) {
	if s.queue == nil {
		return
	}

	notification := models.EnrollmentNotification{EnrollmentID: enrollment.ID}
	if course, err := s.repo.GetCourse(ctx, enrollment.CourseID); err == nil {
		notification.CourseName = course.Name
		notification.Price = course.Price
	}
	if user, err := s.repo.GetUser(ctx, enrollment.UserID); err == nil {
		notification.UserName = user.Name
		notification.UserEmail = user.Email
	}

	if err := s.queue.Publish(rabbitmq.KeyEnrollment, notification); err != nil {
		s.log.Warn("failed to publish enrollment notification", sl.Err(err))
	}
}
