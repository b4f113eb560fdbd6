package storage

import (
	"context"

	"github.com/kruenglish/course-platform/internal/models"
)

// Repository объединяет все операции хранилища. Реализуется
// Postgres-хранилищем и хранилищем в памяти, выбор делается при запуске.
type Repository interface {
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, req models.DummyUser) (*models.User, error)
	UpdateUserPaymentInfo(ctx context.Context, id int, customerID string, subscriptionID *string) (*models.User, error)
	CountUsers(ctx context.Context) (int, error)

	GetAllCourses(ctx context.Context) ([]*models.Course, error)
	GetCourse(ctx context.Context, id int) (*models.Course, error)
	CreateCourse(ctx context.Context, req models.DummyCourse) (*models.Course, error)

	CreateEnrollment(ctx context.Context, userID, courseID int, status, paymentIntentID string) (*models.Enrollment, error)
	GetUserEnrollments(ctx context.Context, userID int) ([]*models.Enrollment, error)
	GetEnrollmentByPaymentIntentID(ctx context.Context, paymentIntentID string) (*models.Enrollment, error)
	UpdateEnrollmentStatus(ctx context.Context, id int, status string) (*models.Enrollment, error)

	GetAllTeachers(ctx context.Context) ([]*models.Teacher, error)
	GetTeacher(ctx context.Context, id int) (*models.Teacher, error)
	CreateTeacher(ctx context.Context, req models.DummyTeacher) (*models.Teacher, error)
	GetSchedulesByCourseType(ctx context.Context, courseType string) ([]*models.Schedule, error)
	CreateSchedule(ctx context.Context, req models.DummySchedule) (*models.Schedule, error)

	CreateLevelTest(ctx context.Context, userID *int, level string, score int) (*models.LevelTest, error)
	GetUserLevelTests(ctx context.Context, userID int) ([]*models.LevelTest, error)

	CreateContact(ctx context.Context, req models.DummyContact) (*models.Contact, error)
	GetAllContacts(ctx context.Context) ([]*models.Contact, error)
}
