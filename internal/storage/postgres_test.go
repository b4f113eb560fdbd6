package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kruenglish/course-platform/internal/lib/errs"
	"github.com/kruenglish/course-platform/internal/migrations"
	"github.com/kruenglish/course-platform/internal/models"
)

func setupTestDB(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	require.NoError(t, err, "failed to start container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(dsn)
	require.NoError(t, err, "failed to create storage")

	projectRoot, err := filepath.Abs("../..")
	require.NoError(t, err)
	err = migrations.Run(storage.DB, filepath.Join(projectRoot, "migrations"))
	require.NoError(t, err, "failed to run migrations")

	cleanup := func() {
		storage.DB.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return storage, cleanup
}

func TestStorageUsers(t *testing.T) {
	storage, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	user, err := storage.CreateUser(ctx, models.DummyUser{Email: "somchai@example.com", Name: "Somchai"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	t.Run("повторное создание с тем же email возвращает существующего", func(t *testing.T) {
		again, err := storage.CreateUser(ctx, models.DummyUser{Email: "somchai@example.com", Name: "Somchai S."})
		require.NoError(t, err)
		assert.Equal(t, user.ID, again.ID)

		count, err := storage.CountUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("поиск по email", func(t *testing.T) {
		found, err := storage.GetUserByEmail(ctx, "somchai@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)

		_, err = storage.GetUserByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("сохранение платежных идентификаторов", func(t *testing.T) {
		updated, err := storage.UpdateUserPaymentInfo(ctx, user.ID, "cus_123", nil)
		require.NoError(t, err)
		require.NotNil(t, updated.PaymentCustomerID)
		assert.Equal(t, "cus_123", *updated.PaymentCustomerID)
	})
}

func TestStorageCourses(t *testing.T) {
	storage, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("миграции наполняют каталог", func(t *testing.T) {
		courses, err := storage.GetAllCourses(ctx)
		require.NoError(t, err)
		require.Len(t, courses, 3)

		byType := map[string]*models.Course{}
		for _, c := range courses {
			byType[c.Type] = c
		}
		assert.Equal(t, 390, byType[models.CourseTypeGeneral].Price)
		assert.Equal(t, 590, byType[models.CourseTypeCEFR].Price)
		assert.Equal(t, 1500, byType[models.CourseTypeCombo].Price)
		assert.True(t, byType[models.CourseTypeCEFR].IsPopular)
		assert.NotEmpty(t, byType[models.CourseTypeGeneral].Features)
	})

	t.Run("создание нового курса", func(t *testing.T) {
		created, err := storage.CreateCourse(ctx, models.DummyCourse{
			Name:        "Business English",
			Type:        models.CourseTypeGeneral,
			Price:       790,
			Duration:    "1 month",
			Description: "English for the office",
			Features:    []string{"role play", "email writing"},
		})
		require.NoError(t, err)

		fetched, err := storage.GetCourse(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Business English", fetched.Name)
		assert.Equal(t, []string{"role play", "email writing"}, fetched.Features)
	})

	t.Run("несуществующий курс", func(t *testing.T) {
		_, err := storage.GetCourse(ctx, 9999)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestStorageTeachersAndSchedules(t *testing.T) {
	storage, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("создание преподавателя", func(t *testing.T) {
		created, err := storage.CreateTeacher(ctx, models.DummyTeacher{
			Name:      "Teacher Anna",
			Type:      "native",
			Specialty: "Conversation",
			Schedule:  "Mon-Wed 18:00-20:00",
			Bio:       "From London",
		})
		require.NoError(t, err)
		require.NotZero(t, created.ID)

		fetched, err := storage.GetTeacher(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Teacher Anna", fetched.Name)
		assert.Equal(t, "From London", fetched.Bio)
		assert.Empty(t, fetched.ImageURL)
	})

	t.Run("создание слота расписания с преподавателем", func(t *testing.T) {
		teacher, err := storage.CreateTeacher(ctx, models.DummyTeacher{
			Name:      "Teacher Ben",
			Type:      "native",
			Specialty: "Exam prep",
			Schedule:  "Sat 09:00-12:00",
		})
		require.NoError(t, err)

		link := "https://zoom.us/j/5551234"
		created, err := storage.CreateSchedule(ctx, models.DummySchedule{
			TeacherID:   &teacher.ID,
			CourseType:  models.CourseTypeCombo,
			DayOfWeek:   "Saturday",
			StartTime:   "09:00",
			EndTime:     "12:00",
			MeetingLink: &link,
		})
		require.NoError(t, err)
		require.NotZero(t, created.ID)

		schedules, err := storage.GetSchedulesByCourseType(ctx, models.CourseTypeCombo)
		require.NoError(t, err)
		require.NotEmpty(t, schedules)

		var found *models.Schedule
		for _, s := range schedules {
			if s.ID == created.ID {
				found = s
			}
		}
		require.NotNil(t, found)
		require.NotNil(t, found.TeacherID)
		assert.Equal(t, teacher.ID, *found.TeacherID)
		require.NotNil(t, found.MeetingLink)
		assert.Equal(t, link, *found.MeetingLink)
	})

	t.Run("слот без преподавателя", func(t *testing.T) {
		created, err := storage.CreateSchedule(ctx, models.DummySchedule{
			CourseType: models.CourseTypeCEFR,
			DayOfWeek:  "Sunday",
			StartTime:  "16:00",
			EndTime:    "18:00",
		})
		require.NoError(t, err)
		assert.Nil(t, created.TeacherID)
		assert.Nil(t, created.MeetingLink)
	})
}

func TestStorageEnrollments(t *testing.T) {
	storage, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	user, err := storage.CreateUser(ctx, models.DummyUser{Email: "malee@example.com", Name: "Malee"})
	require.NoError(t, err)

	courses, err := storage.GetAllCourses(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, courses)
	courseID := courses[0].ID

	enrollment, err := storage.CreateEnrollment(ctx, user.ID, courseID, models.EnrollmentStatusPending, "pi_100")
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusPending, enrollment.Status)

	t.Run("повторный intent нарушает уникальность", func(t *testing.T) {
		_, err := storage.CreateEnrollment(ctx, user.ID, courseID, models.EnrollmentStatusPending, "pi_100")
		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("поиск по payment intent", func(t *testing.T) {
		found, err := storage.GetEnrollmentByPaymentIntentID(ctx, "pi_100")
		require.NoError(t, err)
		assert.Equal(t, enrollment.ID, found.ID)

		_, err = storage.GetEnrollmentByPaymentIntentID(ctx, "pi_missing")
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("смена статуса сохраняется", func(t *testing.T) {
		updated, err := storage.UpdateEnrollmentStatus(ctx, enrollment.ID, models.EnrollmentStatusActive)
		require.NoError(t, err)
		assert.Equal(t, models.EnrollmentStatusActive, updated.Status)

		list, err := storage.GetUserEnrollments(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, models.EnrollmentStatusActive, list[0].Status)
	})
}

func TestStorageLevelTestsAndContacts(t *testing.T) {
	storage, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	user, err := storage.CreateUser(ctx, models.DummyUser{Email: "somchai@example.com", Name: "Somchai"})
	require.NoError(t, err)

	t.Run("тест уровня с пользователем и анонимный", func(t *testing.T) {
		withUser, err := storage.CreateLevelTest(ctx, &user.ID, "A2", 12)
		require.NoError(t, err)
		require.NotNil(t, withUser.UserID)

		anon, err := storage.CreateLevelTest(ctx, nil, "B1", 17)
		require.NoError(t, err)
		assert.Nil(t, anon.UserID)

		history, err := storage.GetUserLevelTests(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, "A2", history[0].Level)
	})

	t.Run("сообщения с формы", func(t *testing.T) {
		phone := "0812345678"
		_, err := storage.CreateContact(ctx, models.DummyContact{
			Name:    "Malee",
			Email:   "malee@example.com",
			Phone:   &phone,
			Message: "When does the next group start?",
		})
		require.NoError(t, err)

		contacts, err := storage.GetAllContacts(ctx)
		require.NoError(t, err)
		require.Len(t, contacts, 1)
		require.NotNil(t, contacts[0].Phone)
		assert.Equal(t, "0812345678", *contacts[0].Phone)
	})
}
