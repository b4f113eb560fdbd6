package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kruenglish/course-platform/internal/lib/errs"
	"github.com/kruenglish/course-platform/internal/models"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы со всеми сущностями платформы.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

// ===== USERS =====

// GetUser возвращает пользователя по ID.
func (s *Storage) GetUser(ctx context.Context, id int) (*models.User, error) {
	const op = "storage.GetUser"

	query := `SELECT id, email, name, phone, payment_customer_id, payment_subscription_id, created_at
			  FROM users WHERE id = $1`
	var user models.User
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Email, &user.Name,
		&user.Phone, &user.PaymentCustomerID, &user.PaymentSubscriptionID, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// GetUserByEmail возвращает пользователя по email или errs.ErrNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"

	query := `SELECT id, email, name, phone, payment_customer_id, payment_subscription_id, created_at
			  FROM users WHERE email = $1`
	var user models.User
	err := s.DB.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Email, &user.Name,
		&user.Phone, &user.PaymentCustomerID, &user.PaymentSubscriptionID, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// CreateUser создаёт пользователя. Уникальность email обеспечивается
// ограничением на уровне базы: при повторной вставке возвращается уже
// существующая строка, а не ошибка.
func (s *Storage) CreateUser(ctx context.Context, req models.DummyUser) (*models.User, error) {
	const op = "storage.CreateUser"

	query := `INSERT INTO users (email, name, phone)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
			  RETURNING id, email, name, phone, payment_customer_id, payment_subscription_id, created_at`
	var user models.User
	err := s.DB.QueryRowContext(ctx, query, req.Email, req.Name, req.Phone).Scan(&user.ID,
		&user.Email, &user.Name, &user.Phone, &user.PaymentCustomerID,
		&user.PaymentSubscriptionID, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// UpdateUserPaymentInfo сохраняет идентификаторы клиента и подписки
// платёжного провайдера.
func (s *Storage) UpdateUserPaymentInfo(ctx context.Context, id int, customerID string, subscriptionID *string) (*models.User, error) {
	const op = "storage.UpdateUserPaymentInfo"

	query := `UPDATE users
			  SET payment_customer_id = $2,
			      payment_subscription_id = COALESCE($3, payment_subscription_id)
			  WHERE id = $1
			  RETURNING id, email, name, phone, payment_customer_id, payment_subscription_id, created_at`
	var user models.User
	err := s.DB.QueryRowContext(ctx, query, id, customerID, subscriptionID).Scan(&user.ID,
		&user.Email, &user.Name, &user.Phone, &user.PaymentCustomerID,
		&user.PaymentSubscriptionID, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// CountUsers возвращает число зарегистрированных пользователей.
func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	const op = "storage.CountUsers"

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ===== COURSES =====

// GetAllCourses возвращает все курсы в порядке возрастания ID.
func (s *Storage) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	const op = "storage.GetAllCourses"

	query := `SELECT id, name, type, price, duration, description, features, is_popular
			  FROM courses ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetCourse возвращает курс по ID или errs.ErrNotFound.
func (s *Storage) GetCourse(ctx context.Context, id int) (*models.Course, error) {
	const op = "storage.GetCourse"

	query := `SELECT id, name, type, price, duration, description, features, is_popular
			  FROM courses WHERE id = $1`
	course, err := scanCourse(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return course, nil
}

// CreateCourse вставляет новый курс и возвращает его.
func (s *Storage) CreateCourse(ctx context.Context, req models.DummyCourse) (*models.Course, error) {
	const op = "storage.CreateCourse"

	query := `INSERT INTO courses (name, type, price, duration, description, features, is_popular)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, name, type, price, duration, description, features, is_popular`
	course, err := scanCourse(s.DB.QueryRowContext(ctx, query, req.Name, req.Type, req.Price,
		req.Duration, req.Description, encodeFeatures(req.Features), req.IsPopular))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return course, nil
}

// ===== ENROLLMENTS =====

// CreateEnrollment вставляет новую запись на курс. Уникальный индекс на
// payment_intent_id не допускает второй записи на один платёж.
func (s *Storage) CreateEnrollment(ctx context.Context, userID, courseID int, status, paymentIntentID string) (*models.Enrollment, error) {
	const op = "storage.CreateEnrollment"

	query := `INSERT INTO enrollments (user_id, course_id, status, payment_intent_id)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, user_id, course_id, status, start_date, end_date, payment_intent_id`
	var enrollment models.Enrollment
	err := s.DB.QueryRowContext(ctx, query, userID, courseID, status, paymentIntentID).Scan(
		&enrollment.ID, &enrollment.UserID, &enrollment.CourseID, &enrollment.Status,
		&enrollment.StartDate, &enrollment.EndDate, &enrollment.PaymentIntentID)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return nil, errs.ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &enrollment, nil
}

// GetUserEnrollments возвращает записи пользователя в порядке создания.
func (s *Storage) GetUserEnrollments(ctx context.Context, userID int) ([]*models.Enrollment, error) {
	const op = "storage.GetUserEnrollments"

	query := `SELECT id, user_id, course_id, status, start_date, end_date, payment_intent_id
			  FROM enrollments WHERE user_id = $1 ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		if err := rows.Scan(&enrollment.ID, &enrollment.UserID, &enrollment.CourseID,
			&enrollment.Status, &enrollment.StartDate, &enrollment.EndDate,
			&enrollment.PaymentIntentID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetEnrollmentByPaymentIntentID возвращает запись по идентификатору
// платёжного намерения или errs.ErrNotFound.
func (s *Storage) GetEnrollmentByPaymentIntentID(ctx context.Context, paymentIntentID string) (*models.Enrollment, error) {
	const op = "storage.GetEnrollmentByPaymentIntentID"

	query := `SELECT id, user_id, course_id, status, start_date, end_date, payment_intent_id
			  FROM enrollments WHERE payment_intent_id = $1`
	var enrollment models.Enrollment
	err := s.DB.QueryRowContext(ctx, query, paymentIntentID).Scan(&enrollment.ID,
		&enrollment.UserID, &enrollment.CourseID, &enrollment.Status,
		&enrollment.StartDate, &enrollment.EndDate, &enrollment.PaymentIntentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &enrollment, nil
}

// UpdateEnrollmentStatus переводит запись в новый статус.
func (s *Storage) UpdateEnrollmentStatus(ctx context.Context, id int, status string) (*models.Enrollment, error) {
	const op = "storage.UpdateEnrollmentStatus"

	query := `UPDATE enrollments SET status = $2 WHERE id = $1
			  RETURNING id, user_id, course_id, status, start_date, end_date, payment_intent_id`
	var enrollment models.Enrollment
	err := s.DB.QueryRowContext(ctx, query, id, status).Scan(&enrollment.ID,
		&enrollment.UserID, &enrollment.CourseID, &enrollment.Status,
		&enrollment.StartDate, &enrollment.EndDate, &enrollment.PaymentIntentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &enrollment, nil
}

// ===== TEACHERS =====

// GetAllTeachers возвращает всех преподавателей.
func (s *Storage) GetAllTeachers(ctx context.Context) ([]*models.Teacher, error) {
	const op = "storage.GetAllTeachers"

	query := `SELECT id, name, type, specialty, schedule, COALESCE(bio, ''), COALESCE(image_url, '')
			  FROM teachers ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Teacher
	for rows.Next() {
		var teacher models.Teacher
		if err := rows.Scan(&teacher.ID, &teacher.Name, &teacher.Type, &teacher.Specialty,
			&teacher.Schedule, &teacher.Bio, &teacher.ImageURL); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &teacher)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetTeacher возвращает преподавателя по ID.
func (s *Storage) GetTeacher(ctx context.Context, id int) (*models.Teacher, error) {
	const op = "storage.GetTeacher"

	query := `SELECT id, name, type, specialty, schedule, COALESCE(bio, ''), COALESCE(image_url, '')
			  FROM teachers WHERE id = $1`
	var teacher models.Teacher
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&teacher.ID, &teacher.Name, &teacher.Type,
		&teacher.Specialty, &teacher.Schedule, &teacher.Bio, &teacher.ImageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &teacher, nil
}

// CreateTeacher вставляет нового преподавателя и возвращает его.
func (s *Storage) CreateTeacher(ctx context.Context, req models.DummyTeacher) (*models.Teacher, error) {
	const op = "storage.CreateTeacher"

	query := `INSERT INTO teachers (name, type, specialty, schedule, bio, image_url)
			  VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))
			  RETURNING id, name, type, specialty, schedule, COALESCE(bio, ''), COALESCE(image_url, '')`
	var teacher models.Teacher
	err := s.DB.QueryRowContext(ctx, query, req.Name, req.Type, req.Specialty,
		req.Schedule, req.Bio, req.ImageURL).Scan(&teacher.ID, &teacher.Name, &teacher.Type,
		&teacher.Specialty, &teacher.Schedule, &teacher.Bio, &teacher.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &teacher, nil
}

// ===== SCHEDULES =====

// GetSchedulesByCourseType возвращает слоты расписания по типу курса.
func (s *Storage) GetSchedulesByCourseType(ctx context.Context, courseType string) ([]*models.Schedule, error) {
	const op = "storage.GetSchedulesByCourseType"

	query := `SELECT id, teacher_id, course_type, day_of_week, start_time, end_time, meeting_link
			  FROM schedules WHERE course_type = $1 ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, courseType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Schedule
	for rows.Next() {
		var schedule models.Schedule
		if err := rows.Scan(&schedule.ID, &schedule.TeacherID, &schedule.CourseType,
			&schedule.DayOfWeek, &schedule.StartTime, &schedule.EndTime,
			&schedule.MeetingLink); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateSchedule вставляет новый слот расписания и возвращает его.
func (s *Storage) CreateSchedule(ctx context.Context, req models.DummySchedule) (*models.Schedule, error) {
	const op = "storage.CreateSchedule"

	query := `INSERT INTO schedules (teacher_id, course_type, day_of_week, start_time, end_time, meeting_link)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, teacher_id, course_type, day_of_week, start_time, end_time, meeting_link`
	var schedule models.Schedule
	err := s.DB.QueryRowContext(ctx, query, req.TeacherID, req.CourseType, req.DayOfWeek,
		req.StartTime, req.EndTime, req.MeetingLink).Scan(&schedule.ID, &schedule.TeacherID,
		&schedule.CourseType, &schedule.DayOfWeek, &schedule.StartTime, &schedule.EndTime,
		&schedule.MeetingLink)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &schedule, nil
}

// ===== LEVEL TESTS =====

// CreateLevelTest вставляет запись о пройденном тесте уровня.
func (s *Storage) CreateLevelTest(ctx context.Context, userID *int, level string, score int) (*models.LevelTest, error) {
	const op = "storage.CreateLevelTest"

	query := `INSERT INTO level_tests (user_id, level, score)
			  VALUES ($1, $2, $3)
			  RETURNING id, user_id, level, score, completed_at`
	var test models.LevelTest
	err := s.DB.QueryRowContext(ctx, query, userID, level, score).Scan(&test.ID, &test.UserID,
		&test.Level, &test.Score, &test.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &test, nil
}

// GetUserLevelTests возвращает тесты уровня пользователя.
func (s *Storage) GetUserLevelTests(ctx context.Context, userID int) ([]*models.LevelTest, error) {
	const op = "storage.GetUserLevelTests"

	query := `SELECT id, user_id, level, score, completed_at
			  FROM level_tests WHERE user_id = $1 ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.LevelTest
	for rows.Next() {
		var test models.LevelTest
		if err := rows.Scan(&test.ID, &test.UserID, &test.Level, &test.Score, &test.CompletedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &test)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ===== CONTACTS =====

// CreateContact вставляет входящее сообщение.
func (s *Storage) CreateContact(ctx context.Context, req models.DummyContact) (*models.Contact, error) {
	const op = "storage.CreateContact"

	query := `INSERT INTO contacts (name, email, phone, message)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, name, email, phone, message, created_at`
	var contact models.Contact
	err := s.DB.QueryRowContext(ctx, query, req.Name, req.Email, req.Phone, req.Message).Scan(
		&contact.ID, &contact.Name, &contact.Email, &contact.Phone, &contact.Message,
		&contact.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &contact, nil
}

// GetAllContacts возвращает все входящие сообщения.
func (s *Storage) GetAllContacts(ctx context.Context) ([]*models.Contact, error) {
	const op = "storage.GetAllContacts"

	query := `SELECT id, name, email, phone, message, created_at FROM contacts ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Contact
	for rows.Next() {
		var contact models.Contact
		if err := rows.Scan(&contact.ID, &contact.Name, &contact.Email, &contact.Phone,
			&contact.Message, &contact.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
