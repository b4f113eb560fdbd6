// Package storage реализует хранилища данных платформы: основное на
// PostgreSQL и резервное в памяти для локального запуска и тестов.
// Оба предоставляют одинаковый набор методов; сервисы зависят от своих
// узких интерфейсов, поэтому реализации взаимозаменяемы.
package storage

import (
	"context"
	"sync"
	"time"

	"github.com/kruenglish/course-platform/internal/lib/errs"
	"github.com/kruenglish/course-platform/internal/models"
)

// Memory хранит все сущности в памяти процесса. Идентификаторы выдаются
// отдельной последовательностью на каждый тип сущности. Данные теряются
// при перезапуске процесса.
type Memory struct {
	mu sync.RWMutex

	users       map[int]*models.User
	courses     map[int]*models.Course
	enrollments map[int]*models.Enrollment
	teachers    map[int]*models.Teacher
	schedules   map[int]*models.Schedule
	levelTests  map[int]*models.LevelTest
	contacts    map[int]*models.Contact

	nextUserID       int
	nextCourseID     int
	nextEnrollmentID int
	nextTeacherID    int
	nextScheduleID   int
	nextLevelTestID  int
	nextContactID    int
}

// NewMemory создаёт хранилище в памяти, заполненное справочными данными:
// тремя курсами, двумя преподавателями и двумя слотами расписания.
func NewMemory() *Memory {
	m := &Memory{
		users:            make(map[int]*models.User),
		courses:          make(map[int]*models.Course),
		enrollments:      make(map[int]*models.Enrollment),
		teachers:         make(map[int]*models.Teacher),
		schedules:        make(map[int]*models.Schedule),
		levelTests:       make(map[int]*models.LevelTest),
		contacts:         make(map[int]*models.Contact),
		nextUserID:       1,
		nextCourseID:     1,
		nextEnrollmentID: 1,
		nextTeacherID:    1,
		nextScheduleID:   1,
		nextLevelTestID:  1,
		nextContactID:    1,
	}
	m.seed()
	return m
}

func (m *Memory) seed() {
	seedCourses := []models.Course{
		{
			Name:        "General English",
			Type:        models.CourseTypeGeneral,
			Price:       390,
			Duration:    "1 month",
			Description: "Daily classes, 2 hours each",
			Features:    []string{"Daily 2-hour classes", "Free study materials", "24/7 video replays"},
			IsPopular:   false,
		},
		{
			Name:        "CEFR Platinum English",
			Type:        models.CourseTypeCEFR,
			Price:       590,
			Duration:    "per month (4 months)",
			Description: "A1-B1 with certificate",
			Features:    []string{"120 class hours", "2 hours per week", "Placement test included", "Internationally recognized certificate"},
			IsPopular:   true,
		},
		{
			Name:        "Combo Small Group",
			Type:        models.CourseTypeCombo,
			Price:       1500,
			Duration:    "8 hours",
			Description: "Small groups of 5",
			Features:    []string{"Groups of 5 students only", "Conversation focused", "Grouped by level", "High personal attention"},
			IsPopular:   false,
		},
	}
	for i := range seedCourses {
		course := seedCourses[i]
		course.ID = m.nextCourseID
		m.nextCourseID++
		m.courses[course.ID] = &course
	}

	seedTeachers := []models.Teacher{
		{
			Name:      "Teacher John",
			Type:      "native",
			Specialty: "Pronunciation and accent",
			Schedule:  "Mon-Fri 19:00-21:00",
			Bio:       "Native English speaker from USA with 10+ years teaching experience",
		},
		{
			Name:      "Teacher Marisa",
			Type:      "thai",
			Specialty: "Grammar and sentence structure",
			Schedule:  "Sat-Sun 14:00-16:00",
			Bio:       "Thai teacher with over 8 years of English teaching experience",
		},
	}
	for i := range seedTeachers {
		teacher := seedTeachers[i]
		teacher.ID = m.nextTeacherID
		m.nextTeacherID++
		m.teachers[teacher.ID] = &teacher
	}

	link1 := "https://zoom.us/j/1234567890"
	link2 := "https://zoom.us/j/0987654321"
	teacher1, teacher2 := 1, 2
	seedSchedules := []models.Schedule{
		{TeacherID: &teacher1, CourseType: models.CourseTypeGeneral, DayOfWeek: "Monday", StartTime: "19:00", EndTime: "21:00", MeetingLink: &link1},
		{TeacherID: &teacher2, CourseType: models.CourseTypeCEFR, DayOfWeek: "Saturday", StartTime: "14:00", EndTime: "16:00", MeetingLink: &link2},
	}
	for i := range seedSchedules {
		schedule := seedSchedules[i]
		schedule.ID = m.nextScheduleID
		m.nextScheduleID++
		m.schedules[schedule.ID] = &schedule
	}
}

// ===== USERS =====

// GetUser возвращает пользователя по ID.
func (m *Memory) GetUser(_ context.Context, id int) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

// GetUserByEmail возвращает пользователя по email или errs.ErrNotFound.
func (m *Memory) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, errs.ErrNotFound
}

// CreateUser создаёт пользователя. Создание идемпотентно по email:
// при повторе возвращается уже существующая запись, а не ошибка.
func (m *Memory) CreateUser(_ context.Context, req models.DummyUser) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == req.Email {
			copied := *user
			return &copied, nil
		}
	}
	user := &models.User{
		ID:        m.nextUserID,
		Email:     req.Email,
		Name:      req.Name,
		Phone:     req.Phone,
		CreatedAt: time.Now(),
	}
	m.nextUserID++
	m.users[user.ID] = user
	copied := *user
	return &copied, nil
}

// UpdateUserPaymentInfo сохраняет идентификаторы клиента и подписки
// платёжного провайдера для пользователя.
func (m *Memory) UpdateUserPaymentInfo(_ context.Context, id int, customerID string, subscriptionID *string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	user.PaymentCustomerID = &customerID
	if subscriptionID != nil {
		user.PaymentSubscriptionID = subscriptionID
	}
	copied := *user
	return &copied, nil
}

// CountUsers возвращает число зарегистрированных пользователей.
func (m *Memory) CountUsers(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users), nil
}

// ===== COURSES =====

// GetAllCourses возвращает все курсы в порядке возрастания ID.
func (m *Memory) GetAllCourses(_ context.Context) ([]*models.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*models.Course, 0, len(m.courses))
	for id := 1; id < m.nextCourseID; id++ {
		if course, ok := m.courses[id]; ok {
			copied := *course
			result = append(result, &copied)
		}
	}
	return result, nil
}

// GetCourse возвращает курс по ID или errs.ErrNotFound.
func (m *Memory) GetCourse(_ context.Context, id int) (*models.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	course, ok := m.courses[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	copied := *course
	return &copied, nil
}

// CreateCourse добавляет новый курс и возвращает его.
func (m *Memory) CreateCourse(_ context.Context, req models.DummyCourse) (*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	course := &models.Course{
		ID:          m.nextCourseID,
		Name:        req.Name,
		Type:        req.Type,
		Price:       req.Price,
		Duration:    req.Duration,
		Description: req.Description,
		Features:    req.Features,
		IsPopular:   req.IsPopular,
	}
	m.nextCourseID++
	m.courses[course.ID] = course
	copied := *course
	return &copied, nil
}

// ===== ENROLLMENTS =====

// CreateEnrollment вставляет новую запись на курс.
func (m *Memory) CreateEnrollment(_ context.Context, userID, courseID int, status, paymentIntentID string) (*models.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, enrollment := range m.enrollments {
		if enrollment.PaymentIntentID == paymentIntentID {
			return nil, errs.ErrConflict
		}
	}
	enrollment := &models.Enrollment{
		ID:              m.nextEnrollmentID,
		UserID:          userID,
		CourseID:        courseID,
		Status:          status,
		StartDate:       time.Now(),
		PaymentIntentID: paymentIntentID,
	}
	m.nextEnrollmentID++
	m.enrollments[enrollment.ID] = enrollment
	copied := *enrollment
	return &copied, nil
}

// GetUserEnrollments возвращает записи пользователя в порядке создания.
func (m *Memory) GetUserEnrollments(_ context.Context, userID int) ([]*models.Enrollment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*models.Enrollment
	for id := 1; id < m.nextEnrollmentID; id++ {
		if enrollment, ok := m.enrollments[id]; ok && enrollment.UserID == userID {
			copied := *enrollment
			result = append(result, &copied)
		}
	}
	return result, nil
}

// GetEnrollmentByPaymentIntentID возвращает запись по идентификатору
// платёжного намерения или errs.ErrNotFound.
func (m *Memory) GetEnrollmentByPaymentIntentID(_ context.Context, paymentIntentID string) (*models.Enrollment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, enrollment := range m.enrollments {
		if enrollment.PaymentIntentID == paymentIntentID {
			copied := *enrollment
			return &copied, nil
		}
	}
	return nil, errs.ErrNotFound
}

// UpdateEnrollmentStatus переводит запись в новый статус.
func (m *Memory) UpdateEnrollmentStatus(_ context.Context, id int, status string) (*models.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	enrollment, ok := m.enrollments[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	enrollment.Status = status
	copied := *enrollment
	return &copied, nil
}

// ===== TEACHERS =====

// GetAllTeachers возвращает всех преподавателей.
func (m *Memory) GetAllTeachers(_ context.Context) ([]*models.Teacher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*models.Teacher, 0, len(m.teachers))
	for id := 1; id < m.nextTeacherID; id++ {
		if teacher, ok := m.teachers[id]; ok {
			copied := *teacher
			result = append(result, &copied)
		}
	}
	return result, nil
}

// GetTeacher возвращает преподавателя по ID.
func (m *Memory) GetTeacher(_ context.Context, id int) (*models.Teacher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	teacher, ok := m.teachers[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	copied := *teacher
	return &copied, nil
}

// CreateTeacher добавляет нового преподавателя и возвращает его.
func (m *Memory) CreateTeacher(_ context.Context, req models.DummyTeacher) (*models.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	teacher := &models.Teacher{
		ID:        m.nextTeacherID,
		Name:      req.Name,
		Type:      req.Type,
		Specialty: req.Specialty,
		Schedule:  req.Schedule,
		Bio:       req.Bio,
		ImageURL:  req.ImageURL,
	}
	m.nextTeacherID++
	m.teachers[teacher.ID] = teacher
	copied := *teacher
	return &copied, nil
}

// ===== SCHEDULES =====

// GetSchedulesByCourseType возвращает слоты расписания по типу курса.
func (m *Memory) GetSchedulesByCourseType(_ context.Context, courseType string) ([]*models.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*models.Schedule
	for id := 1; id < m.nextScheduleID; id++ {
		if schedule, ok := m.schedules[id]; ok && schedule.CourseType == courseType {
			copied := *schedule
			result = append(result, &copied)
		}
	}
	return result, nil
}

// CreateSchedule добавляет новый слот расписания и возвращает его.
func (m *Memory) CreateSchedule(_ context.Context, req models.DummySchedule) (*models.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	schedule := &models.Schedule{
		ID:          m.nextScheduleID,
		TeacherID:   req.TeacherID,
		CourseType:  req.CourseType,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MeetingLink: req.MeetingLink,
	}
	m.nextScheduleID++
	m.schedules[schedule.ID] = schedule
	copied := *schedule
	return &copied, nil
}

// ===== LEVEL TESTS =====

// CreateLevelTest вставляет запись о пройденном тесте уровня.
func (m *Memory) CreateLevelTest(_ context.Context, userID *int, level string, score int) (*models.LevelTest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	test := &models.LevelTest{
		ID:          m.nextLevelTestID,
		UserID:      userID,
		Level:       level,
		Score:       score,
		CompletedAt: time.Now(),
	}
	m.nextLevelTestID++
	m.levelTests[test.ID] = test
	copied := *test
	return &copied, nil
}

// GetUserLevelTests возвращает тесты уровня пользователя.
func (m *Memory) GetUserLevelTests(_ context.Context, userID int) ([]*models.LevelTest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*models.LevelTest
	for id := 1; id < m.nextLevelTestID; id++ {
		if test, ok := m.levelTests[id]; ok && test.UserID != nil && *test.UserID == userID {
			copied := *test
			result = append(result, &copied)
		}
	}
	return result, nil
}

// ===== CONTACTS =====

// CreateContact вставляет входящее сообщение.
func (m *Memory) CreateContact(_ context.Context, req models.DummyContact) (*models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	contact := &models.Contact{
		ID:        m.nextContactID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		CreatedAt: time.Now(),
	}
	m.nextContactID++
	m.contacts[contact.ID] = contact
	copied := *contact
	return &copied, nil
}

// GetAllContacts возвращает все входящие сообщения.
func (m *Memory) GetAllContacts(_ context.Context) ([]*models.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*models.Contact, 0, len(m.contacts))
	for id := 1; id < m.nextContactID; id++ {
		if contact, ok := m.contacts[id]; ok {
			copied := *contact
			result = append(result, &copied)
		}
	}
	return result, nil
}
