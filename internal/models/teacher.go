package models

// Teacher представляет преподавателя курса.
type Teacher struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"` // native или thai
	Specialty string `json:"specialty"`
	Schedule  string `json:"schedule"`
	Bio       string `json:"bio,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

// Schedule представляет повторяющийся слот занятия. Ссылка на преподавателя
// и ссылка на видеовстречу опциональны.
type Schedule struct {
	ID          int     `json:"id"`
	TeacherID   *int    `json:"teacher_id,omitempty"`
	CourseType  string  `json:"course_type"`
	DayOfWeek   string  `json:"day_of_week"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	MeetingLink *string `json:"meeting_link,omitempty"`
}

// DummyTeacher используется для приёма данных нового преподавателя из
// JSON-запроса.
type DummyTeacher struct {
	Name      string `json:"name" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=native thai"`
	Specialty string `json:"specialty" validate:"required"`
	Schedule  string `json:"schedule" validate:"required"`
	Bio       string `json:"bio"`
	ImageURL  string `json:"image_url"`
}

// DummySchedule используется для приёма нового слота расписания из
// JSON-запроса.
type DummySchedule struct {
	TeacherID   *int    `json:"teacher_id"`
	CourseType  string  `json:"course_type" validate:"required,oneof=general cefr combo"`
	DayOfWeek   string  `json:"day_of_week" validate:"required"`
	StartTime   string  `json:"start_time" validate:"required"`
	EndTime     string  `json:"end_time" validate:"required"`
	MeetingLink *string `json:"meeting_link"`
}

// ScheduleWithTeacher объединяет слот занятия с данными преподавателя.
type ScheduleWithTeacher struct {
	Schedule
	Teacher *Teacher `json:"teacher,omitempty"`
}
