package models

// EnrollmentNotification сообщение очереди о подтверждённой записи на курс.
type EnrollmentNotification struct {
	UserName     string `json:"user_name"`
	UserEmail    string `json:"user_email"`
	CourseName   string `json:"course_name"`
	Price        int    `json:"price"`
	EnrollmentID int    `json:"enrollment_id"`
}

// ContactNotification сообщение очереди о новом входящем сообщении.
type ContactNotification struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Message string  `json:"message"`
}

// LevelTestNotification сообщение очереди о результатах теста уровня.
type LevelTestNotification struct {
	UserName       string `json:"user_name"`
	UserEmail      string `json:"user_email"`
	Level          string `json:"level"`
	Score          int    `json:"score"`
	Recommendation string `json:"recommendation"`
}
