package models

import "time"

// Статусы записи на курс. Запись создаётся в статусе pending и переходит
// в active только после подтверждённой провайдером успешной оплаты.
const (
	EnrollmentStatusPending   = "pending"
	EnrollmentStatusActive    = "active"
	EnrollmentStatusCompleted = "completed"
	EnrollmentStatusCancelled = "cancelled"
)

// Enrollment связывает пользователя, курс и попытку оплаты.
// Инвариант: на один payment intent существует ровно одна запись.
type Enrollment struct {
	ID              int        `json:"id"`
	UserID          int        `json:"user_id"`
	CourseID        int        `json:"course_id"`
	Status          string     `json:"status"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	PaymentIntentID string     `json:"payment_intent_id"`
}

// EnrollmentWithCourse объединяет запись с данными курса для выдачи клиенту.
type EnrollmentWithCourse struct {
	Enrollment
	Course *Course `json:"course,omitempty"`
}

// DummyIntent используется для приёма запроса на создание платёжного
// намерения из JSON. Сумма указывается в целых единицах валюты.
type DummyIntent struct {
	Amount    int    `json:"amount" validate:"required,gt=0"`
	CourseID  int    `json:"course_id" validate:"required"`
	UserEmail string `json:"user_email" validate:"required,email"`
	UserName  string `json:"user_name" validate:"required"`
}

// DummyConfirm используется для приёма запроса на подтверждение оплаты.
type DummyConfirm struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
}
