package models

import "time"

// Contact представляет входящее сообщение с формы обратной связи.
// Запись создаётся один раз и не изменяется.
type Contact struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// DummyContact используется для приёма сообщения из JSON-запроса.
type DummyContact struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty"`
	Message string  `json:"message" validate:"required"`
}
