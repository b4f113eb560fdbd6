// Package models содержит доменные структуры платформы: пользователей,
// курсы, записи на курсы, преподавателей, расписания, тесты уровня и
// входящие сообщения. Для приёма данных из JSON-запросов используются
// вспомогательные Dummy*-структуры с тегами валидации.
package models

import "time"

// User представляет покупателя курса. Создаётся лениво при первой оплате,
// если пользователя с таким email ещё нет.
type User struct {
	ID                    int       `json:"id"`
	Email                 string    `json:"email"` // Уникальный, естественный ключ для поиска
	Name                  string    `json:"name"`
	Phone                 *string   `json:"phone,omitempty"`
	PaymentCustomerID     *string   `json:"payment_customer_id,omitempty"`     // ID клиента у платёжного провайдера
	PaymentSubscriptionID *string   `json:"payment_subscription_id,omitempty"` // ID подписки у платёжного провайдера
	CreatedAt             time.Time `json:"created_at"`
}

// DummyUser используется для приёма данных нового пользователя из JSON-запроса.
type DummyUser struct {
	Email string  `json:"email" validate:"required,email"`
	Name  string  `json:"name" validate:"required"`
	Phone *string `json:"phone,omitempty" validate:"omitempty"`
}
