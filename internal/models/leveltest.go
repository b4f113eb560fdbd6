package models

import "time"

// LevelTest представляет неизменяемую запись о пройденном тесте уровня.
// UserID может быть nil — тест доступен анонимно.
type LevelTest struct {
	ID          int       `json:"id"`
	UserID      *int      `json:"user_id,omitempty"`
	Level       string    `json:"level"` // CEFR-уровень: A1, A2, B1, ...
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completed_at"`
}

// DummyLevelTest используется для приёма результатов теста из JSON-запроса.
// Answers — упорядоченный список признаков правильности ответов.
type DummyLevelTest struct {
	UserID  *int   `json:"user_id,omitempty" validate:"omitempty"`
	Answers []bool `json:"answers" validate:"required"`
}
