package models

// Типы курсов, доступные на платформе.
const (
	CourseTypeGeneral = "general"
	CourseTypeCEFR    = "cefr"
	CourseTypeCombo   = "combo"
)

// Course представляет покупаемый курс. Справочные данные, порядок
// элементов Features значим и должен сохраняться при сериализации.
type Course struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"` // general, cefr или combo
	Price       int      `json:"price"`
	Duration    string   `json:"duration"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	IsPopular   bool     `json:"is_popular"`
}

// DummyCourse используется для приёма данных нового курса из JSON-запроса.
type DummyCourse struct {
	Name        string   `json:"name" validate:"required"`
	Type        string   `json:"type" validate:"required,oneof=general cefr combo"`
	Price       int      `json:"price" validate:"required,gt=0"`
	Duration    string   `json:"duration" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Features    []string `json:"features" validate:"required"`
	IsPopular   bool     `json:"is_popular"`
}
