package storage

import (
	"encoding/json"

	"github.com/kruenglish/course-platform/internal/models"
)

// rowScanner покрывает *sql.Row и *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCourse читает строку курса. Колонка features хранится как json-массив,
// порядок элементов сохраняется.
func scanCourse(row rowScanner) (*models.Course, error) {
	var course models.Course
	var features []byte
	if err := row.Scan(&course.ID, &course.Name, &course.Type, &course.Price,
		&course.Duration, &course.Description, &features, &course.IsPopular); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(features, &course.Features); err != nil {
		return nil, err
	}
	return &course, nil
}

func encodeFeatures(features []string) []byte {
	encoded, _ := json.Marshal(features)
	return encoded
}
