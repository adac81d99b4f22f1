package review

import (
	"fmt"
	"time"
)

const (
	MinGrade = 1
	MaxGrade = 5
)

// ParseGrade validates a review grade.
func ParseGrade(value int) (int, error) {
	if value < MinGrade || value > MaxGrade {
		return 0, fmt.Errorf("%w: grade %d is not in range %d..%d", ErrInvalidInput, value, MinGrade, MaxGrade)
	}
	return value, nil
}

// Review is a graded comment written by exactly one user about exactly one
// location.
type Review struct {
	UUID      string    `json:"uuid"`
	Comment   string    `json:"comment"`
	Grade     int       `json:"grade"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
