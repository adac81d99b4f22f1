package pet

import (
	"fmt"
	"strings"
	"time"
)

// Size is the pet size category.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeBig    Size = "big"
)

const (
	MinEnergy = 1
	MaxEnergy = 5

	DefaultEnergy = 3
	DefaultSize   = SizeMedium
)

// ParseSize validates a size value. Input is case-insensitive.
func ParseSize(value string) (Size, error) {
	switch Size(strings.ToLower(strings.TrimSpace(value))) {
	case SizeSmall:
		return SizeSmall, nil
	case SizeMedium:
		return SizeMedium, nil
	case SizeBig:
		return SizeBig, nil
	default:
		return "", fmt.Errorf("%w: size %q is not one of small, medium, big", ErrInvalidInput, value)
	}
}

// ParseEnergy validates an energy level.
func ParseEnergy(value int) (int, error) {
	if value < MinEnergy || value > MaxEnergy {
		return 0, fmt.Errorf("%w: energy %d is not in range %d..%d", ErrInvalidInput, value, MinEnergy, MaxEnergy)
	}
	return value, nil
}

type Pet struct {
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	Breed     string    `json:"breed"`
	Energy    int       `json:"energy"`
	Size      Size      `json:"size"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
