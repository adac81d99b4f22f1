package location

import (
	"fmt"
	"strings"
	"time"
)

// Type is the location kind.
type Type string

const (
	TypePark  Type = "park"
	TypeField Type = "field"
)

// Size is the location size category.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeBig    Size = "big"
)

// ParseType validates a location type. Input is case-insensitive.
func ParseType(value string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(value))) {
	case TypePark:
		return TypePark, nil
	case TypeField:
		return TypeField, nil
	default:
		return "", fmt.Errorf("%w: type %q is not one of park, field", ErrInvalidInput, value)
	}
}

// ParseSize validates a location size. Input is case-insensitive.
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

// Point is a WGS84 coordinate pair.
type Point struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

type Location struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        Type   `json:"type"`
	Size        Size   `json:"size"`
	Point       Point  `json:"location"`

	// Grade is derived on read: the mean of attached review grades, 0 when
	// the location has no reviews.
	Grade float64 `json:"grade"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserScope restricts a search to locations the given user created or
// favorited.
type UserScope struct {
	UUID      string
	Created   bool
	Favorited bool
}

// DistanceScope restricts a search to locations within MaxKm kilometers of
// the given point.
type DistanceScope struct {
	Longitude float64
	Latitude  float64
	MaxKm     float64
}

// SearchOptions combine by logical AND. Zero values mean "no filter".
type SearchOptions struct {
	Name     string
	Type     Type
	Size     Size
	MinGrade int
	User     *UserScope
	Distance *DistanceScope
	Skip     int
	Limit    int
}
