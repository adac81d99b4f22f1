package tag

import (
	"fmt"
	"strings"
	"time"
)

// Color is one of the fixed tag palette values.
type Color string

const (
	ColorPrimary   Color = "primary"
	ColorSecondary Color = "secondary"
	ColorSuccess   Color = "success"
	ColorDanger    Color = "danger"
	ColorWarning   Color = "warning"
	ColorInfo      Color = "info"
	ColorLight     Color = "light"
	ColorDark      Color = "dark"
)

var palette = map[Color]struct{}{
	ColorPrimary:   {},
	ColorSecondary: {},
	ColorSuccess:   {},
	ColorDanger:    {},
	ColorWarning:   {},
	ColorInfo:      {},
	ColorLight:     {},
	ColorDark:      {},
}

// ParseColor validates a palette color.
func ParseColor(value string) (Color, error) {
	color := Color(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := palette[color]; !ok {
		return "", fmt.Errorf("%w: color %q is not in the palette", ErrInvalidInput, value)
	}
	return color, nil
}

// Tag is a named, colored label. The name is its natural unique key.
type Tag struct {
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	Color     Color     `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
