package handler

import (
	"fmt"
	"strconv"
	"strings"
)

func parseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid int")
	}
	return parsed, nil
}

// pagination reads skip/limit query values with the list defaults.
func pagination(skipValue, limitValue string) (skip, limit int, err error) {
	skip, err = parseIntParam(skipValue, 0)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid skip")
	}
	limit, err = parseIntParam(limitValue, 100)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid limit")
	}
	return skip, limit, nil
}
