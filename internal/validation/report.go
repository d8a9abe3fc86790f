package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/apperrors"
)

// ParseWindowDays parses the days query parameter of a report. An empty value returns 0,
// which selects the default window. Otherwise the value must lie in [1, maxDays].
func ParseWindowDays(param string, maxDays int) (int, error) {
	param = strings.TrimSpace(param)
	if param == "" {
		return 0, nil
	}

	days, err := strconv.Atoi(param)
	if err != nil {
		return 0, fmt.Errorf("%w: days must be a number", apperrors.ErrInvalidWindow)
	}
	if days < 1 || days > maxDays {
		return 0, fmt.Errorf("%w: days must be between 1 and %d", apperrors.ErrInvalidWindow, maxDays)
	}
	return days, nil
}
