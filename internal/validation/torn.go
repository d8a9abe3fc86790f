package validation

import (
	"strings"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/api/request"
)

// tornKeyLength is the length of every Torn API key.
const tornKeyLength = 16

// ValidateSetTornConfig checks the shape of a Torn API key.
func ValidateSetTornConfig(req request.SetTornConfigRequest) error {
	errors := make(map[string]string)

	key := strings.TrimSpace(req.APIKey)
	switch {
	case key == "":
		errors["apiKey"] = "api key is required"
	case len(key) != tornKeyLength:
		errors["apiKey"] = "api key must be 16 characters"
	case !isAlphanumeric(key):
		errors["apiKey"] = "api key must be alphanumeric"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
