package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/apperrors"
)

func TestValidateUUID(t *testing.T) {
	if err := ValidateUUID("550e8400-e29b-41d4-a716-446655440000"); err != nil {
		t.Errorf("Expected valid UUID, got %v", err)
	}
	if err := ValidateUUID("not-a-uuid"); !errors.Is(err, apperrors.ErrInvalidUUID) {
		t.Errorf("Expected ErrInvalidUUID, got %v", err)
	}
}

func TestValidateCreateSnapshot(t *testing.T) {
	t.Run("accepts zero and positive quantities", func(t *testing.T) {
		if err := ValidateCreateSnapshot(request.CreateSnapshotRequest{"286": 1, "287": 0}); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("rejects empty snapshot", func(t *testing.T) {
		var verr *Error
		if err := ValidateCreateSnapshot(request.CreateSnapshotRequest{}); !errors.As(err, &verr) {
			t.Fatalf("Expected *Error, got %v", err)
		}
		if _, ok := verr.Fields["items"]; !ok {
			t.Errorf("Expected items field error, got %v", verr.Fields)
		}
	})

	t.Run("reports bad ids and negative quantities per item", func(t *testing.T) {
		err := ValidateCreateSnapshot(request.CreateSnapshotRequest{"abc": 1, "286": -2, "0": 1})

		var verr *Error
		if !errors.As(err, &verr) {
			t.Fatalf("Expected *Error, got %v", err)
		}
		for _, field := range []string{"abc", "286", "0"} {
			if _, ok := verr.Fields[field]; !ok {
				t.Errorf("Expected error for %q, got %v", field, verr.Fields)
			}
		}
	})
}

func TestValidateSetTornConfig(t *testing.T) {
	cases := []struct {
		key   string
		valid bool
	}{
		{"abcdEFGH12345678", true},
		{"", false},
		{"short", false},
		{"abcdEFGH1234567!", false},
	}
	for _, tc := range cases {
		err := ValidateSetTornConfig(request.SetTornConfigRequest{APIKey: tc.key})
		if (err == nil) != tc.valid {
			t.Errorf("key %q: expected valid=%v, got %v", tc.key, tc.valid, err)
		}
	}
}

func TestParseWindowDays(t *testing.T) {
	t.Run("empty selects default", func(t *testing.T) {
		days, err := ParseWindowDays("", 365)
		if err != nil || days != 0 {
			t.Errorf("Expected 0, nil; got %d, %v", days, err)
		}
	})

	t.Run("parses value in range", func(t *testing.T) {
		days, err := ParseWindowDays("7", 365)
		if err != nil || days != 7 {
			t.Errorf("Expected 7, nil; got %d, %v", days, err)
		}
	})

	t.Run("rejects out of range and garbage", func(t *testing.T) {
		for _, param := range []string{"0", "366", "-3", "week"} {
			_, err := ParseWindowDays(param, 365)
			if !errors.Is(err, apperrors.ErrInvalidWindow) {
				t.Errorf("%q: expected ErrInvalidWindow, got %v", param, err)
			}
		}
	})
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Fields: map[string]string{"apiKey": "api key is required"}}
	if !strings.Contains(err.Error(), "apiKey: api key is required") {
		t.Errorf("Unexpected message %q", err.Error())
	}
}
