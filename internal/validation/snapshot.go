package validation

import (
	"fmt"
	"strconv"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/api/request"
)

// MaxSnapshotItems bounds the number of distinct items in one snapshot.
const MaxSnapshotItems = 10000

// ValidateCreateSnapshot checks that every key is a positive numeric item ID and every
// quantity is non-negative. An empty snapshot is rejected.
func ValidateCreateSnapshot(req request.CreateSnapshotRequest) error {
	errors := make(map[string]string)

	if len(req) == 0 {
		errors["items"] = "at least one item is required"
	}
	if len(req) > MaxSnapshotItems {
		errors["items"] = fmt.Sprintf("at most %d items are allowed", MaxSnapshotItems)
	}

	for itemID, qty := range req {
		id, err := strconv.ParseInt(itemID, 10, 64)
		if err != nil || id <= 0 {
			errors[itemID] = "item id must be a positive integer"
			continue
		}
		if qty < 0 {
			errors[itemID] = "quantity cannot be negative"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
