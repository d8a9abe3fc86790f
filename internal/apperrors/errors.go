package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrSnapshotNotFound indicates that a snapshot with the given ID does not exist.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrItemNotFound indicates that an item is missing from the catalogue.
	ErrItemNotFound = errors.New("item not found")

	// ErrTornConfigNotFound indicates that no Torn API key has been configured.
	ErrTornConfigNotFound = errors.New("torn api key not configured")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrInvalidWindow indicates that a report window is outside the accepted range.
	ErrInvalidWindow = errors.New("invalid report window")

	// ErrInvalidDate indicates that a date parameter could not be parsed.
	ErrInvalidDate = errors.New("invalid date parameter")

	// ErrEmptySnapshot indicates that a snapshot request carried no items.
	ErrEmptySnapshot = errors.New("snapshot must contain at least one item")

	// ErrNegativeQuantity indicates that a quantity field has an invalid negative value.
	ErrNegativeQuantity = errors.New("quantity cannot be negative")

	// ErrEncryptionNotConfigured indicates that a secret cannot be stored because no
	// encryption key is configured.
	ErrEncryptionNotConfigured = errors.New("encryption key not configured")

	// ErrSyncInProgress indicates that a sync of the same kind is already running.
	ErrSyncInProgress = errors.New("sync already in progress")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveInventory    = errors.New("failed to calculate inventory")
	ErrFailedToRetrieveProfit       = errors.New("failed to calculate daily profit")
	ErrFailedToRetrieveItemStats    = errors.New("failed to calculate item statistics")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveSnapshots    = errors.New("failed to retrieve snapshots")
	ErrFailedToRetrieveSnapshot     = errors.New("failed to retrieve snapshot")
	ErrFailedToCreateSnapshot       = errors.New("failed to create snapshot")
	ErrFailedToSyncLogs             = errors.New("failed to update logs")
	ErrFailedToSyncItems            = errors.New("failed to update items")
	ErrFailedToRetrieveTornConfig   = errors.New("failed to retrieve torn config")
	ErrFailedToSetTornConfig        = errors.New("failed to set torn config")
	ErrFailedToGetVersionInfo       = errors.New("failed to get version information")
)

// Upstream errors represent failures reported by the Torn API.
var (
	// ErrTornAPI indicates that the Torn API answered with an error object.
	ErrTornAPI = errors.New("torn api error")
)
