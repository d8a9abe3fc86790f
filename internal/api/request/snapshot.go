package request

// CreateSnapshotRequest is the request body for recording an inventory snapshot:
// an object mapping item ID to the quantity held, e.g. {"286": 1, "287": 15}.
type CreateSnapshotRequest map[string]int64
