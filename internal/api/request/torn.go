package request

// SetTornConfigRequest is the request body for storing the Torn API key.
type SetTornConfigRequest struct {
	APIKey string `json:"apiKey"` // APIKey is the Torn API key. Required, 16 alphanumeric characters.
}
