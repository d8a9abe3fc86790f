// Package torn is a minimal client for the Torn v2 API endpoints this service reads:
// the user trade logs and the item catalogue.
package torn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/config"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/model"
)

// Client is the subset of the Torn API the sync services depend on.
type Client interface {
	FetchLogs(ctx context.Context, categoryID int, from time.Time) ([]model.TradeLog, error)
	FetchItems(ctx context.Context) ([]model.Item, error)
}

// KeySource supplies the API key for each request, so a key changed at runtime is picked
// up without rebuilding the client.
type KeySource interface {
	APIKey(ctx context.Context) (string, error)
}

// StaticKey is a KeySource that always returns the same key.
type StaticKey string

// APIKey returns the key.
func (k StaticKey) APIKey(_ context.Context) (string, error) {
	if k == "" {
		return "", apperrors.ErrTornConfigNotFound
	}
	return string(k), nil
}

// APIError is returned when the Torn API answers with an error object or a non-2xx status.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("torn api error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("torn api returned status %d: %s", e.StatusCode, e.Message)
}

// Unwrap lets callers match any API error with errors.Is(err, apperrors.ErrTornAPI).
func (e *APIError) Unwrap() error {
	return apperrors.ErrTornAPI
}

// APIClient fetches data from the Torn API over HTTP.
// Requests are throttled by a shared limiter because Torn enforces a per-key request budget.
type APIClient struct {
	httpClient *http.Client
	baseURL    string
	keys       KeySource
	limiter    *rate.Limiter
}

// NewAPIClient creates a client for cfg.BaseURL that takes its key from keys.
//
// Parameters:
//   - cfg: base URL, request timeout and requests-per-minute budget
//   - keys: source of the API key used for every request
//
// Returns:
//   - *APIClient: A new client instance ready for use
func NewAPIClient(cfg config.TornConfig, keys KeySource) *APIClient {
	perMinute := cfg.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &APIClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		keys:       keys,
		limiter:    rate.NewLimiter(rate.Limit(float64(perMinute)/60), 1),
	}
}

// FetchLogs fetches the trade logs of one log category with a timestamp at or after from.
// Logs are requested in ascending order, so a zero from starts at the oldest available page.
//
// Parameters:
//   - categoryID: Torn log type ID (1112, 1113, 1225 or 1226)
//   - from: lower bound of the log timestamps
//
// Returns:
//   - []model.TradeLog: logs ordered oldest first
//   - error: If the request fails, the response cannot be decoded, or Torn returns an error
func (c *APIClient) FetchLogs(ctx context.Context, categoryID int, from time.Time) ([]model.TradeLog, error) {
	query := url.Values{}
	query.Set("log", strconv.Itoa(categoryID))
	// Oldest first, so a page cut off by the API limit never skips logs older than the ones stored.
	query.Set("sort", "asc")
	if !from.IsZero() {
		query.Set("from", strconv.FormatInt(from.Unix(), 10))
	}

	var response LogResponse
	if err := c.get(ctx, "/v2/user/log", query, &response); err != nil {
		return nil, err
	}
	if response.Error != nil {
		return nil, &APIError{StatusCode: http.StatusOK, Code: response.Error.Code, Message: response.Error.Message}
	}

	logs := make([]model.TradeLog, 0, len(response.Log))
	for _, entry := range response.Log {
		logs = append(logs, entry.toTradeLog(categoryID))
	}
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Timestamp.Before(logs[j].Timestamp)
	})

	return logs, nil
}

// FetchItems fetches the complete item catalogue.
//
// Returns:
//   - []model.Item: catalogue entries ordered by item ID, UpdatedAt set to the fetch time
//   - error: If the request fails, the response cannot be decoded, or Torn returns an error
func (c *APIClient) FetchItems(ctx context.Context) ([]model.Item, error) {
	query := url.Values{}
	query.Set("sort", "ASC")

	var response ItemsResponse
	if err := c.get(ctx, "/v2/torn/items", query, &response); err != nil {
		return nil, err
	}
	if response.Error != nil {
		return nil, &APIError{StatusCode: http.StatusOK, Code: response.Error.Code, Message: response.Error.Message}
	}

	catalog, err := response.Decode()
	if err != nil {
		return nil, err
	}
	sort.Slice(catalog, func(i, j int) bool { return catalog[i].ID < catalog[j].ID })

	fetchedAt := time.Now().UTC()
	items := make([]model.Item, 0, len(catalog))
	for _, ci := range catalog {
		items = append(items, model.Item{
			ID:          strconv.FormatInt(ci.ID, 10),
			Name:        ci.Name,
			Type:        ci.Type,
			MarketPrice: ci.Value.MarketPrice,
			UpdatedAt:   fetchedAt,
		})
	}
	return items, nil
}

// get performs an authenticated GET request and decodes the JSON body into out.
//
// The method sets required headers:
//   - Authorization: "ApiKey <key>"
//   - Accept: Requests JSON response format
func (c *APIClient) get(ctx context.Context, path string, query url.Values, out any) error {
	key, err := c.keys.APIKey(ctx)
	if err != nil {
		return fmt.Errorf("failed to get torn api key: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "ApiKey "+key)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode torn response: %w", err)
	}
	return nil
}

// toTradeLog converts a raw entry. requested is used when the entry carries no type ID.
func (e LogEntry) toTradeLog(requested int) model.TradeLog {
	categoryID := e.Details.ID
	if categoryID == 0 {
		categoryID = requested
	}

	log := model.TradeLog{
		ID:         e.ID,
		Timestamp:  time.Unix(e.Timestamp, 0).UTC(),
		CategoryID: categoryID,
		Title:      e.Details.Title,
		Seller:     e.Data.Seller,
		CostEach:   e.Data.CostEach,
		CostTotal:  e.Data.CostTotal,
		Items:      make([]model.TradeLogItem, 0, len(e.Data.Items)),
	}
	for _, item := range e.Data.Items {
		log.Items = append(log.Items, model.TradeLogItem{
			ItemID:   strconv.FormatInt(item.ID, 10),
			UID:      item.UID,
			Quantity: item.Qty,
		})
	}
	return log
}

// IsAuthError reports whether err is a Torn error caused by a missing or rejected key.
func IsAuthError(err error) bool {
	if errors.Is(err, apperrors.ErrTornConfigNotFound) {
		return true
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	// 1: key is empty, 2: incorrect key, 16: access level too low, 18: key paused.
	switch apiErr.Code {
	case 1, 2, 16, 18:
		return true
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}
