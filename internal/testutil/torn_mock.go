package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/model"
)

// FetchLogsCall records the arguments of one MockTornClient.FetchLogs call.
type FetchLogsCall struct {
	CategoryID int
	From       time.Time
}

// MockTornClient is a mock implementation of torn.Client for testing.
// It returns predefined test data instead of making actual API calls.
type MockTornClient struct {
	mu sync.Mutex

	// Logs holds the logs returned per category
	Logs map[int][]model.TradeLog
	// Items is the catalogue returned by FetchItems
	Items []model.Item
	// CategoryErrors holds errors returned for specific categories
	CategoryErrors map[int]error
	// MockError is returned by every call when set
	MockError error
	// LogCalls records every FetchLogs call
	LogCalls []FetchLogsCall
	// ItemCalls counts FetchItems calls
	ItemCalls int
}

// NewMockTornClient creates a new mock Torn client without data.
func NewMockTornClient() *MockTornClient {
	return &MockTornClient{
		Logs:           make(map[int][]model.TradeLog),
		CategoryErrors: make(map[int]error),
	}
}

// FetchLogs returns the configured logs of the category with a timestamp at or after from.
func (m *MockTornClient) FetchLogs(_ context.Context, categoryID int, from time.Time) ([]model.TradeLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LogCalls = append(m.LogCalls, FetchLogsCall{CategoryID: categoryID, From: from})
	if m.MockError != nil {
		return nil, m.MockError
	}
	if err := m.CategoryErrors[categoryID]; err != nil {
		return nil, err
	}

	var logs []model.TradeLog
	for _, log := range m.Logs[categoryID] {
		if !log.Timestamp.Before(from) {
			logs = append(logs, log)
		}
	}
	return logs, nil
}

// FetchItems returns the configured catalogue.
func (m *MockTornClient) FetchItems(_ context.Context) ([]model.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ItemCalls++
	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.Items, nil
}

// WithLogs adds logs, grouped by their category.
func (m *MockTornClient) WithLogs(logs ...model.TradeLog) *MockTornClient {
	for _, log := range logs {
		m.Logs[log.CategoryID] = append(m.Logs[log.CategoryID], log)
	}
	return m
}

// WithItems configures the catalogue.
func (m *MockTornClient) WithItems(items ...model.Item) *MockTornClient {
	m.Items = items
	return m
}

// WithError configures the mock to return the specified error from every call.
func (m *MockTornClient) WithError(err error) *MockTornClient {
	m.MockError = err
	return m
}

// WithCategoryError configures the mock to fail FetchLogs for one category.
func (m *MockTornClient) WithCategoryError(categoryID int, err error) *MockTornClient {
	m.CategoryErrors[categoryID] = err
	return m
}
