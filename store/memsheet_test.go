package store

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"
)

// memsheet is an in-memory worksheet that counts the calls made to it.
type memsheet struct {
	rows       [][]string
	appendErrs []error
	modified   time.Time
	latency    time.Duration
	calls      map[string]int
	mu         sync.Mutex
}

func newMemsheet(rows ...[]string) *memsheet {
	return &memsheet{
		rows:  rows,
		calls: map[string]int{},
	}
}

func (m *memsheet) Header(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls["header"]++
	if len(m.rows) == 0 {
		return []string{}, nil
	}

	return slices.Clone(m.rows[0]), nil
}

func (m *memsheet) Values(ctx context.Context) ([][]string, error) {
	if m.latency > 0 {
		time.Sleep(m.latency)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls["values"]++

	return m.snapshot(), nil
}

func (m *memsheet) SetHeader(ctx context.Context, header []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls["set-header"]++
	if len(m.rows) == 0 {
		m.rows = [][]string{slices.Clone(header)}
	} else {
		m.rows[0] = slices.Clone(header)
	}

	return nil
}

func (m *memsheet) Append(ctx context.Context, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls["append"]++
	if len(m.appendErrs) > 0 {
		err := m.appendErrs[0]
		m.appendErrs = m.appendErrs[1:]
		if err != nil {
			return err
		}
	}

	for _, row := range rows {
		m.rows = append(m.rows, slices.Clone(row))
	}

	return nil
}

func (m *memsheet) UpdateRow(ctx context.Context, row int, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls["update"]++
	for len(m.rows) < row {
		m.rows = append(m.rows, []string{})
	}

	m.rows[row-1] = slices.Clone(values)

	return nil
}

func (m *memsheet) Modified(ctx context.Context) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls["modified"]++

	return m.modified, nil
}

// mutations returns the number of calls that changed the worksheet.
func (m *memsheet) mutations() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.calls["set-header"] + m.calls["append"] + m.calls["update"]
}

func (m *memsheet) count(call string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.calls[call]
}

func (m *memsheet) snapshot() [][]string {
	rows := make([][]string, 0, len(m.rows))
	for _, row := range m.rows {
		rows = append(rows, slices.Clone(row))
	}

	return rows
}

// testStore is a store over in-memory worksheets with no throttling and with the backoff delays
// recorded rather than slept.
type testStore struct {
	*Store
	delays []time.Duration
}

func newTestStore(t *testing.T, sheets map[Dataset]*memsheet, options ...func(*Options)) *testStore {
	t.Helper()

	opts := DefaultOptions
	opts.Interval = 0
	for _, f := range options {
		f(&opts)
	}

	opener := func(ctx context.Context, dataset Dataset) (Sheet, error) {
		if sheet, ok := sheets[dataset]; ok {
			return sheet, nil
		}

		return nil, ErrUnavailable
	}

	ts := testStore{
		Store: NewStore(opener, opts),
	}

	ts.sleep = func(ctx context.Context, delay time.Duration) error {
		ts.delays = append(ts.delays, delay)
		return nil
	}

	ts.jitter = func() float64 {
		return 0.5
	}

	return &ts
}

var taskHeader = []string{
	"task_name", "description", "project_name", "assigned_to", "priority", "status",
	"start_date", "due_date", "completion_date", "comments", "created_by",
}

var projectHeader = []string{
	"project_name", "description", "start_date", "end_date", "status", "priority", "created_by",
}
