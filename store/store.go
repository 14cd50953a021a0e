package store

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/uhppoted/uhppoted-app-tracker/log"
)

const LOG_TAG = "store"

type Options struct {
	CacheTTL      time.Duration
	CacheSize     int
	Interval      time.Duration
	MaxRetries    int
	Backoff       time.Duration
	RepairHeaders bool
}

var DefaultOptions = Options{
	CacheTTL:      60 * time.Second,
	CacheSize:     256,
	Interval:      1200 * time.Millisecond,
	MaxRetries:    5,
	Backoff:       1 * time.Second,
	RepairHeaders: true,
}

// Store is the sheet-backed data store. It owns the read cache and the API throttle, so independent
// stores (e.g. in tests) do not share state. A Store is safe for concurrent use: writes are
// serialised so that concurrent saves of the same record cannot both append a row.
type Store struct {
	opener   Opener
	cache    *Cache
	throttle *Throttle
	retries  int
	backoff  time.Duration
	repair   bool

	// serialises the read-modify-write cycle of the save and update operations
	writing sync.Mutex

	sleep  func(ctx context.Context, delay time.Duration) error
	jitter func() float64
}

func NewStore(opener Opener, options Options) *Store {
	retries := options.MaxRetries
	if retries < 1 {
		retries = 1
	}

	return &Store{
		opener:   opener,
		cache:    NewCache(options.CacheTTL, options.CacheSize),
		throttle: NewThrottle(options.Interval),
		retries:  retries,
		backoff:  options.Backoff,
		repair:   options.RepairHeaders,
		sleep:    sleep,
		jitter:   rand.Float64,
	}
}

// Cache returns the store read cache.
func (s *Store) Cache() *Cache {
	return s.cache
}

// Invalidate discards the cached values for the keys, or everything if no keys are given.
func (s *Store) Invalidate(keys ...string) {
	if len(keys) == 0 {
		s.cache.Clear()
	} else {
		s.cache.Invalidate(keys...)
	}
}

// Modified returns the time the worksheet for a dataset was last changed, or the zero time if the
// worksheet does not keep revisions.
func (s *Store) Modified(ctx context.Context, dataset Dataset) (time.Time, error) {
	sheet, err := s.open(ctx, dataset)
	if err != nil {
		return time.Time{}, err
	}

	return sheet.Modified(ctx)
}

func (s *Store) open(ctx context.Context, dataset Dataset) (throttled, error) {
	sheet, err := s.opener(ctx, dataset)
	if err != nil {
		return throttled{}, err
	}

	return throttled{sheet: sheet, throttle: s.throttle}, nil
}

// cached returns the cached value for key if there is one, otherwise it invokes f and caches the
// result.
func cached[T any](s *Store, key string, f func() (T, error)) (T, error) {
	if v, ok := s.cache.Get(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}

	t, err := f()
	if err != nil {
		return t, err
	}

	s.cache.Put(key, t)

	return t, nil
}

// load reads all the records from the worksheet for a schema. A worksheet with no data rows yields
// an empty list.
func (s *Store) load(ctx context.Context, sc schema) ([]record, error) {
	sheet, err := s.open(ctx, sc.dataset)
	if err != nil {
		return nil, err
	}

	values, err := sheet.Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve %v from worksheet (%w)", sc.dataset, err)
	}

	if len(values) < 2 {
		return []record{}, nil
	}

	cols := mapColumns(sc, values[0])
	if !cols.mapped(sc.identity) {
		return nil, fmt.Errorf("%w: %v worksheet has no '%v' column", ErrSchema, sc.dataset, sc.identity)
	}

	records := []record{}
	for _, row := range values[1:] {
		if !blank(row) {
			records = append(records, cols.parse(row))
		}
	}

	log.Debugf(LOG_TAG, "loaded %v records from %v worksheet", len(records), sc.dataset)

	return records, nil
}

// save appends a record to a worksheet, or overwrites the existing row if the worksheet already has
// a record with the same identity.
func (s *Store) save(ctx context.Context, sc schema, r record) error {
	if err := sc.validate(r); err != nil {
		return err
	}

	s.writing.Lock()
	defer s.writing.Unlock()

	sheet, err := s.open(ctx, sc.dataset)
	if err != nil {
		return err
	}

	values, err := sheet.Values(ctx)
	if err != nil {
		return fmt.Errorf("unable to retrieve %v from worksheet (%w)", sc.dataset, err)
	}

	header := []string{}
	rows := [][]string{}
	if len(values) > 0 {
		header = values[0]
		rows = values[1:]
	}

	cols, err := s.reconcile(ctx, sheet, sc, header)
	if err != nil {
		return err
	}

	key := clean(r[sc.identity])
	if ix, ok := cols.identify(sc, rows)[key]; ok {
		if err := sheet.UpdateRow(ctx, ix+2, cols.overlay(rows[ix], r)); err != nil {
			return fmt.Errorf("error updating %v '%v' (%w)", sc.dataset, key, err)
		}

		log.Infof(LOG_TAG, "updated %v '%v' in row %v", sc.dataset, key, ix+2)
	} else {
		if err := sheet.Append(ctx, [][]string{cols.row(r)}); err != nil {
			return fmt.Errorf("error appending %v '%v' (%w)", sc.dataset, key, err)
		}

		log.Infof(LOG_TAG, "added %v '%v'", sc.dataset, key)
	}

	s.cache.Invalidate(sc.keys...)

	return nil
}

// saveAll appends a batch of records to a worksheet in a single call, retrying with exponential
// backoff if the Sheets API quota has been exceeded. Any other error is returned immediately.
func (s *Store) saveAll(ctx context.Context, sc schema, records []record) error {
	if len(records) == 0 {
		return nil
	}

	for i, r := range records {
		if err := sc.validate(r); err != nil {
			return fmt.Errorf("record %v: %w", i+1, err)
		}
	}

	s.writing.Lock()
	defer s.writing.Unlock()

	sheet, err := s.open(ctx, sc.dataset)
	if err != nil {
		return err
	}

	header, err := sheet.Header(ctx)
	if err != nil {
		return fmt.Errorf("unable to retrieve %v worksheet header (%w)", sc.dataset, err)
	}

	cols, err := s.reconcile(ctx, sheet, sc, header)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, cols.row(r))
	}

	for attempt := 1; ; attempt++ {
		err := sheet.Append(ctx, rows)
		if err == nil {
			break
		}

		if !isQuotaError(err) {
			return fmt.Errorf("error appending %v %v (%w)", len(rows), sc.dataset, err)
		}

		if attempt >= s.retries {
			log.Warnf(LOG_TAG, "%v append failed after %v attempts (%v)", sc.dataset, attempt, err)
			return fmt.Errorf("%w (%v)", ErrQuotaExceeded, err)
		}

		delay := s.delay(attempt)
		log.Warnf(LOG_TAG, "%v append quota exceeded, retrying in %v (attempt %v of %v)", sc.dataset, delay, attempt, s.retries)

		if err := s.sleep(ctx, delay); err != nil {
			return err
		}
	}

	log.Infof(LOG_TAG, "appended %v %v", len(rows), sc.dataset)

	s.cache.Invalidate(sc.keys...)

	return nil
}

// update overwrites the mapped columns of the row with the given identity. Fails with ErrNotFound
// (and without writing anything) if there is no such row.
func (s *Store) update(ctx context.Context, sc schema, key string, r record) error {
	s.writing.Lock()
	defer s.writing.Unlock()

	sheet, err := s.open(ctx, sc.dataset)
	if err != nil {
		return err
	}

	values, err := sheet.Values(ctx)
	if err != nil {
		return fmt.Errorf("unable to retrieve %v from worksheet (%w)", sc.dataset, err)
	}

	if len(values) < 2 {
		return fmt.Errorf("%w: %v '%v'", ErrNotFound, sc.dataset, key)
	}

	cols := mapColumns(sc, values[0])
	if !cols.mapped(sc.identity) {
		return fmt.Errorf("%w: %v worksheet has no '%v' column", ErrSchema, sc.dataset, sc.identity)
	}

	rows := values[1:]
	ix, ok := cols.identify(sc, rows)[clean(key)]
	if !ok {
		return fmt.Errorf("%w: %v '%v'", ErrNotFound, sc.dataset, key)
	}

	if unmapped := cols.unmapped(sc); len(unmapped) > 0 {
		log.Debugf(LOG_TAG, "%v worksheet has no columns for %v", sc.dataset, unmapped)
	}

	if err := sheet.UpdateRow(ctx, ix+2, cols.overlay(rows[ix], r)); err != nil {
		return fmt.Errorf("error updating %v '%v' (%w)", sc.dataset, key, err)
	}

	log.Infof(LOG_TAG, "updated %v '%v' in row %v", sc.dataset, key, ix+2)

	s.cache.Invalidate(sc.keys...)

	return nil
}

// reconcile maps the worksheet header to the canonical fields, rewriting the header row if it is
// blank or if it is shorter than the canonical header and has no identity column. A short header
// that does map the identity column is used as is, with the missing fields left unwritten.
//
// Rewriting the header is a schema migration: the data rows are left in place, so any populated
// column whose label is replaced is orphaned. Each migration is logged with an audit ID and the
// labels that were replaced.
func (s *Store) reconcile(ctx context.Context, sheet Sheet, sc schema, header []string) (columns, error) {
	cols := mapColumns(sc, header)

	if needsRepair(sc, cols) {
		if !s.repair {
			return cols, fmt.Errorf("%w: %v worksheet header %q does not match the expected header %q", ErrSchema, sc.dataset, header, sc.header())
		}

		canonical := sc.header()
		migration := uuid.New()

		log.Warnf(LOG_TAG, "schema migration %v: replacing %v worksheet header %q with %q", migration, sc.dataset, header, canonical)

		if err := sheet.SetHeader(ctx, canonical); err != nil {
			return cols, fmt.Errorf("schema migration %v failed (%w)", migration, err)
		}

		log.Infof(LOG_TAG, "schema migration %v: complete", migration)

		cols = mapColumns(sc, canonical)
	}

	if !cols.mapped(sc.identity) {
		return cols, fmt.Errorf("%w: %v worksheet has no '%v' column", ErrSchema, sc.dataset, sc.identity)
	}

	return cols, nil
}

// delay returns the backoff for a retry: base·2^attempt plus up to one base interval of jitter.
func (s *Store) delay(attempt int) time.Duration {
	return s.backoff*time.Duration(1<<attempt) + time.Duration(s.jitter()*float64(s.backoff))
}

func sleep(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()

	case <-timer.C:
		return nil
	}
}
