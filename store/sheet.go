package store

import (
	"context"
	"time"
)

// Sheet is a single worksheet treated as a flat table with a header row. Rows are numbered from 1,
// with row 1 being the header.
type Sheet interface {
	Header(ctx context.Context) ([]string, error)
	Values(ctx context.Context) ([][]string, error)
	SetHeader(ctx context.Context, header []string) error
	Append(ctx context.Context, rows [][]string) error
	UpdateRow(ctx context.Context, row int, values []string) error
}

// Revisioned is implemented by worksheets that can report when they were last modified.
type Revisioned interface {
	Modified(ctx context.Context) (time.Time, error)
}

// Opener returns the worksheet for a dataset.
type Opener func(ctx context.Context, dataset Dataset) (Sheet, error)

// throttled waits on the throttle before every call to the underlying worksheet.
type throttled struct {
	sheet    Sheet
	throttle *Throttle
}

func (t throttled) Header(ctx context.Context) ([]string, error) {
	if err := t.throttle.Wait(ctx); err != nil {
		return nil, err
	}

	return t.sheet.Header(ctx)
}

func (t throttled) Values(ctx context.Context) ([][]string, error) {
	if err := t.throttle.Wait(ctx); err != nil {
		return nil, err
	}

	return t.sheet.Values(ctx)
}

func (t throttled) SetHeader(ctx context.Context, header []string) error {
	if err := t.throttle.Wait(ctx); err != nil {
		return err
	}

	return t.sheet.SetHeader(ctx, header)
}

func (t throttled) Append(ctx context.Context, rows [][]string) error {
	if err := t.throttle.Wait(ctx); err != nil {
		return err
	}

	return t.sheet.Append(ctx, rows)
}

func (t throttled) UpdateRow(ctx context.Context, row int, values []string) error {
	if err := t.throttle.Wait(ctx); err != nil {
		return err
	}

	return t.sheet.UpdateRow(ctx, row, values)
}

func (t throttled) Modified(ctx context.Context) (time.Time, error) {
	r, ok := t.sheet.(Revisioned)
	if !ok {
		return time.Time{}, nil
	}

	if err := t.throttle.Wait(ctx); err != nil {
		return time.Time{}, err
	}

	return r.Modified(ctx)
}
