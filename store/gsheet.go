package store

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"
)

// Ranges without a sheet name refer to the first visible worksheet in the spreadsheet.
const (
	headerRange = "1:1"
	tableRange  = "A:ZZ"
)

// gsheet is the first worksheet of a Google Sheets spreadsheet.
type gsheet struct {
	sheets      *sheets.Service
	drive       *drive.Service
	spreadsheet string
}

// GoogleOpener returns an Opener for the spreadsheets in ids, connecting through the connector on
// first use.
func GoogleOpener(connector *Connector, ids map[Dataset]string) Opener {
	return func(ctx context.Context, dataset Dataset) (Sheet, error) {
		id := ids[dataset]
		if id == "" {
			return nil, fmt.Errorf("%w: no spreadsheet configured for %v", ErrUnavailable, dataset)
		}

		client, err := connector.Client(ctx)
		if err != nil {
			return nil, err
		}

		return &gsheet{
			sheets:      client.Sheets,
			drive:       client.Drive,
			spreadsheet: id,
		}, nil
	}
}

func (g *gsheet) Header(ctx context.Context) ([]string, error) {
	response, err := g.sheets.Spreadsheets.Values.Get(g.spreadsheet, headerRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	if len(response.Values) == 0 {
		return []string{}, nil
	}

	return stringify(response.Values[0]), nil
}

func (g *gsheet) Values(ctx context.Context) ([][]string, error) {
	response, err := g.sheets.Spreadsheets.Values.Get(g.spreadsheet, tableRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(response.Values))
	for _, row := range response.Values {
		rows = append(rows, stringify(row))
	}

	return rows, nil
}

func (g *gsheet) SetHeader(ctx context.Context, header []string) error {
	return g.UpdateRow(ctx, 1, header)
}

func (g *gsheet) Append(ctx context.Context, rows [][]string) error {
	values := sheets.ValueRange{
		Values: [][]interface{}{},
	}

	for _, row := range rows {
		values.Values = append(values.Values, interfaces(row))
	}

	_, err := g.sheets.Spreadsheets.Values.Append(g.spreadsheet, "A1", &values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()

	return err
}

func (g *gsheet) UpdateRow(ctx context.Context, row int, values []string) error {
	rq := sheets.ValueRange{
		Range:  fmt.Sprintf("A%v", row),
		Values: [][]interface{}{interfaces(values)},
	}

	_, err := g.sheets.Spreadsheets.Values.Update(g.spreadsheet, rq.Range, &rq).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()

	return err
}

// Modified returns the time of the latest revision of the spreadsheet.
func (g *gsheet) Modified(ctx context.Context) (time.Time, error) {
	page := ""
	latest := time.Time{}

	for {
		call := g.drive.Revisions.List(g.spreadsheet).Fields("nextPageToken", "revisions(id,modifiedTime)").Context(ctx)
		if page != "" {
			call.PageToken(page)
		}

		revisions, err := call.Do()
		if err != nil {
			return time.Time{}, err
		}

		for _, revision := range revisions.Revisions {
			datetime, err := time.Parse(time.RFC3339, revision.ModifiedTime)
			if err != nil {
				return time.Time{}, err
			}

			if latest.Before(datetime) {
				latest = datetime
			}
		}

		if page = revisions.NextPageToken; page == "" {
			break
		}
	}

	if latest.IsZero() {
		return time.Time{}, fmt.Errorf("unable to identify latest revision for spreadsheet %s", g.spreadsheet)
	}

	return latest, nil
}

func stringify(row []interface{}) []string {
	list := make([]string, len(row))
	for i, v := range row {
		if v != nil {
			list[i] = fmt.Sprintf("%v", v)
		}
	}

	return list
}

func interfaces(row []string) []interface{} {
	list := make([]interface{}, len(row))
	for i, v := range row {
		list[i] = v
	}

	return list
}
