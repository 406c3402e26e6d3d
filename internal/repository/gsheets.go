package repository

import (
	"context"
	"fmt"
	"time"

	"homestay-backoffice/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// SheetsOptions configures the Google Sheets REST client.
type SheetsOptions struct {
	BaseURL       string // default https://sheets.googleapis.com
	APIKey        string // query-param auth; read-only scopes
	AccessToken   string // bearer auth; required for writes
	SpreadsheetID string
	Worksheet     string
	SheetGID      int // numeric sheet id, needed for row deletion
}

// SheetsClient talks to the Google Sheets v4 values API.
type SheetsClient struct {
	http   *resty.Client
	opts   SheetsOptions
	logger *zap.Logger
}

type valueRange struct {
	Range  string     `json:"range,omitempty"`
	Values [][]string `json:"values"`
}

type sheetsError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func NewSheetsClient(opts SheetsOptions, logger *zap.Logger) *SheetsClient {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://sheets.googleapis.com"
	}
	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(20*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(3*time.Second).
		SetHeader("Accept", "application/json")
	if opts.AccessToken != "" {
		client.SetAuthToken(opts.AccessToken)
	}
	if opts.APIKey != "" {
		client.SetQueryParam("key", opts.APIKey)
	}
	return &SheetsClient{http: client, opts: opts, logger: logger}
}

func (c *SheetsClient) valuesPath(rng string) string {
	return fmt.Sprintf("/v4/spreadsheets/%s/values/%s", c.opts.SpreadsheetID, rng)
}

// fetch returns the header row and the data rows of the worksheet.
func (c *SheetsClient) fetch(ctx context.Context) ([]string, [][]string, error) {
	var vr valueRange
	var apiErr sheetsError
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&vr).
		SetError(&apiErr).
		Get(c.valuesPath(c.opts.Worksheet))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if resp.IsError() {
		return nil, nil, fmt.Errorf("sheets API error: %s (code %d)", apiErr.Error.Message, resp.StatusCode())
	}
	if len(vr.Values) == 0 {
		return nil, nil, fmt.Errorf("sheet %q is empty", c.opts.Worksheet)
	}
	return vr.Values[0], vr.Values[1:], nil
}

// Rows implements BookingSheet.
func (c *SheetsClient) Rows(ctx context.Context) ([]domain.Row, error) {
	headers, data, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]domain.Row, 0, len(data))
	for _, cells := range data {
		row := domain.Row{}
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	c.logger.Info("loaded rows from Google Sheet",
		zap.String("spreadsheet_id", c.opts.SpreadsheetID),
		zap.Int("row_count", len(rows)),
	)
	return rows, nil
}

// Append implements BookingSheet. Cell order follows the sheet's own header
// row so unrecognized columns keep their position.
func (c *SheetsClient) Append(ctx context.Context, row domain.Row) error {
	headers, _, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	body := valueRange{Values: [][]string{orderedCells(headers, row)}}
	var apiErr sheetsError
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("valueInputOption", "USER_ENTERED").
		SetQueryParam("insertDataOption", "INSERT_ROWS").
		SetBody(body).
		SetError(&apiErr).
		Post(c.valuesPath(c.opts.Worksheet) + ":append")
	if err != nil {
		return fmt.Errorf("failed to append booking row: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("sheets API error: %s (code %d)", apiErr.Error.Message, resp.StatusCode())
	}
	return nil
}

// Update implements BookingSheet.
func (c *SheetsClient) Update(ctx context.Context, id string, row domain.Row) error {
	headers, data, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	rowNum, ok := findRow(headers, data, id)
	if !ok {
		return ErrNotFound
	}
	rng := fmt.Sprintf("%s!A%d:%s%d", c.opts.Worksheet, rowNum, columnName(len(headers)), rowNum)
	body := valueRange{Range: rng, Values: [][]string{orderedCells(headers, row)}}
	var apiErr sheetsError
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("valueInputOption", "USER_ENTERED").
		SetBody(body).
		SetError(&apiErr).
		Put(c.valuesPath(rng))
	if err != nil {
		return fmt.Errorf("failed to update booking row: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("sheets API error: %s (code %d)", apiErr.Error.Message, resp.StatusCode())
	}
	c.logger.Info("updated booking in Google Sheet", zap.String("booking_id", id))
	return nil
}

// Delete implements BookingSheet. Row deletion goes through batchUpdate
// because the values API cannot remove a dimension.
func (c *SheetsClient) Delete(ctx context.Context, id string) error {
	headers, data, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	rowNum, ok := findRow(headers, data, id)
	if !ok {
		return ErrNotFound
	}
	body := map[string]any{
		"requests": []map[string]any{{
			"deleteDimension": map[string]any{
				"range": map[string]any{
					"sheetId":    c.opts.SheetGID,
					"dimension":  "ROWS",
					"startIndex": rowNum - 1, // batchUpdate indexes are zero-based
					"endIndex":   rowNum,
				},
			},
		}},
	}
	var apiErr sheetsError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetError(&apiErr).
		Post(fmt.Sprintf("/v4/spreadsheets/%s:batchUpdate", c.opts.SpreadsheetID))
	if err != nil {
		return fmt.Errorf("failed to delete booking row: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("sheets API error: %s (code %d)", apiErr.Error.Message, resp.StatusCode())
	}
	c.logger.Info("deleted booking from Google Sheet", zap.String("booking_id", id))
	return nil
}

// findRow returns the 1-based sheet row number of the booking id (data rows
// start at 2, below the header row).
func findRow(headers []string, data [][]string, id string) (int, bool) {
	idCol := -1
	for i, h := range headers {
		if h == domain.ColBookingID {
			idCol = i
			break
		}
	}
	if idCol < 0 {
		return 0, false
	}
	for i, cells := range data {
		if idCol < len(cells) && cells[idCol] == id {
			return i + 2, true
		}
	}
	return 0, false
}

func orderedCells(headers []string, row domain.Row) []string {
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = row[h]
	}
	return cells
}

// columnName converts a 1-based column number to its A1 letter form.
func columnName(n int) string {
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
}
