// Package sheetsync appends assembled extraction rows to a Google Sheet.
// Narrowed from the teacher's 17-column DATEV batch-result sheet to the
// 6-column row contract of spec section 6: a sheet whose header already
// exists, rows appended to range B:G.
package sheetsync

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"tools/internal/docmodel"
	"tools/internal/logger"
)

// Service handles Google Sheets operations.
type Service struct {
	sheetsService *sheets.Service
	spreadsheetID string
	log           zerolog.Logger
}

// NewService creates a new Google Sheets service from a spreadsheet URL or
// bare ID, loading credentials from the environment the same way the
// teacher's sheets.Service did.
func NewService(ctx context.Context, spreadsheetURLOrID string) (*Service, error) {
	const op = "NewService"

	log := logger.WithComponent("sheetsync")

	spreadsheetID := extractSpreadsheetID(spreadsheetURLOrID)

	log.Debug().Str("spreadsheet_id", spreadsheetID).Msg("Resolved spreadsheet ID")

	var creds []byte
	var err error
	if credsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credsFile != "" {
		creds, err = os.ReadFile(credsFile)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read credentials file: %w", op, err)
		}
	} else if credsJSON := os.Getenv("GOOGLE_CREDENTIALS"); credsJSON != "" {
		creds = []byte(credsJSON)
	} else {
		return nil, fmt.Errorf("%s: neither GOOGLE_APPLICATION_CREDENTIALS nor GOOGLE_CREDENTIALS is set", op)
	}

	config, err := google.JWTConfigFromJSON(creds, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse credentials: %w", op, err)
	}

	client := config.Client(ctx)
	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create sheets service: %w", op, err)
	}

	return &Service{
		sheetsService: sheetsService,
		spreadsheetID: spreadsheetID,
		log:           log,
	}, nil
}

// extractSpreadsheetID pulls the ID out of a full Google Sheets URL, or
// returns the input unchanged if it already looks like a bare ID.
func extractSpreadsheetID(urlOrID string) string {
	re := regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)
	if matches := re.FindStringSubmatch(urlOrID); len(matches) == 2 {
		return matches[1]
	}
	return urlOrID
}

// AppendRows appends one assembled row per docmodel.Row to range B:G of
// sheetName. The header row is assumed to already exist (spec section 6);
// this service never creates or formats headers.
func (s *Service) AppendRows(ctx context.Context, sheetName string, rows []docmodel.Row) error {
	const op = "AppendRows"

	if len(rows) == 0 {
		return nil
	}

	values := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		cols := r.Columns()
		row := make([]interface{}, len(cols))
		for i, c := range cols {
			row[i] = c
		}
		values = append(values, row)
	}

	valueRange := &sheets.ValueRange{Values: values}

	appendRange := fmt.Sprintf("%s!B:G", sheetName)
	_, err := s.sheetsService.Spreadsheets.Values.Append(
		s.spreadsheetID,
		appendRange,
		valueRange,
	).ValueInputOption("USER_ENTERED").Context(ctx).Do()

	if err != nil {
		return fmt.Errorf("%s: failed to append rows to sheet: %w", op, err)
	}

	s.log.Info().
		Str("sheet", sheetName).
		Int("rows_written", len(values)).
		Msg("Appended extraction rows to Google Sheet")

	return nil
}

// ReadRange reads values from a specified range in the spreadsheet.
func (s *Service) ReadRange(ctx context.Context, rangeSpec string) ([][]interface{}, error) {
	const op = "ReadRange"

	resp, err := s.sheetsService.Spreadsheets.Values.Get(s.spreadsheetID, rangeSpec).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read range %s: %w", op, rangeSpec, err)
	}

	s.log.Debug().
		Int("rows", len(resp.Values)).
		Str("range", rangeSpec).
		Msg("Successfully read range from spreadsheet")

	return resp.Values, nil
}
