// Package export pushes projected balance series to a Google Sheet so
// the account owner can chart them outside the app.
package export

import (
	"context"
	"errors"
	"fmt"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"saldo/internal/core"
	"saldo/internal/log"
)

type SheetsExporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	logger        *log.Logger
}

// NewSheetsExporter creates an exporter authenticated with a service
// account credentials file.
func NewSheetsExporter(ctx context.Context, spreadsheetID, sheetName, credentialsFile string, logger *log.Logger) (*SheetsExporter, error) {
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if sheetName == "" {
		return nil, errors.New("missing sheet name")
	}

	svc, err := gsheet.NewService(ctx, goption.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &SheetsExporter{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		logger:        logger.WithComponent(log.ComponentExport),
	}, nil
}

// ExportBalanceSeries replaces the sheet contents with the given series,
// one row per day.
func (e *SheetsExporter) ExportBalanceSeries(ctx context.Context, series []core.DailyBalancePoint) error {
	values := make([][]any, 0, len(series)+1)
	values = append(values, []any{"Date", "Balance", "Transactions"})
	for _, point := range series {
		values = append(values, []any{
			point.Date.String(),
			point.Balance.Float(),
			len(point.Transactions),
		})
	}

	clearRange := fmt.Sprintf("%s!A:C", e.sheetName)
	if _, err := e.svc.Spreadsheets.Values.Clear(e.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear sheet: %w", err)
	}

	writeRange := fmt.Sprintf("%s!A1", e.sheetName)
	_, err := e.svc.Spreadsheets.Values.Update(e.spreadsheetID, writeRange, &gsheet.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write sheet: %w", err)
	}

	e.logger.Info("balance series exported",
		log.FieldOperation, log.OpExport,
		log.FieldSheetsRef, e.sheetName,
		"rows", len(series))
	return nil
}
