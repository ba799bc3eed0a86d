// Package export produces XLSX workbooks from persisted rates.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/voyago/rates-ingestion/internal/repository"
)

// Service is a tiny façade over the rate repository that produces XLSX
// bytes for exports.
type Service struct {
	repo   repository.RateRepository
	logger *slog.Logger
}

func NewService(repo repository.RateRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// ExportRatesXLSX returns a workbook (as bytes) with the agent's rates,
// optionally bounded by validity window.
func (s *Service) ExportRatesXLSX(ctx context.Context, agentID string, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	recs, err := s.repo.ListByAgent(ctx, agentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query rates: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Rates"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{
		"Rate Type",
		"Description",
		"Cost",
		"Currency",
		"Valid From",
		"Valid To",
		"Source File",
		"Imported At",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.RateType)
		write(2, r.Description)
		write(3, r.Cost)
		write(4, r.Currency)
		write(5, r.ValidStart.Format("2006-01-02"))
		write(6, r.ValidEnd.Format("2006-01-02"))
		write(7, r.Details.SourceFilename)
		if !r.Details.ImportedAt.IsZero() {
			write(8, r.Details.ImportedAt.Format(time.RFC3339))
		}
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "B", 48)
	_ = f.SetColWidth(sheet, "C", "D", 12)
	_ = f.SetColWidth(sheet, "E", "F", 14)
	_ = f.SetColWidth(sheet, "G", "G", 40)
	_ = f.SetColWidth(sheet, "H", "H", 22)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"agent_id", agentID,
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
