package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/cardscan/constants"
	"github.com/joseph-ayodele/cardscan/internal/repository"
)

// Service is a tiny façade over the contact repository that produces CSV and
// XLSX bytes for exports.
type Service struct {
	contacts repository.ContactRepository
	logger   *slog.Logger
}

func NewService(contacts repository.ContactRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{contacts: contacts, logger: logger}
}

// ExportCSV renders all contacts with the canonical seven-column header.
// Multi-valued cells stay ", "-joined; encoding/csv quotes them as needed.
func (s *Service) ExportCSV(ctx context.Context) ([]byte, error) {
	contacts, err := s.contacts.ListContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(constants.CSVHeader); err != nil {
		return nil, err
	}
	for _, c := range contacts {
		row := []string{c.Name, c.Designation, c.Company, c.Phone, c.Email, c.Website, c.Address}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv write: %w", err)
	}

	s.logger.Info("export.csv.ok", "rows", len(contacts))
	return buf.Bytes(), nil
}

// ExportXLSX returns an XLSX workbook (as bytes) with all contacts.
func (s *Service) ExportXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	contacts, err := s.contacts.ListContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Contacts"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := append(append([]string{}, constants.CSVHeader...), "created_at")
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, c := range contacts {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, c.Name)
		write(2, c.Designation)
		write(3, c.Company)
		write(4, c.Phone)
		write(5, c.Email)
		write(6, c.Website)
		write(7, c.Address)
		if !c.CreatedAt.IsZero() {
			write(8, c.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "C", 22)
	_ = f.SetColWidth(sheet, "D", "F", 28)
	_ = f.SetColWidth(sheet, "G", "G", 48)
	_ = f.SetColWidth(sheet, "H", "H", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(contacts),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// ImportTemplate returns a CSV skeleton with two example rows for users to
// fill in before importing.
func ImportTemplate() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(constants.CSVHeader)
	_ = w.Write([]string{"John Doe", "Software Engineer", "Tech Corp", "(555) 123-4567", "john@techcorp.com", "www.techcorp.com", "123 Main St, City, State 12345"})
	_ = w.Write([]string{"Jane Smith", "Marketing Manager", "Marketing Inc", "(555) 987-6543", "jane@marketing.com", "www.marketing.com", "456 Oak Ave, Town, State 67890"})
	w.Flush()
	return buf.Bytes()
}
