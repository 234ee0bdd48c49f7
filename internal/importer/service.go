package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/cardscan/constants"
	"github.com/joseph-ayodele/cardscan/internal/entity"
	"github.com/joseph-ayodele/cardscan/internal/repository"
)

// Service imports contacts from CSV or JSON files.
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

// ImportCSV ingests rows from r. A row is skipped (not counted as success or
// error) when both name and company are empty after trimming, or — with
// skipDuplicates — when an existing contact shares the same (name, company)
// pair or the same non-empty email. Rows inserted earlier in the same run
// count as existing for later rows.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader, skipDuplicates bool) (entity.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return entity.ImportResult{Message: "CSV file is empty"}, nil
	}
	if err != nil {
		return entity.ImportResult{}, fmt.Errorf("read csv header: %w", err)
	}

	colIndex := map[string]int{}
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}
	var missing []string
	for _, col := range constants.CSVHeader {
		if _, ok := colIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return entity.ImportResult{
			Errors:  []string{fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))},
			Message: "CSV file missing required columns",
		}, nil
	}

	existing, err := s.snapshot(ctx)
	if err != nil {
		return entity.ImportResult{}, err
	}

	result := entity.ImportResult{Errors: []string{}}
	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			result.TotalCount++
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		result.TotalCount++

		cell := func(name string) string {
			i := colIndex[name]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		contact := entity.Contact{
			Name:        cell("name"),
			Designation: cell("designation"),
			Company:     cell("company"),
			Phone:       cell("phone"),
			Email:       cell("email"),
			Website:     cell("website"),
			Address:     cell("address"),
		}

		inserted, err := s.importOne(ctx, contact, skipDuplicates, &existing)
		if err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		if inserted {
			result.SuccessCount++
		}
	}

	result.Message = fmt.Sprintf("Successfully imported %d contacts", result.SuccessCount)
	s.logger.Info("import.csv.done",
		"success", result.SuccessCount,
		"errors", result.ErrorCount,
		"total", result.TotalCount,
	)
	return result, nil
}

// importOne applies the skip rules and inserts the contact, updating the
// in-memory snapshot so later rows see it. Identity fields are compared
// trimmed so the blank-row rule holds for JSON values too.
func (s *Service) importOne(ctx context.Context, contact entity.Contact, skipDuplicates bool, existing *[]entity.Contact) (bool, error) {
	if strings.TrimSpace(contact.Name) == "" && strings.TrimSpace(contact.Company) == "" {
		return false, nil
	}
	if skipDuplicates && isImportDuplicate(contact, *existing) {
		return false, nil
	}
	if err := s.contacts.Insert(ctx, &contact); err != nil {
		return false, err
	}
	*existing = append(*existing, contact)
	return true, nil
}

func (s *Service) snapshot(ctx context.Context) ([]entity.Contact, error) {
	contacts, err := s.contacts.ListContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load existing contacts: %w", err)
	}
	return contacts, nil
}

// isImportDuplicate applies the import skip rule: same (name, company) pair
// or same non-empty email cell, compared trimmed and lowercased.
func isImportDuplicate(contact entity.Contact, existing []entity.Contact) bool {
	name := norm(contact.Name)
	company := norm(contact.Company)
	email := norm(contact.Email)
	for _, e := range existing {
		if norm(e.Name) == name && norm(e.Company) == company {
			return true
		}
		if email != "" && norm(e.Email) == email {
			return true
		}
	}
	return false
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
