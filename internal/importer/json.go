package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/cardscan/internal/entity"
)

// contactsSchema constrains a JSON import payload: an array of contact
// objects with string scalars and string-array phone/email/website fields.
const contactsSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "array",
	"items": {
		"type": "object",
		"additionalProperties": false,
		"properties": {
			"name":        {"type": "string"},
			"designation": {"type": "string"},
			"company":     {"type": "string"},
			"phone":       {"type": "array", "items": {"type": "string"}},
			"email":       {"type": "array", "items": {"type": "string"}},
			"website":     {"type": "array", "items": {"type": "string"}},
			"address":     {"type": "string"}
		}
	}
}`

var compiledContactsSchema = jsonschema.MustCompileString("contacts.schema.json", contactsSchema)

type jsonContact struct {
	Name        string   `json:"name"`
	Designation string   `json:"designation"`
	Company     string   `json:"company"`
	Phone       []string `json:"phone"`
	Email       []string `json:"email"`
	Website     []string `json:"website"`
	Address     string   `json:"address"`
}

// ImportJSON validates the payload against the contacts schema, then applies
// the same skip rules as CSV import.
func (s *Service) ImportJSON(ctx context.Context, r io.Reader, skipDuplicates bool) (entity.ImportResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return entity.ImportResult{}, fmt.Errorf("read json payload: %w", err)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return entity.ImportResult{
			Errors:  []string{err.Error()},
			Message: "invalid JSON payload",
		}, nil
	}
	if err := compiledContactsSchema.Validate(generic); err != nil {
		return entity.ImportResult{
			Errors:  []string{err.Error()},
			Message: "JSON payload failed schema validation",
		}, nil
	}

	var rows []jsonContact
	if err := json.Unmarshal(raw, &rows); err != nil {
		return entity.ImportResult{}, fmt.Errorf("decode contacts: %w", err)
	}

	existing, err := s.snapshot(ctx)
	if err != nil {
		return entity.ImportResult{}, err
	}

	result := entity.ImportResult{Errors: []string{}}
	for i, row := range rows {
		result.TotalCount++

		card := entity.Card{
			Name:        row.Name,
			Designation: row.Designation,
			Company:     row.Company,
			Phone:       orEmpty(row.Phone),
			Email:       orEmpty(row.Email),
			Website:     orEmpty(row.Website),
			Address:     row.Address,
		}
		inserted, err := s.importOne(ctx, entity.FromCard(card), skipDuplicates, &existing)
		if err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("item %d: %v", i+1, err))
			continue
		}
		if inserted {
			result.SuccessCount++
		}
	}

	result.Message = fmt.Sprintf("Successfully imported %d contacts", result.SuccessCount)
	s.logger.Info("import.json.done",
		"success", result.SuccessCount,
		"errors", result.ErrorCount,
		"total", result.TotalCount,
	)
	return result, nil
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
