package dedupe

import (
	"strings"

	"github.com/joseph-ayodele/cardscan/constants"
	"github.com/joseph-ayodele/cardscan/internal/entity"
)

// CheckDuplicates compares a candidate card against a snapshot of the stored
// contact set. A stored contact is a duplicate when at least one of name,
// phone or email matches under exact normalized (trimmed, lowercased)
// equality. Matching is O(contacts x candidate tokens); contact volumes are
// small enough that no index is kept.
func CheckDuplicates(card entity.Card, contacts []entity.Contact) entity.DuplicateReport {
	report := entity.DuplicateReport{
		Duplicates:    []entity.DuplicateMatch{},
		MatchedFields: []string{},
	}

	name := normalize(card.Name)
	phones := normalizeTokens(card.Phone)
	emails := normalizeTokens(card.Email)

	union := map[string]bool{}
	for _, contact := range contacts {
		var fields []string

		if name != "" {
			if existing := normalize(contact.Name); existing != "" && existing == name {
				fields = append(fields, constants.FieldName)
			}
		}
		if anyTokenMatch(phones, entity.SplitValues(contact.Phone)) {
			fields = append(fields, constants.FieldPhone)
		}
		if anyTokenMatch(emails, entity.SplitValues(contact.Email)) {
			fields = append(fields, constants.FieldEmail)
		}

		if len(fields) > 0 {
			report.Duplicates = append(report.Duplicates, entity.DuplicateMatch{
				Contact:     contact,
				MatchFields: fields,
			})
			for _, f := range fields {
				union[f] = true
			}
		}
	}

	report.HasDuplicates = len(report.Duplicates) > 0
	for _, f := range constants.MatchFieldOrder {
		if union[f] {
			report.MatchedFields = append(report.MatchedFields, f)
		}
	}
	return report
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeTokens(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if n := normalize(v); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func anyTokenMatch(candidate, stored []string) bool {
	for _, c := range candidate {
		for _, s := range stored {
			if n := normalize(s); n != "" && n == c {
				return true
			}
		}
	}
	return false
}
