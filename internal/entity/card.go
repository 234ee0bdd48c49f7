package entity

import (
	"strings"

	"github.com/joseph-ayodele/cardscan/constants"
)

// Card is a candidate contact produced by one extraction run. It is owned by
// the extraction pipeline until handed to storage. Absent values are empty
// strings or empty slices, never nil-with-meaning.
type Card struct {
	Name        string   `json:"name"`
	Designation string   `json:"designation"`
	Company     string   `json:"company"`
	Phone       []string `json:"phone"`
	Email       []string `json:"email"`
	Website     []string `json:"website"`
	Address     string   `json:"address"`
}

// NewCard returns a card with all multi-valued fields initialized empty.
func NewCard() Card {
	return Card{
		Phone:   []string{},
		Email:   []string{},
		Website: []string{},
	}
}

// IsEmpty reports whether no field carries any value.
func (c Card) IsEmpty() bool {
	return c.Name == "" && c.Designation == "" && c.Company == "" &&
		c.Address == "" && len(c.Phone) == 0 && len(c.Email) == 0 && len(c.Website) == 0
}

// JoinValues flattens a multi-valued field for storage and CSV cells.
func JoinValues(values []string) string {
	return strings.Join(values, constants.ListSeparator)
}

// SplitValues undoes JoinValues, dropping empty tokens. It splits on the bare
// comma so hand-entered values without the space separator still parse.
func SplitValues(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return []string{}
	}
	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
