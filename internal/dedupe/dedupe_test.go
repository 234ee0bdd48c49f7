package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/cardscan/internal/entity"
)

func card(name string, phones, emails []string) entity.Card {
	c := entity.NewCard()
	c.Name = name
	if phones != nil {
		c.Phone = phones
	}
	if emails != nil {
		c.Email = emails
	}
	return c
}

func TestCheckDuplicates_NoContacts(t *testing.T) {
	report := CheckDuplicates(card("Jane Roe", nil, nil), nil)

	assert.False(t, report.HasDuplicates)
	assert.Empty(t, report.Duplicates)
	assert.Empty(t, report.MatchedFields)
}

func TestCheckDuplicates_EmailOnlyWhenNamesDiffer(t *testing.T) {
	stored := []entity.Contact{
		{ID: 1, Name: "John Smith", Email: "x@y.com"},
	}
	report := CheckDuplicates(card("Jane Roe", nil, []string{"x@y.com"}), stored)

	assert.True(t, report.HasDuplicates)
	assert.Len(t, report.Duplicates, 1)
	assert.Equal(t, []string{"email"}, report.Duplicates[0].MatchFields)
	assert.Equal(t, []string{"email"}, report.MatchedFields)
}

func TestCheckDuplicates_EmailCaseInsensitiveAcrossRecords(t *testing.T) {
	// Two stored contacts hold the same email in different casing; a
	// candidate with a third casing flags both.
	stored := []entity.Contact{
		{ID: 1, Name: "A One", Email: "x@y.com"},
		{ID: 2, Name: "B Two", Email: "X@Y.COM"},
	}
	report := CheckDuplicates(card("C Three", nil, []string{"X@Y.com"}), stored)

	assert.Len(t, report.Duplicates, 2)
	for _, d := range report.Duplicates {
		assert.Contains(t, d.MatchFields, "email")
	}
}

func TestCheckDuplicates_PhoneTokenAgainstJoinedString(t *testing.T) {
	stored := []entity.Contact{
		{ID: 1, Name: "John Smith", Phone: "555-1111, 555-2222"},
	}
	report := CheckDuplicates(card("Jane Roe", []string{"555-2222"}, nil), stored)

	assert.True(t, report.HasDuplicates)
	assert.Equal(t, []string{"phone"}, report.Duplicates[0].MatchFields)
}

func TestCheckDuplicates_EmptyNamesNeverMatch(t *testing.T) {
	stored := []entity.Contact{
		{ID: 1, Name: "", Phone: "555-3333"},
	}
	report := CheckDuplicates(card("", nil, nil), stored)

	assert.False(t, report.HasDuplicates)
}

func TestCheckDuplicates_MatchFieldOrderIsCanonical(t *testing.T) {
	stored := []entity.Contact{
		{ID: 1, Name: "Jane Roe", Email: "jane@acme.com"},
		{ID: 2, Name: "Someone Else", Phone: "555-1111"},
	}
	c := card("  JANE ROE ", []string{"555-1111"}, []string{"JANE@acme.com"})
	report := CheckDuplicates(c, stored)

	assert.Len(t, report.Duplicates, 2)
	assert.Equal(t, []string{"name", "email"}, report.Duplicates[0].MatchFields)
	assert.Equal(t, []string{"phone"}, report.Duplicates[1].MatchFields)
	// Union keeps the {name, phone, email} order regardless of hit order.
	assert.Equal(t, []string{"name", "phone", "email"}, report.MatchedFields)
}
