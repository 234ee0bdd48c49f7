package classify

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/cardscan/constants"
	"github.com/joseph-ayodele/cardscan/internal/entity"
	"github.com/joseph-ayodele/cardscan/internal/extract"
)

// rePostal matches a US postal code anywhere in a line.
var rePostal = regexp.MustCompile(`\d{5}(-\d{4})?`)

var reDigit = regexp.MustCompile(`\d`)

// Classifier turns raw OCR text into a candidate card: the pattern layer
// pulls phones/emails/websites, then line heuristics assign the rest.
type Classifier struct {
	logger *slog.Logger
}

func NewClassifier(logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{logger: logger}
}

// Classify classifies OCR text into card fields. Empty input is not an
// error: it yields an all-empty card. A non-nil error is only returned when
// classification itself fails internally, and then the card is all-empty too.
func (c *Classifier) Classify(text string) (card entity.Card, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("classify.panic", "recovered", r)
			card = entity.NewCard()
			err = fmt.Errorf("classify text: %v", r)
		}
	}()

	card = entity.NewCard()
	if strings.TrimSpace(text) == "" {
		c.logger.Warn("classify.empty_text")
		return card, nil
	}

	p := extract.Extract(text)
	card.Phone = p.Phones
	card.Email = p.Emails
	card.Website = p.Websites

	lines := splitLines(p.Residual)
	if len(lines) == 0 {
		return card, nil
	}

	// The first line is the name, unconditionally. Never reconsidered even
	// when it also looks like a company or address.
	card.Name = lines[0]

	var designationLines, companyLines, addressLines []string
	for _, line := range lines[1:] {
		switch classifyLine(line) {
		case bucketDesignation:
			designationLines = append(designationLines, line)
		case bucketCompany:
			companyLines = append(companyLines, line)
		default:
			addressLines = append(addressLines, line)
		}
	}

	if len(designationLines) > 0 {
		card.Designation = designationLines[0]
	}
	if len(companyLines) > 0 {
		card.Company = companyLines[0]
	}
	card.Address = strings.Join(addressLines, constants.ListSeparator)

	c.logger.Info("classify.ok",
		"phones", len(card.Phone),
		"emails", len(card.Email),
		"websites", len(card.Website),
	)
	return card, nil
}

type bucket int

const (
	bucketDesignation bucket = iota
	bucketCompany
	bucketAddress
)

// classifyLine assigns one residual line to exactly one bucket. Rules are
// evaluated top to bottom; the first hit wins.
func classifyLine(line string) bucket {
	lower := strings.ToLower(line)

	if containsAny(lower, constants.DesignationKeywords) {
		return bucketDesignation
	}
	if containsAny(lower, constants.CompanyKeywords) {
		return bucketCompany
	}
	if containsAny(lower, constants.StreetKeywords) {
		return bucketAddress
	}
	if rePostal.MatchString(line) {
		return bucketAddress
	}
	if reDigit.MatchString(line) && containsAny(lower, constants.StreetAbbreviations) {
		return bucketAddress
	}
	// Short numberless lines read like org names; everything else falls
	// through to the address accumulator.
	if len(strings.Fields(line)) <= 3 && !reDigit.MatchString(line) {
		return bucketCompany
	}
	return bucketAddress
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
