package extract

import "regexp"

// Compiled patterns for each field kind.
// Extraction runs phone -> email -> website over progressively stripped text;
// the website pattern would otherwise claim the domain half of every email.
var (
	// Phone: optional +country code, optional (area), separators -.space,
	// then 3-4 digit groups. North-American shapes only. The separator class
	// excludes newline so a number never swallows the tail of the preceding
	// line (postal codes are the usual victim).
	rePhone = regexp.MustCompile(`(\+?\d{1,3}[-. ]?)?\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}`)

	// Email: standard local@domain.tld shape.
	reEmail = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// Website: optional scheme, then a domain-like token. The reported value
	// is the domain group regardless of whether a scheme was present.
	reWebsite = regexp.MustCompile(`(https?://)?([a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
)

// Patterns is the output of the pattern layer: every phone/email/website
// occurrence in first-appearance order (duplicates preserved), plus the text
// with those occurrences blanked out.
type Patterns struct {
	Phones   []string
	Emails   []string
	Websites []string
	Residual string
}

// Extract pulls phones, emails and websites out of raw OCR text. It is a pure
// function of its input; absent matches yield empty slices, never an error.
func Extract(text string) Patterns {
	p := Patterns{
		Phones:   []string{},
		Emails:   []string{},
		Websites: []string{},
	}

	for _, m := range rePhone.FindAllString(text, -1) {
		p.Phones = append(p.Phones, m)
	}
	rest := rePhone.ReplaceAllString(text, "")

	p.Emails = append(p.Emails, reEmail.FindAllString(rest, -1)...)
	rest = reEmail.ReplaceAllString(rest, "")

	for _, m := range reWebsite.FindAllStringSubmatch(rest, -1) {
		p.Websites = append(p.Websites, m[2])
	}
	p.Residual = reWebsite.ReplaceAllString(rest, "")

	return p
}
