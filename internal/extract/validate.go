package extract

import (
	"regexp"
	"strings"
)

// Anchored variants of the extraction patterns, for validating single values
// on manual edits and saves.
var (
	rePhoneExact   = regexp.MustCompile(`^(\+?\d{1,3}[-. ]?)?\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}$`)
	reEmailExact   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	reWebsiteExact = regexp.MustCompile(`^(https?://)?([a-zA-Z0-9.-]+\.[a-zA-Z]{2,})$`)
)

// ValidPhone reports whether s is a single well-formed phone number.
func ValidPhone(s string) bool {
	return rePhoneExact.MatchString(strings.TrimSpace(s))
}

// ValidEmail reports whether s is a single well-formed email address.
func ValidEmail(s string) bool {
	return reEmailExact.MatchString(strings.TrimSpace(s))
}

// ValidWebsite reports whether s is a single well-formed website reference.
func ValidWebsite(s string) bool {
	return reWebsiteExact.MatchString(strings.TrimSpace(s))
}
