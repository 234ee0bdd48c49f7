package constants

// Field kinds reported by the duplicate detector, in canonical order.
const (
	FieldName  = "name"
	FieldPhone = "phone"
	FieldEmail = "email"
)

// MatchFieldOrder fixes the order match fields appear in duplicate reports.
var MatchFieldOrder = []string{FieldName, FieldPhone, FieldEmail}

// ListSeparator joins multi-valued fields (phone/email/website) into the
// flattened storage and CSV representation.
const ListSeparator = ", "

// CSVHeader is the exact import/export column order.
var CSVHeader = []string{"name", "designation", "company", "phone", "email", "website", "address"}
