package entity

// DuplicateMatch pairs a stored contact with the field kinds on which it
// collided with a candidate.
type DuplicateMatch struct {
	Contact     Contact  `json:"contact"`
	MatchFields []string `json:"match_fields"`
}

// DuplicateReport is the outcome of checking one candidate against the full
// stored set. It is recomputed on every check and never cached.
type DuplicateReport struct {
	HasDuplicates bool             `json:"has_duplicates"`
	Duplicates    []DuplicateMatch `json:"duplicates"`
	// MatchedFields is the union of field kinds that matched across all
	// duplicate records, in {name, phone, email} order.
	MatchedFields []string `json:"matched_fields"`
}

// ImportResult accounts for one CSV or JSON import run.
type ImportResult struct {
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	TotalCount   int      `json:"total_count"`
	Errors       []string `json:"errors"`
	Message      string   `json:"message"`
}
