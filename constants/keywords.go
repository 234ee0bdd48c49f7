package constants

// Keyword vocabularies driving the line classifier. Matching is
// case-insensitive substring containment, so entries are stored lowercase.

// DesignationKeywords mark a line as a job title.
var DesignationKeywords = []string{
	"manager", "director", "president", "ceo", "cto", "cfo", "vp", "vice president",
	"senior", "junior", "lead", "head", "chief", "coordinator", "specialist",
	"analyst", "engineer", "developer", "designer", "consultant", "advisor",
	"executive", "officer", "associate", "assistant", "supervisor",
}

// CompanyKeywords mark a line as an organization name.
var CompanyKeywords = []string{
	"inc", "llc", "ltd", "corp", "corporation", "company", "co", "enterprises",
	"group", "associates", "partners", "solutions", "systems", "technologies",
	"international", "global", "worldwide", "services", "consulting",
}

// StreetKeywords mark a line as part of a postal address.
var StreetKeywords = []string{
	"street", "avenue", "road", "drive", "lane", "boulevard", "suite", "floor", "building",
}

// StreetAbbreviations are short street-type tokens; a line containing a digit
// plus one of these is treated as an address line.
var StreetAbbreviations = []string{
	"st", "ave", "rd", "dr", "blvd", "ln", "ct", "pl",
}
