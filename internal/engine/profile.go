package engine

// RawProfile is one externally sourced profile record. The engine treats it
// as immutable input owned by the caller for the duration of a single
// normalization call.
type RawProfile struct {
	URL            string
	Name           string
	CurrentCompany string
	Location       string
	Experiences    []Experience
	Educations     []Education
	Languages      []string
}

// Experience is one employment stint. Company and Title may be empty; a
// missing End means the stint is ongoing.
type Experience struct {
	Company string
	Title   string
	Start   Date
	End     Date
}

// Education is one institution attended. Dates are not needed for matching.
type Education struct {
	School string
}
