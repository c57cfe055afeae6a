package export

import "time"

// Section is one titled table of a report.
type Section struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Report is a multi-table document rendered by the CSV and PDF exporters.
type Report struct {
	Title       string
	GeneratedAt time.Time
	Sections    []Section
}

func (r Report) validate() error {
	if len(r.Sections) == 0 {
		return errEmptyReport
	}
	for _, s := range r.Sections {
		if len(s.Headers) == 0 {
			return errMissingHeaders(s.Name)
		}
	}
	return nil
}
