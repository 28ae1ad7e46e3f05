package models

// Candidate is one entry of the configured roster.
type Candidate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DefaultCandidates is the roster shipped with the default configuration.
func DefaultCandidates() []Candidate {
	return []Candidate{
		{ID: "11111-47", Name: "Keli-11111-47"},
		{ID: "3333-18", Name: "Larissa-3333-18"},
		{ID: "4444-71", Name: "Suellen-4444-71"},
		{ID: "branco", Name: "Branco / Nulo"},
	}
}
