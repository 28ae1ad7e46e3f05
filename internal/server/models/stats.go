package models

// Stats summarises issuance and redemption progress.
type Stats struct {
	Total        int64
	Used         int64
	Unused       int64
	PerCandidate map[string]int64
}
