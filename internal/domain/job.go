package domain

// Job is the canonical listing record. It is produced exclusively by the
// board normalizer; nothing downstream reads raw feed fields.
type Job struct {
	// Identity is stable across runs for the same real-world posting and
	// globally unique across boards. Never empty.
	Identity string

	Board          string
	Title          string
	Department     string
	Team           string
	Location       string
	IsRemote       bool
	EmploymentType string
	PublishedAt    string // as reported by the board, may be empty
	JobURL         string
	ApplyURL       string
	Description    string // plain text snippet, may be empty
}
