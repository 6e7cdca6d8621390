package ashby

import (
	"strings"

	"jobwatch-engine/internal/domain"
)

var employmentTypes = map[string]string{
	"FullTime": "Full-Time",
	"PartTime": "Part-Time",
	"Contract": "Contract",
	"Intern":   "Internship",
}

// normalize maps a raw posting to the canonical record. Total: every missing
// field degrades to a default, and the identity is never empty.
func normalize(p posting, board string) domain.Job {
	title := cleanText(p.Title)
	if title == "" {
		title = "Untitled Role"
	}

	id := strings.TrimSpace(p.ID)
	if id == "" {
		// deterministic fallback so the posting stays trackable across runs
		id = title + "_" + p.PublishedAt
	}

	empType := p.EmploymentType
	if mapped, ok := employmentTypes[empType]; ok {
		empType = mapped
	}
	// unrecognized employment types pass through unchanged

	return domain.Job{
		Identity:       board + ":" + id,
		Board:          board,
		Title:          title,
		Department:     orUnknown(cleanText(p.Department)),
		Team:           orUnknown(cleanText(p.Team)),
		Location:       orUnknown(cleanText(p.Location)),
		IsRemote:       p.IsRemote,
		EmploymentType: empType,
		PublishedAt:    p.PublishedAt,
		JobURL:         p.JobURL,
		ApplyURL:       p.ApplyURL,
		Description:    htmlToText(p.DescriptionHTML),
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
