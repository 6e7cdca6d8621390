package notify

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"jobwatch-engine/internal/domain"
)

func TestEscapeMarkdown(t *testing.T) {
	cases := map[string]string{
		"plain":           "plain",
		"*bold*":          `\*bold\*`,
		"snake_case":      `snake\_case`,
		"tick`tick":       "tick\\`tick",
		"[link]":          `\[link]`,
		"*_[` adjacent":   "\\*\\_\\[\\` adjacent",
		"**doubled**":     `\*\*doubled\*\*`,
		"mix *a* _b_ [c]": `mix \*a\* \_b\_ \[c]`,
	}
	for in, want := range cases {
		assert.Equal(t, want, EscapeMarkdown(in), "input %q", in)
	}
}

func TestFormatNewJobEscapesBoardFields(t *testing.T) {
	msg := FormatNewJob(domain.Job{
		Identity:       "B:1",
		Board:          "Board",
		Title:          "Data_Engineer *urgent*",
		Department:     "Eng",
		Team:           "Platform",
		Location:       "Austin, TX",
		IsRemote:       true,
		EmploymentType: "Full-Time",
		PublishedAt:    "2026-08-01T12:34:56Z",
		JobURL:         "https://jobs.example/1",
		ApplyURL:       "https://jobs.example/1/apply",
	}, 200)

	assert.Contains(t, msg, `*Data\_Engineer \*urgent\**`)
	assert.Contains(t, msg, "🏢 Eng › Platform")
	assert.Contains(t, msg, "📍 Austin, TX (Remote)")
	assert.Contains(t, msg, "💼 Full-Time")
	assert.Contains(t, msg, "📅 Published: 2026-08-01")
	assert.Contains(t, msg, "[View Job](https://jobs.example/1)")
	assert.Contains(t, msg, "[Apply Now](https://jobs.example/1/apply)")
}

func TestFormatNewJobCollapsesDefaultedTeam(t *testing.T) {
	msg := FormatNewJob(domain.Job{
		Board:      "B",
		Title:      "SRE",
		Department: "Infra",
		Team:       "Unknown",
		Location:   "Unknown",
	}, 200)

	assert.Contains(t, msg, "🏢 Infra\n")
	assert.NotContains(t, msg, "›")
	assert.Contains(t, msg, "📅 Published: Unknown")
	assert.NotContains(t, msg, "(Remote)")
}

func TestFormatNewJobDateTruncationIsRuneSafe(t *testing.T) {
	msg := FormatNewJob(domain.Job{
		Board: "B", Title: "SRE", Department: "Infra", Team: "Unknown",
		Location: "Unknown", PublishedAt: "２０２６年８月２５日（火曜日）",
	}, 200)

	assert.Contains(t, msg, "📅 Published: ２０２６年８月２５日\n")
	assert.True(t, utf8.ValidString(msg))
}

func TestFormatNewJobSnippet(t *testing.T) {
	long := strings.Repeat("word ", 60)
	msg := FormatNewJob(domain.Job{
		Board: "B", Title: "SRE", Department: "Infra", Team: "Unknown",
		Location: "Unknown", Description: long,
	}, 50)

	assert.Contains(t, msg, "📝 ")
	assert.Contains(t, msg, "…")

	// Absent description leaves the snippet line out entirely.
	msg = FormatNewJob(domain.Job{
		Board: "B", Title: "SRE", Department: "Infra", Team: "Unknown", Location: "Unknown",
	}, 50)
	assert.NotContains(t, msg, "📝")
}

func TestFormatHeartbeat(t *testing.T) {
	at := time.Date(2026, time.August, 25, 14, 30, 0, 0, time.UTC)
	msg := FormatHeartbeat(at)

	assert.Contains(t, msg, "No new jobs")
	assert.Contains(t, msg, "Tue Aug 25, 2026 at 2:30 PM")
}
