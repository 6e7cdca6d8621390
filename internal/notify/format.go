package notify

import (
	"fmt"
	"strings"
	"time"

	"jobwatch-engine/internal/domain"
)

// The four Markdown-v1 specials Telegram recognizes, escaped independently
// and in this fixed order.
var markdownSpecials = [4]string{"*", "_", "`", "["}

func EscapeMarkdown(s string) string {
	for _, ch := range markdownSpecials {
		s = strings.ReplaceAll(s, ch, `\`+ch)
	}
	return s
}

// FormatNewJob builds one self-contained alert per posting. Every field
// interpolated from board data goes through EscapeMarkdown.
func FormatNewJob(j domain.Job, snippetMaxRunes int) string {
	board := EscapeMarkdown(j.Board)
	title := EscapeMarkdown(j.Title)
	dept := EscapeMarkdown(j.Department)
	loc := EscapeMarkdown(j.Location)
	empType := EscapeMarkdown(j.EmploymentType)

	deptLine := dept
	if j.Team != "" && j.Team != "Unknown" {
		deptLine = dept + " › " + EscapeMarkdown(j.Team)
	}

	remoteTag := ""
	if j.IsRemote {
		remoteTag = " (Remote)"
	}

	pubDate := "Unknown"
	if j.PublishedAt != "" {
		pubDate = j.PublishedAt
		if r := []rune(pubDate); len(r) > 10 {
			pubDate = string(r[:10])
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🆕 *New Job Alert* on %s\n\n", board)
	fmt.Fprintf(&b, "*%s*\n", title)
	fmt.Fprintf(&b, "🏢 %s\n", deptLine)
	fmt.Fprintf(&b, "📍 %s%s\n", loc, remoteTag)
	fmt.Fprintf(&b, "💼 %s\n", empType)
	fmt.Fprintf(&b, "📅 Published: %s\n", pubDate)
	if snip := truncateRunes(j.Description, snippetMaxRunes); snip != "" {
		fmt.Fprintf(&b, "\n📝 %s\n", EscapeMarkdown(snip))
	}
	fmt.Fprintf(&b, "\n🔗 [View Job](%s)\n", j.JobURL)
	fmt.Fprintf(&b, "✅ [Apply Now](%s)", j.ApplyURL)
	return b.String()
}

// FormatHeartbeat builds the "no changes" confirmation for a completed,
// uneventful cycle.
func FormatHeartbeat(checkedAt time.Time) string {
	return "👀 No new jobs this cycle. Checked " +
		checkedAt.Format("Mon Jan 2, 2006 at 3:04 PM") + "."
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max])) + "…"
}
