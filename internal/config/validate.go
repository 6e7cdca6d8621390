package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

func Validate(cfg Config) Validation {
	var res Validation

	if len(cfg.Boards) == 0 {
		res.addErr("boards is empty: at least one board is required")
	}

	seen := map[string]bool{}
	for i, b := range cfg.Boards {
		name := strings.TrimSpace(b.Name)
		if name == "" {
			res.addErr("boards[%d].name is required", i)
		} else if seen[strings.ToLower(name)] {
			res.addErr("boards[%d].name %q is duplicated; board names prefix job identities and must be unique", i, name)
		} else {
			seen[strings.ToLower(name)] = true
		}

		if strings.TrimSpace(b.URL) == "" {
			res.addErr("boards[%d].url is required", i)
			continue
		}
		u, err := url.Parse(b.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			res.addErr("boards[%d].url %q is not a valid http(s) URL", i, b.URL)
		}
	}

	if cfg.Fetch.TimeoutSeconds > 60 {
		res.addWarn("fetch.timeout_seconds is very high (%d); a stuck board delays the whole run", cfg.Fetch.TimeoutSeconds)
	}
	if cfg.Notify.MessagesPerSecond > 1 {
		res.addWarn("notify.messages_per_second %.1f exceeds the Telegram per-chat guideline of 1", cfg.Notify.MessagesPerSecond)
	}

	return res
}
