package ashby

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"jobwatch-engine/internal/domain"
)

type Config struct {
	Board   string // display name; also the identity prefix
	URL     string // posting-api board URL
	Timeout time.Duration
}

type Client struct {
	cfg Config
	hc  *http.Client
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Name() string { return c.cfg.Board }

// posting mirrors one entry of the Ashby posting-api response body.
type posting struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Department      string `json:"department"`
	Team            string `json:"team"`
	Location        string `json:"location"`
	IsRemote        bool   `json:"isRemote"`
	EmploymentType  string `json:"employmentType"`
	PublishedAt     string `json:"publishedAt"`
	JobURL          string `json:"jobUrl"`
	ApplyURL        string `json:"applyUrl"`
	DescriptionHTML string `json:"descriptionHtml"`
}

type boardBody struct {
	Jobs []json.RawMessage `json:"jobs"`
}

// Fetch returns every posting currently listed on the board, normalized.
// Entries that are not JSON objects are skipped.
func (c *Client) Fetch(ctx context.Context) ([]domain.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("ashby request: %w", err)
	}
	req.Header.Set("User-Agent", "JobWatch/1.0 (+local)")
	req.Header.Set("Accept", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ashby get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("ashby status %d", res.StatusCode)
	}

	var body boardBody
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("ashby decode: %w", err)
	}

	out := make([]domain.Job, 0, len(body.Jobs))
	for _, raw := range body.Jobs {
		// Only object entries count; null in particular unmarshals into a
		// zero posting without error and would turn into a phantom job.
		if !isJSONObject(raw) {
			continue
		}
		var p posting
		if err := json.Unmarshal(raw, &p); err != nil {
			continue
		}
		out = append(out, normalize(p, c.cfg.Board))
	}
	return out, nil
}

func isJSONObject(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b == '{'
		}
	}
	return false
}
