// Package state persists the set of job identities seen as of the last
// completed run. The artifact is a single JSON file of shape
// {"ids": ["...", ...]}; its absence marks a genuine first run.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

type artifact struct {
	IDs []string `json:"ids"`
}

// Load reads the seen-set. A missing file is the only condition reported as
// a first run. An existing but unreadable or unparsable file returns an
// empty set, firstRun=false and the error: the caller logs it and carries
// on knowing nothing, trading over-notification for never losing state
// silently.
func (s *Store) Load() (ids map[string]struct{}, firstRun bool, err error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]struct{}{}, true, nil
	}
	if err != nil {
		return map[string]struct{}{}, false, fmt.Errorf("read state %s: %w", s.path, err)
	}

	var a artifact
	if err := json.Unmarshal(b, &a); err != nil {
		return map[string]struct{}{}, false, fmt.Errorf("parse state %s: %w", s.path, err)
	}

	ids = make(map[string]struct{}, len(a.IDs))
	for _, id := range a.IDs {
		ids[id] = struct{}{}
	}
	return ids, false, nil
}

// Save replaces the artifact with the given set, sorted for byte-stable
// output, written to a temp file and renamed so readers never see a partial
// write.
func (s *Store) Save(ids map[string]struct{}) error {
	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	b, err := json.MarshalIndent(artifact{IDs: sorted}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write state %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state %s: %w", s.path, err)
	}
	return nil
}
