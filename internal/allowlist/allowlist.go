// Package allowlist reads the externally maintained CSV of phone numbers
// permitted to log in. The file is reference data: the application never
// writes it, and unlike the record stores it is not auto-created when
// missing.
package allowlist

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"github.com/sgs-events/eventdesk/internal/model"
	"github.com/sgs-events/eventdesk/internal/phone"
)

// Expected first column. The second column carries the student's name and
// is informational only; it is never consulted by the login logic.
const phoneColumn = "mobile_number"

// Service answers allow-list membership queries against the backing CSV.
// Every lookup re-reads the file, so edits to the list take effect on the
// next login attempt without a restart.
type Service struct {
	path   string
	logger *slog.Logger
}

// New creates an allow-list service reading from path
func New(path string, logger *slog.Logger) *Service {
	return &Service{
		path:   path,
		logger: logger,
	}
}

// IsMember reports whether rawPhone, after normalization, appears on the
// allow-list. Matching is exact against normalized entries; there is no
// partial or fuzzy matching.
func (s *Service) IsMember(ctx context.Context, rawPhone string) (bool, error) {
	entries, err := s.load()
	if err != nil {
		return false, err
	}

	_, ok := entries[phone.Normalize(rawPhone)]
	return ok, nil
}

// load reads the whole allow-list into a set of normalized phone keys.
// Any failure to read or parse the file is AllowListUnavailable: login
// cannot function without the list, so there is no empty-list fallback.
func (s *Service) load() (map[string]struct{}, error) {
	f, err := os.Open(s.path)
	if err != nil {
		s.logger.Error("allow-list unreadable",
			slog.String("path", s.path),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: open %s: %v", model.ErrAllowListUnavailable, s.path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // the name column is optional

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrAllowListUnavailable, s.path, err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 || rows[0][0] != phoneColumn {
		return nil, fmt.Errorf("%w: %s: first column must be %q", model.ErrAllowListUnavailable, s.path, phoneColumn)
	}

	entries := make(map[string]struct{}, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		entries[phone.Normalize(row[0])] = struct{}{}
	}
	return entries, nil
}
