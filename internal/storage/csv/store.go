// Package csv implements the record stores as headered CSV files. This is
// the durable contract shared with external collaborators: the registration
// sheet, the notice sheet and the allow-list are all plain CSV that can be
// opened in a spreadsheet.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sgs-events/eventdesk/internal/model"
	"github.com/sgs-events/eventdesk/internal/storage"
)

// Column headers are the external contract; collaborators key on these
// exact names.
var (
	RegistrationColumns = []string{"Timestamp", "Name", "Class", "Section", "Item", "Contact", "Address", "Bus", "Status"}
	NoticeColumns       = []string{"Timestamp", "Title", "Message", "PostedBy"}
)

// Store is a CSV-file-backed implementation of the storage interface.
//
// Every write reloads the backing file, appends one row and rewrites the
// whole file via a temp-file-then-rename, so a crash mid-write never leaves
// a half-written store. A per-file mutex serializes load-append-persist, so
// overlapping writers within this process cannot drop each other's rows.
// Cross-process writers are still not coordinated.
type Store struct {
	registrationPath string
	noticePath       string
	logger           *slog.Logger

	registrationMu sync.Mutex
	noticeMu       sync.Mutex
}

// Ensure Store implements the interface
var _ storage.Storage = (*Store)(nil)

// New creates a CSV store writing to the given files. Missing files are
// created header-only; failure to create them means the backing medium is
// unusable and is returned as ErrStoreUnavailable.
func New(registrationPath, noticePath string, logger *slog.Logger) (*Store, error) {
	s := &Store{
		registrationPath: registrationPath,
		noticePath:       noticePath,
		logger:           logger,
	}

	if err := ensureFile(registrationPath, RegistrationColumns); err != nil {
		return nil, err
	}
	if err := ensureFile(noticePath, NoticeColumns); err != nil {
		return nil, err
	}

	return s, nil
}

// Registration operations

func (s *Store) SaveRegistration(ctx context.Context, reg *model.Registration) error {
	s.registrationMu.Lock()
	defer s.registrationMu.Unlock()

	rows, err := s.load(s.registrationPath, RegistrationColumns)
	if err != nil {
		return err
	}

	rows = append(rows, []string{
		reg.SubmittedAt.Format(time.RFC3339),
		reg.Name,
		reg.Class,
		reg.Section,
		reg.Item,
		reg.Contact,
		reg.Address,
		reg.Bus,
		string(reg.Status),
	})

	return s.persist(s.registrationPath, RegistrationColumns, rows)
}

func (s *Store) ListRegistrations(ctx context.Context) ([]*model.Registration, error) {
	s.registrationMu.Lock()
	defer s.registrationMu.Unlock()

	rows, err := s.load(s.registrationPath, RegistrationColumns)
	if err != nil {
		return nil, err
	}

	regs := make([]*model.Registration, 0, len(rows))
	for i, row := range rows {
		ts, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: bad timestamp %q", model.ErrStoreCorrupt, s.registrationPath, i+1, row[0])
		}
		regs = append(regs, &model.Registration{
			SubmittedAt: ts,
			Name:        row[1],
			Class:       row[2],
			Section:     row[3],
			Item:        row[4],
			Contact:     row[5],
			Address:     row[6],
			Bus:         row[7],
			Status:      model.RegistrationStatus(row[8]),
		})
	}
	return regs, nil
}

// Notice operations

func (s *Store) SaveNotice(ctx context.Context, notice *model.Notice) error {
	s.noticeMu.Lock()
	defer s.noticeMu.Unlock()

	rows, err := s.load(s.noticePath, NoticeColumns)
	if err != nil {
		return err
	}

	rows = append(rows, []string{
		notice.PostedAt.Format(time.RFC3339),
		notice.Title,
		notice.Message,
		notice.PostedBy,
	})

	return s.persist(s.noticePath, NoticeColumns, rows)
}

func (s *Store) ListNotices(ctx context.Context) ([]*model.Notice, error) {
	s.noticeMu.Lock()
	defer s.noticeMu.Unlock()

	rows, err := s.load(s.noticePath, NoticeColumns)
	if err != nil {
		return nil, err
	}

	notices := make([]*model.Notice, 0, len(rows))
	for i, row := range rows {
		ts, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: bad timestamp %q", model.ErrStoreCorrupt, s.noticePath, i+1, row[0])
		}
		notices = append(notices, &model.Notice{
			PostedAt: ts,
			Title:    row[1],
			Message:  row[2],
			PostedBy: row[3],
		})
	}
	return notices, nil
}

// load reads all data rows from path, validating the header against the
// declared columns. A missing file is recreated header-only and reads as
// empty; a malformed existing file is surfaced as ErrStoreCorrupt rather
// than silently treated as empty.
func (s *Store) load(path string, columns []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := ensureFile(path, columns); err != nil {
				return nil, err
			}
			return nil, nil
		}
		s.logger.Error("record store unreadable",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: open %s: %v", model.ErrStoreUnavailable, path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(columns)

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s is missing its header row", model.ErrStoreCorrupt, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", model.ErrStoreCorrupt, path, err)
	}
	if !equalColumns(header, columns) {
		return nil, fmt.Errorf("%w: %s header %v does not match schema %v", model.ErrStoreCorrupt, path, header, columns)
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrStoreCorrupt, path, err)
	}
	return rows, nil
}

// persist rewrites the whole store: header plus all rows to a temp file in
// the same directory, then an atomic rename over the original.
func (s *Store) persist(path string, columns []string, rows [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		s.logger.Error("record store unwritable",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: create temp for %s: %v", model.ErrStoreUnavailable, path, err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	if err := w.Write(columns); err == nil {
		err = w.WriteAll(rows)
	}
	w.Flush()

	if err := firstErr(w.Error(), tmp.Close()); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", model.ErrStoreUnavailable, path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: replace %s: %v", model.ErrStoreUnavailable, path, err)
	}
	return nil
}

// ensureFile creates a header-only store at path if none exists.
func ensureFile(path string, columns []string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return fmt.Errorf("%w: create %s: %v", model.ErrStoreUnavailable, path, err)
	}

	w := csv.NewWriter(f)
	_ = w.Write(columns)
	w.Flush()

	if err := firstErr(w.Error(), f.Close()); err != nil {
		return fmt.Errorf("%w: create %s: %v", model.ErrStoreUnavailable, path, err)
	}
	return nil
}

func equalColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
