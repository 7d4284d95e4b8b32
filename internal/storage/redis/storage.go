// Package redis implements the record stores on Redis lists. Rows are
// appended with RPUSH, so insertion order is preserved exactly like the CSV
// backend, and the append itself is atomic without any store-side locking.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sgs-events/eventdesk/internal/model"
	"github.com/sgs-events/eventdesk/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: ping: %v", model.ErrStoreUnavailable, err)
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Rows are stored as JSON with explicit field names so the wire format
// stays stable if the model structs are renamed.

type registrationRow struct {
	SubmittedAt time.Time `json:"submitted_at"`
	Name        string    `json:"name"`
	Class       string    `json:"class"`
	Section     string    `json:"section"`
	Item        string    `json:"item"`
	Contact     string    `json:"contact"`
	Address     string    `json:"address"`
	Bus         string    `json:"bus"`
	Status      string    `json:"status"`
}

type noticeRow struct {
	PostedAt time.Time `json:"posted_at"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	PostedBy string    `json:"posted_by"`
}

// Registration operations

func (s *Storage) SaveRegistration(ctx context.Context, reg *model.Registration) error {
	data, err := json.Marshal(registrationRow{
		SubmittedAt: reg.SubmittedAt,
		Name:        reg.Name,
		Class:       reg.Class,
		Section:     reg.Section,
		Item:        reg.Item,
		Contact:     reg.Contact,
		Address:     reg.Address,
		Bus:         reg.Bus,
		Status:      string(reg.Status),
	})
	if err != nil {
		return err
	}

	if err := s.client.RPush(ctx, registrationsKey(), data).Err(); err != nil {
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Storage) ListRegistrations(ctx context.Context) ([]*model.Registration, error) {
	rows, err := s.client.LRange(ctx, registrationsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	regs := make([]*model.Registration, 0, len(rows))
	for i, raw := range rows {
		var row registrationRow
		if err := json.Unmarshal([]byte(raw), &row); err != nil {
			return nil, fmt.Errorf("%w: registrations entry %d: %v", model.ErrStoreCorrupt, i, err)
		}
		regs = append(regs, &model.Registration{
			SubmittedAt: row.SubmittedAt,
			Name:        row.Name,
			Class:       row.Class,
			Section:     row.Section,
			Item:        row.Item,
			Contact:     row.Contact,
			Address:     row.Address,
			Bus:         row.Bus,
			Status:      model.RegistrationStatus(row.Status),
		})
	}
	return regs, nil
}

// Notice operations

func (s *Storage) SaveNotice(ctx context.Context, notice *model.Notice) error {
	data, err := json.Marshal(noticeRow{
		PostedAt: notice.PostedAt,
		Title:    notice.Title,
		Message:  notice.Message,
		PostedBy: notice.PostedBy,
	})
	if err != nil {
		return err
	}

	if err := s.client.RPush(ctx, noticesKey(), data).Err(); err != nil {
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Storage) ListNotices(ctx context.Context) ([]*model.Notice, error) {
	rows, err := s.client.LRange(ctx, noticesKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	notices := make([]*model.Notice, 0, len(rows))
	for i, raw := range rows {
		var row noticeRow
		if err := json.Unmarshal([]byte(raw), &row); err != nil {
			return nil, fmt.Errorf("%w: notices entry %d: %v", model.ErrStoreCorrupt, i, err)
		}
		notices = append(notices, &model.Notice{
			PostedAt: row.PostedAt,
			Title:    row.Title,
			Message:  row.Message,
			PostedBy: row.PostedBy,
		})
	}
	return notices, nil
}
