package factory

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/sgs-events/eventdesk/internal/allowlist"
	"github.com/sgs-events/eventdesk/internal/delivery"
	"github.com/sgs-events/eventdesk/internal/dependencies/clock"
	"github.com/sgs-events/eventdesk/internal/dependencies/random"
	"github.com/sgs-events/eventdesk/internal/services/admin"
	"github.com/sgs-events/eventdesk/internal/services/login"
	"github.com/sgs-events/eventdesk/internal/services/notice"
	"github.com/sgs-events/eventdesk/internal/services/registration"
	"github.com/sgs-events/eventdesk/internal/storage"
	csvstorage "github.com/sgs-events/eventdesk/internal/storage/csv"
	"github.com/sgs-events/eventdesk/internal/storage/memory"
	redisstorage "github.com/sgs-events/eventdesk/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeCSV    = "csv"
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Filenames used by the CSV backend under DataDir
const (
	registrationFilename = "registrations.csv"
	noticeFilename       = "notices.csv"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock    clock.Clock
	Random   random.Random
	Delivery delivery.CodeDelivery

	// Services
	AllowList           *allowlist.Service
	AdminGate           *admin.Gate
	LoginService        *login.Service
	RegistrationService *registration.Service
	NoticeService       *notice.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("csv", "memory" or "redis")
	// If empty, defaults to "csv"
	StorageType string
	// DataDir is where the CSV backend keeps its files (required if
	// StorageType is "csv")
	DataDir string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// AllowListPath is the path to the allow-list CSV. The file is never
	// created automatically; a missing file makes login unavailable.
	AllowListPath string
	// AdminPassword is the shared admin secret (plaintext, hashed at startup)
	AdminPassword string
	// LoginConfig holds configuration for the login service (optional)
	// If zero value, defaults to login.DefaultConfig()
	LoginConfig login.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeCSV
	}

	switch storageType {
	case StorageTypeCSV:
		if cfg.DataDir == "" {
			return nil, errors.New("DataDir required when StorageType is csv")
		}
		csvStore, err := csvstorage.New(
			filepath.Join(cfg.DataDir, registrationFilename),
			filepath.Join(cfg.DataDir, noticeFilename),
			logger,
		)
		if err != nil {
			return nil, err
		}
		store = csvStore
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'csv', 'memory' or 'redis'")
	}

	if cfg.AllowListPath == "" {
		return nil, errors.New("AllowListPath is required")
	}
	if cfg.AdminPassword == "" {
		return nil, errors.New("AdminPassword is required")
	}

	gate, err := admin.New(cfg.AdminPassword)
	if err != nil {
		return nil, err
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()
	codeDelivery := delivery.NewLogDelivery(logger)

	// Use default login config if not provided
	loginCfg := cfg.LoginConfig
	if loginCfg.SessionDuration == 0 {
		loginCfg = login.DefaultConfig()
	}

	return newWithDependencies(store, cfg.AllowListPath, gate, codeDelivery, clk, rnd, loginCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	allowListPath string,
	gate *admin.Gate,
	codeDelivery delivery.CodeDelivery,
	clk clock.Clock,
	rnd random.Random,
	loginCfg login.Config,
	logger *slog.Logger,
) *App {
	// Create services
	allowList := allowlist.New(allowListPath, logger)
	loginService := login.New(allowList, gate, codeDelivery, clk, rnd, loginCfg, logger)
	registrationService := registration.New(store, clk, logger)
	noticeService := notice.New(store, clk, logger)

	return &App{
		Storage:             store,
		Clock:               clk,
		Random:              rnd,
		Delivery:            codeDelivery,
		AllowList:           allowList,
		AdminGate:           gate,
		LoginService:        loginService,
		RegistrationService: registrationService,
		NoticeService:       noticeService,
	}
}
