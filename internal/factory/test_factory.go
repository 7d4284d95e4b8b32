package factory

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sgs-events/eventdesk/internal/delivery"
	"github.com/sgs-events/eventdesk/internal/dependencies/mocks"
	"github.com/sgs-events/eventdesk/internal/services/admin"
	"github.com/sgs-events/eventdesk/internal/services/login"
	"github.com/sgs-events/eventdesk/internal/storage/memory"
)

// TestAdminPassword is the shared admin secret wired into test apps
const TestAdminPassword = "test-admin-secret"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom

	// Delivery captures issued codes instead of sending them
	CapturedCodes *delivery.Capture

	// AllowListPath is the temp allow-list file, writable by tests
	AllowListPath string
}

// NewTestApp creates an App configured for testing with mocked
// dependencies and an allow-list containing the given phone numbers.
// The allow-list file lives in a temp dir that is not cleaned up here;
// callers using testing.T should pass t.TempDir() derived paths via
// WriteAllowList if they care.
func NewTestApp(phones ...string) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	capture := delivery.NewCapture()

	dir, err := os.MkdirTemp("", "eventdesk-test")
	if err != nil {
		panic(fmt.Sprintf("creating temp allow-list dir: %v", err))
	}
	allowListPath := filepath.Join(dir, "allowlist.csv")
	if err := writeAllowList(allowListPath, phones); err != nil {
		panic(fmt.Sprintf("writing test allow-list: %v", err))
	}

	gate, err := admin.New(TestAdminPassword)
	if err != nil {
		panic(fmt.Sprintf("creating admin gate: %v", err))
	}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	app := newWithDependencies(store, allowListPath, gate, capture, mockClock, mockRandom, login.DefaultConfig(), logger)

	return &TestApp{
		App:           app,
		MockClock:     mockClock,
		MockRandom:    mockRandom,
		CapturedCodes: capture,
		AllowListPath: allowListPath,
	}
}

// WriteAllowList replaces the test app's allow-list contents
func (t *TestApp) WriteAllowList(phones []string) error {
	return writeAllowList(t.AllowListPath, phones)
}

func writeAllowList(path string, phones []string) error {
	contents := "mobile_number,name\n"
	for i, p := range phones {
		contents += fmt.Sprintf("%s,Student %d\n", p, i+1)
	}
	return os.WriteFile(path, []byte(contents), 0o644)
}
