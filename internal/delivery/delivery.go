// Package delivery defines the out-of-band channel a login code travels
// through. The verifying channel (the API response) must never carry the
// code; anything that needs it goes through CodeDelivery.
package delivery

import (
	"context"
	"log/slog"
	"sync"
)

// CodeDelivery sends a one-time login code to a phone number
type CodeDelivery interface {
	Send(ctx context.Context, phone, code string) error
}

// LogDelivery writes codes to the server log instead of sending them.
// This is a test-mode stand-in for an SMS gateway: an operator watching
// the log can relay the code, but the requester's own channel never sees
// it. Swap in a real gateway implementation for any real deployment.
type LogDelivery struct {
	logger *slog.Logger
}

// NewLogDelivery creates a LogDelivery
func NewLogDelivery(logger *slog.Logger) *LogDelivery {
	return &LogDelivery{logger: logger}
}

// Send logs the code
func (d *LogDelivery) Send(ctx context.Context, phone, code string) error {
	d.logger.Warn("login code issued (test-mode delivery, not sent to user)",
		slog.String("phone", phone),
		slog.String("code", code),
	)
	return nil
}

// Capture records sent codes in memory so tests can read them back
type Capture struct {
	mu    sync.Mutex
	codes map[string]string
	sent  int
}

// NewCapture creates a Capture delivery
func NewCapture() *Capture {
	return &Capture{codes: make(map[string]string)}
}

// Send records the code for the phone
func (d *Capture) Send(ctx context.Context, phone, code string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.codes[phone] = code
	d.sent++
	return nil
}

// LastCode returns the most recent code sent to the phone
func (d *Capture) LastCode(phone string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.codes[phone]
}

// SentCount returns the total number of sends
func (d *Capture) SentCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sent
}

var (
	_ CodeDelivery = (*LogDelivery)(nil)
	_ CodeDelivery = (*Capture)(nil)
)
