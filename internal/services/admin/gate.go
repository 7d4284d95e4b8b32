// Package admin implements the shared-secret gate in front of notice
// posting. There is no admin user registry; one static secret, configured
// at startup, authorizes the single admin role.
package admin

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/sgs-events/eventdesk/internal/model"
)

// Gate checks admin password attempts against the configured secret.
// Only a bcrypt hash of the secret is retained.
type Gate struct {
	hash []byte
}

// New creates a Gate for the given shared secret
func New(secret string) (*Gate, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Gate{hash: hash}, nil
}

// NewFromHash creates a Gate from a pre-computed bcrypt hash
func NewFromHash(hash string) *Gate {
	return &Gate{hash: []byte(hash)}
}

// Authorize compares an attempt against the secret. A mismatch is
// ErrWrongAdminPassword; the caller decides retry policy.
func (g *Gate) Authorize(attempt string) error {
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(attempt)); err != nil {
		return model.ErrWrongAdminPassword
	}
	return nil
}
