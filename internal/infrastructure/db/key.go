// Package db holds what the credential store backends share.
package db

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
)

// SessionKey derives the storage key of a session id. Only the digest is
// stored, so a dump of the store cannot be replayed as cookies.
func SessionKey(id string) string {
	sum := blake2b.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}

// EncodeSession serialises a session for storage.
func EncodeSession(s *domain.Session) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return b, nil
}

// DecodeSession parses a stored session. Any failure is reported as
// domain.ErrSessionCorrupt.
func DecodeSession(b []byte) (*domain.Session, error) {
	var s domain.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionCorrupt, err)
	}
	return &s, nil
}
