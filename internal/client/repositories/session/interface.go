// Package session is the durable storage boundary of the session store: one
// JSON record under common.SessionStorageKey, read at start-up and written
// on every session change.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/cateringplus/internal/client/models"
)

// Repository persists the session record. Load returns a zero Session when
// nothing is stored. Clear is idempotent.
type Repository interface {
	Load(ctx context.Context) (models.Session, error)
	Save(ctx context.Context, s models.Session) error
	Clear(ctx context.Context) error
}

func encode(s models.Session) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return b, nil
}

func decode(b []byte) (models.Session, error) {
	var s models.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return models.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}
