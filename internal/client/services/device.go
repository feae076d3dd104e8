package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/cateringplus/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/cateringplus/internal/common"
	"github.com/dmitrijs2005/cateringplus/internal/dbx"
	"github.com/google/uuid"
)

// EnsureDeviceID returns configured when set. Otherwise it returns the
// device id stored in the local metadata table, generating and storing a
// new one on first run.
func EnsureDeviceID(ctx context.Context, db *sql.DB, configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}

	var id string
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)

		stored, err := repo.Get(ctx, common.DeviceIDKey)
		if err == nil && len(stored) > 0 {
			id = string(stored)
			return nil
		}
		if err != nil && !errors.Is(err, metadata.ErrNotFound) {
			return err
		}

		// iOS-style upper-case identifier
		id = strings.ToUpper(uuid.NewString())
		return repo.Set(ctx, common.DeviceIDKey, []byte(id))
	})
	if err != nil {
		return "", err
	}
	return id, nil
}
