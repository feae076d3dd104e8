package session

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/cateringplus/internal/client/models"
	"github.com/dmitrijs2005/cateringplus/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/cateringplus/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupMetadata(t *testing.T) (*sql.DB, *metadata.SQLiteRepository) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)
	return db, metadata.NewSQLiteRepository(db)
}

func TestMetadataRepository_EmptyLoad(t *testing.T) {
	_, meta := setupMetadata(t)
	r := NewMetadataRepository(meta)

	s, err := r.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, s.IsAuthenticated())
}

func TestMetadataRepository_SaveLoadClear(t *testing.T) {
	_, meta := setupMetadata(t)
	r := NewMetadataRepository(meta)
	ctx := context.Background()

	want := models.Session{Token: "tok", UserID: "42", UserName: "Ann"}
	require.NoError(t, r.Save(ctx, want))

	got, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, r.Clear(ctx))
	require.NoError(t, r.Clear(ctx))

	got, err = r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Session{}, got)
}

func TestMetadataRepository_ClearKeepsOtherKeys(t *testing.T) {
	_, meta := setupMetadata(t)
	r := NewMetadataRepository(meta)
	ctx := context.Background()

	require.NoError(t, meta.Set(ctx, common.DeviceIDKey, []byte("dev-1")))
	require.NoError(t, r.Save(ctx, models.Session{Token: "tok"}))
	require.NoError(t, r.Clear(ctx))

	v, err := meta.Get(ctx, common.DeviceIDKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("dev-1"), v)
}

func TestMetadataRepository_CorruptRecord(t *testing.T) {
	_, meta := setupMetadata(t)
	r := NewMetadataRepository(meta)
	ctx := context.Background()

	require.NoError(t, meta.Set(ctx, common.SessionStorageKey, []byte("{not json")))

	_, err := r.Load(ctx)
	require.ErrorContains(t, err, "decode session")
}

func TestMetadataRepository_StorageErrorPropagates(t *testing.T) {
	db, meta := setupMetadata(t)
	r := NewMetadataRepository(meta)
	require.NoError(t, db.Close())

	_, err := r.Load(context.Background())
	require.Error(t, err)
	require.False(t, errors.Is(err, metadata.ErrNotFound))
}
