package session

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/cateringplus/internal/client/models"
	"github.com/dmitrijs2005/cateringplus/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/cateringplus/internal/common"
)

// MetadataRepository keeps the session in the local SQLite metadata table.
type MetadataRepository struct {
	meta metadata.Repository
}

func NewMetadataRepository(meta metadata.Repository) *MetadataRepository {
	return &MetadataRepository{meta: meta}
}

func (r *MetadataRepository) Load(ctx context.Context) (models.Session, error) {
	b, err := r.meta.Get(ctx, common.SessionStorageKey)
	if errors.Is(err, metadata.ErrNotFound) {
		return models.Session{}, nil
	}
	if err != nil {
		return models.Session{}, err
	}
	return decode(b)
}

func (r *MetadataRepository) Save(ctx context.Context, s models.Session) error {
	b, err := encode(s)
	if err != nil {
		return err
	}
	return r.meta.Set(ctx, common.SessionStorageKey, b)
}

func (r *MetadataRepository) Clear(ctx context.Context) error {
	return r.meta.Delete(ctx, common.SessionStorageKey)
}
