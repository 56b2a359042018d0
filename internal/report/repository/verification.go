package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"reportd/internal/report/model"
)

// VerificationRepository stores the short-lived email tokens. Tokens are
// deliberately outside the audited contract: no history, no soft delete —
// a used token is removed and a TTL index reaps the stale ones.
type VerificationRepository struct {
	store Store
}

func NewVerificationRepository(store Store) *VerificationRepository {
	return &VerificationRepository{store: store}
}

func (r *VerificationRepository) FindOne(ctx context.Context, query bson.M) (*model.Verification, error) {
	var item model.Verification
	if err := r.store.FindOne(ctx, query, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *VerificationRepository) InsertOne(ctx context.Context, doc *model.Verification) (*model.Verification, error) {
	snap, err := snapshotOf(doc)
	if err != nil {
		return nil, err
	}
	if err := model.VerificationSchema.Validate(snap); err != nil {
		return nil, err
	}
	id, err := r.store.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	var stored model.Verification
	if err := r.store.FindOne(ctx, bson.M{"_id": id}, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *VerificationRepository) Remove(ctx context.Context, query bson.M) error {
	deleted, err := r.store.DeleteOne(ctx, query)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VerificationRepository) Count(ctx context.Context, query bson.M) (int64, error) {
	return r.store.CountDocuments(ctx, query)
}
