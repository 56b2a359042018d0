package repository

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"reportd/internal/report/model"
	"reportd/internal/report/schema"
)

// document constrains a collection's element to a pointer type exposing the
// shared management fields.
type document[T any] interface {
	*T
	DocMeta() *model.Meta
}

// Config parameterizes one versioned collection instance.
type Config struct {
	// Schema is the validation gate run against every document before any
	// write touches the store.
	Schema *schema.Schema
	// DeletedStatus is the entity's terminal status value; reads filter it
	// out and Remove stamps it.
	DeletedStatus int
	// RenameField, when set, names the uniqueness-bearing string field that
	// gets the document id suffixed onto it on Remove, freeing the original
	// value for reuse. Empty disables the rename.
	RenameField string
}

// Collection is the audited, soft-deleting contract every persisted entity
// is built on. Writes validate the candidate, compute a structural diff
// against the prior version and append it to the embedded history; deletes
// flag instead of removing, and flagged documents are invisible to Find,
// FindOne and Count.
//
// Update and Remove are read-modify-write sequences without an optimistic
// concurrency token: under concurrent updates the last writer wins and the
// loser's history entry may describe a superseded baseline. That tradeoff is
// part of the contract, not an oversight.
type Collection[T any, D document[T]] struct {
	store Store
	cfg   Config
}

func NewCollection[T any, D document[T]](store Store, cfg Config) *Collection[T, D] {
	return &Collection[T, D]{store: store, cfg: cfg}
}

func (c *Collection[T, D]) notDeleted() bson.M {
	return bson.M{"status": bson.M{"$ne": c.cfg.DeletedStatus}}
}

// Find returns all non-deleted documents matching query. Ordering is
// store-native.
func (c *Collection[T, D]) Find(ctx context.Context, query bson.M) ([]D, error) {
	var items []T
	err := c.store.Find(ctx, bson.M{"$and": []bson.M{query, c.notDeleted()}}, &items)
	if err != nil {
		return nil, err
	}
	docs := make([]D, len(items))
	for i := range items {
		docs[i] = &items[i]
	}
	return docs, nil
}

// FindOne returns the first non-deleted match, or ErrNotFound.
func (c *Collection[T, D]) FindOne(ctx context.Context, query bson.M) (D, error) {
	var item T
	err := c.store.FindOne(ctx, bson.M{"$and": []bson.M{query, c.notDeleted()}}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Aggregate passes the pipeline straight through. No soft-delete filter is
// applied; reporting pipelines that want it must include it themselves.
func (c *Collection[T, D]) Aggregate(ctx context.Context, pipeline []bson.M) ([]D, error) {
	var items []T
	if err := c.store.Aggregate(ctx, pipeline, &items); err != nil {
		return nil, err
	}
	docs := make([]D, len(items))
	for i := range items {
		docs[i] = &items[i]
	}
	return docs, nil
}

// InsertOne stamps the management fields, seeds the history with a CREATED
// entry holding the full initial field set, validates and persists. The
// returned document is re-read from the store so assigned fields are
// populated.
func (c *Collection[T, D]) InsertOne(ctx context.Context, doc D) (D, error) {
	if err := c.prepareInsert(doc, time.Now().UTC()); err != nil {
		return nil, err
	}
	id, err := c.store.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	var stored T
	if err := c.store.FindOne(ctx, bson.M{"_id": id}, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// InsertMany applies the same per-document treatment; one invalid candidate
// aborts the whole batch before any write happens.
func (c *Collection[T, D]) InsertMany(ctx context.Context, docs []D) ([]D, error) {
	now := time.Now().UTC()
	raw := make([]any, 0, len(docs))
	for _, doc := range docs {
		if err := c.prepareInsert(doc, now); err != nil {
			return nil, err
		}
		raw = append(raw, doc)
	}
	ids, err := c.store.InsertMany(ctx, raw)
	if err != nil {
		return nil, err
	}
	var stored []T
	if err := c.store.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, &stored); err != nil {
		return nil, err
	}
	out := make([]D, len(stored))
	for i := range stored {
		out[i] = &stored[i]
	}
	return out, nil
}

func (c *Collection[T, D]) prepareInsert(doc D, now time.Time) error {
	snap, err := snapshotOf(doc)
	if err != nil {
		return err
	}
	meta := doc.DocMeta()
	meta.CreatedAt = now
	meta.UpdatedAt = now
	meta.History = []model.HistoryEntry{{
		CreatedAt:      now,
		Action:         model.HistoryCreated,
		ModifiedValues: Diff(Snapshot{}, snap),
	}}
	return c.cfg.Schema.Validate(snap)
}

// Update replaces the stored document with the candidate, which must carry
// an existing _id. The prior version is read first; a MODIFIED history entry
// is computed against it and the prior createdAt and history are merged into
// the candidate before validation. The store-side filter excludes deleted
// documents, so updating a soft-deleted id yields ErrNotFound rather than a
// resurrect.
func (c *Collection[T, D]) Update(ctx context.Context, doc D) (D, error) {
	meta := doc.DocMeta()
	if meta.ID.IsZero() {
		return nil, fmt.Errorf("update: candidate carries no _id: %w", ErrNotFound)
	}

	old, err := c.FindOne(ctx, bson.M{"_id": meta.ID})
	if err != nil {
		return nil, err
	}

	oldSnap, err := snapshotOf(old)
	if err != nil {
		return nil, err
	}
	newSnap, err := snapshotOf(doc)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	oldMeta := old.DocMeta()
	meta.CreatedAt = oldMeta.CreatedAt
	meta.UpdatedAt = now
	meta.History = append(slices.Clone(oldMeta.History), model.HistoryEntry{
		CreatedAt:      now,
		Action:         model.HistoryModified,
		ModifiedValues: Diff(oldSnap, newSnap),
	})

	if err := c.cfg.Schema.Validate(newSnap); err != nil {
		return nil, err
	}

	var stored T
	err = c.store.FindOneAndReplace(ctx, bson.M{
		"_id":    meta.ID,
		"status": bson.M{"$ne": c.cfg.DeletedStatus},
	}, doc, &stored)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// Remove soft-deletes the first non-deleted match: appends a DELETED history
// entry, frees the rename field by suffixing the id, forces the deleted
// status and leaves the row in storage. A second call on the same document
// no longer finds it and returns ErrNotFound.
func (c *Collection[T, D]) Remove(ctx context.Context, query bson.M) error {
	old, err := c.FindOne(ctx, query)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	oldMeta := old.DocMeta()
	history := append(slices.Clone(oldMeta.History), model.HistoryEntry{
		CreatedAt:      now,
		Action:         model.HistoryDeleted,
		ModifiedValues: bson.M{"status": c.cfg.DeletedStatus},
	})

	set := bson.M{
		"status":    c.cfg.DeletedStatus,
		"updatedAt": now,
		"history":   history,
	}
	if c.cfg.RenameField != "" {
		oldSnap, err := snapshotOf(old)
		if err != nil {
			return err
		}
		if name, ok := oldSnap[c.cfg.RenameField].(string); ok {
			set[c.cfg.RenameField] = fmt.Sprintf("%s - %s", name, oldMeta.ID.Hex())
		}
	}

	matched, err := c.store.UpdateOne(ctx, bson.M{
		"_id":    oldMeta.ID,
		"status": bson.M{"$ne": c.cfg.DeletedStatus},
	}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrNotFound
	}
	return nil
}

// Count counts the non-deleted documents matching query.
func (c *Collection[T, D]) Count(ctx context.Context, query bson.M) (int64, error) {
	return c.store.CountDocuments(ctx, bson.M{"$and": []bson.M{query, c.notDeleted()}})
}

// snapshotOf round-trips a document through bson so both sides of a diff see
// the same value shapes regardless of where they came from.
func snapshotOf(doc any) (Snapshot, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := bson.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return snap, nil
}
