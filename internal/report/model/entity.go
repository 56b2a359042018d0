package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryEntry is one immutable audit record embedded in an entity. Entries
// are append-only and never reordered or pruned.
type HistoryEntry struct {
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	Action         string    `bson:"action" json:"action"`
	ModifiedValues bson.M    `bson:"modifiedValues" json:"modifiedValues"`
}

// Meta carries the management fields shared by every audited entity. The
// collection layer owns them: _id is assigned by the store, createdAt is set
// once, updatedAt is refreshed on every write and history only grows.
type Meta struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
	History   []HistoryEntry     `bson:"history" json:"history"`
}

func (m *Meta) DocMeta() *Meta { return m }
