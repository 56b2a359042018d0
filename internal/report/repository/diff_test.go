package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDiffNoChanges(t *testing.T) {
	snap := Snapshot{"name": "Acme", "status": 0, "rate": 12.5}
	assert.Empty(t, Diff(snap, snap))
}

func TestDiffScalarChange(t *testing.T) {
	prev := Snapshot{"name": "Acme", "status": 0}
	next := Snapshot{"name": "Acme Inc", "status": 0}

	changes := Diff(prev, next)
	assert.Equal(t, Snapshot{"name": "Acme Inc"}, changes)
}

func TestDiffRemovedAndNullFields(t *testing.T) {
	t.Run("removed key surfaces as nil", func(t *testing.T) {
		prev := Snapshot{"name": "Acme", "description": "old"}
		next := Snapshot{"name": "Acme"}

		changes := Diff(prev, next)
		assert.Len(t, changes, 1)
		val, ok := changes["description"]
		assert.True(t, ok)
		assert.Nil(t, val)
	})

	t.Run("explicit null counts as removed", func(t *testing.T) {
		prev := Snapshot{"name": "Acme", "description": "old"}
		next := Snapshot{"name": "Acme", "description": nil}

		changes := Diff(prev, next)
		val, ok := changes["description"]
		assert.True(t, ok)
		assert.Nil(t, val)
	})

	t.Run("null on both sides is not a change", func(t *testing.T) {
		prev := Snapshot{"description": nil}
		next := Snapshot{}
		assert.Empty(t, Diff(prev, next))
	})
}

func TestDiffNewFields(t *testing.T) {
	t.Run("new key is recorded verbatim", func(t *testing.T) {
		prev := Snapshot{"name": "Acme"}
		next := Snapshot{"name": "Acme", "description": "fresh"}

		changes := Diff(prev, next)
		assert.Equal(t, Snapshot{"description": "fresh"}, changes)
	})

	t.Run("new empty array is not a change", func(t *testing.T) {
		prev := Snapshot{"name": "Acme"}
		next := Snapshot{"name": "Acme", "abilities": primitive.A{}}

		assert.Empty(t, Diff(prev, next))
	})

	t.Run("new non-empty array is recorded verbatim", func(t *testing.T) {
		id := primitive.NewObjectID()
		prev := Snapshot{"name": "Acme"}
		next := Snapshot{"name": "Acme", "abilities": primitive.A{id}}

		changes := Diff(prev, next)
		assert.Equal(t, primitive.A{id}, changes["abilities"])
	})
}

func TestDiffManagedFieldsNeverAppear(t *testing.T) {
	prev := Snapshot{
		"_id":       primitive.NewObjectID(),
		"createdAt": time.Now().Add(-time.Hour),
		"updatedAt": time.Now().Add(-time.Hour),
		"history":   primitive.A{bson.M{"action": "CREATED"}},
		"name":      "Acme",
	}
	next := Snapshot{
		"_id":       primitive.NewObjectID(),
		"createdAt": time.Now(),
		"updatedAt": time.Now(),
		"history":   primitive.A{},
		"name":      "Umbrella",
	}

	changes := Diff(prev, next)
	assert.Equal(t, Snapshot{"name": "Umbrella"}, changes)
}

func TestDiffDates(t *testing.T) {
	instant := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("same instant across representations is not a change", func(t *testing.T) {
		prev := Snapshot{"since": primitive.NewDateTimeFromTime(instant)}
		next := Snapshot{"since": instant}
		assert.Empty(t, Diff(prev, next))
	})

	t.Run("moved date is recorded verbatim", func(t *testing.T) {
		moved := instant.Add(48 * time.Hour)
		prev := Snapshot{"since": instant}
		next := Snapshot{"since": moved}

		changes := Diff(prev, next)
		assert.Equal(t, Snapshot{"since": moved}, changes)
	})
}

func TestDiffNumericWidths(t *testing.T) {
	prev := Snapshot{"rate": int32(5)}
	next := Snapshot{"rate": float64(5)}
	assert.Empty(t, Diff(prev, next))
}

func TestDiffSequences(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()

	t.Run("reorder is not a change", func(t *testing.T) {
		prev := Snapshot{"abilities": primitive.A{a, b}}
		next := Snapshot{"abilities": primitive.A{b, a}}
		assert.Empty(t, Diff(prev, next))
	})

	t.Run("membership change records new and prev", func(t *testing.T) {
		prev := Snapshot{"abilities": primitive.A{a, b}}
		next := Snapshot{"abilities": primitive.A{b, c}}

		changes := Diff(prev, next)
		assert.Equal(t, bson.M{"new": []any{c}, "prev": []any{a}}, changes["abilities"])
	})

	t.Run("duplicates count by multiplicity", func(t *testing.T) {
		prev := Snapshot{"tags": primitive.A{"x", "x"}}
		next := Snapshot{"tags": primitive.A{"x"}}

		changes := Diff(prev, next)
		assert.Equal(t, bson.M{"new": []any{}, "prev": []any{"x"}}, changes["tags"])
	})

	t.Run("element documents compare structurally", func(t *testing.T) {
		prev := Snapshot{"abilities": primitive.A{bson.M{"abilityId": a, "hours": 4}}}
		next := Snapshot{"abilities": primitive.A{bson.D{{Key: "abilityId", Value: a}, {Key: "hours", Value: int32(4)}}}}
		assert.Empty(t, Diff(prev, next))
	})
}

func TestDiffNestedObjects(t *testing.T) {
	t.Run("unchanged nested object across shapes", func(t *testing.T) {
		prev := Snapshot{"address": bson.M{"city": "Oslo", "zip": "0150"}}
		next := Snapshot{"address": bson.D{{Key: "zip", Value: "0150"}, {Key: "city", Value: "Oslo"}}}
		assert.Empty(t, Diff(prev, next))
	})

	t.Run("changed nested object is recorded whole", func(t *testing.T) {
		prev := Snapshot{"address": bson.M{"city": "Oslo", "zip": "0150"}}
		next := Snapshot{"address": bson.M{"city": "Bergen", "zip": "0150"}}

		changes := Diff(prev, next)
		assert.Equal(t, bson.M{"city": "Bergen", "zip": "0150"}, changes["address"])
	})
}

func TestDiffShapeMismatchFallsBackToReplacement(t *testing.T) {
	prev := Snapshot{"value": "text"}
	next := Snapshot{"value": 42}

	changes := Diff(prev, next)
	assert.Equal(t, Snapshot{"value": 42}, changes)
}

func TestDiffCreatedSeed(t *testing.T) {
	// The CREATED history entry is the diff against an empty snapshot: the
	// full initial field set minus freshly introduced empty arrays.
	id := primitive.NewObjectID()
	snap := Snapshot{
		"name":      "Acme",
		"status":    0,
		"companyId": id,
		"abilities": primitive.A{},
	}

	changes := Diff(Snapshot{}, snap)
	assert.Equal(t, Snapshot{"name": "Acme", "status": 0, "companyId": id}, changes)
}
