package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func f(v float64) *float64 { return &v }

func TestValidateRequired(t *testing.T) {
	s := New("thing",
		Rule{Field: "name", Kind: String, Required: true},
		Rule{Field: "note", Kind: String},
	)

	t.Run("present passes", func(t *testing.T) {
		assert.NoError(t, s.Validate(bson.M{"name": "x"}))
	})

	t.Run("missing fails", func(t *testing.T) {
		err := s.Validate(bson.M{})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "name")
	})

	t.Run("empty string counts as missing", func(t *testing.T) {
		err := s.Validate(bson.M{"name": ""})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "name")
	})

	t.Run("optional field may be absent", func(t *testing.T) {
		assert.NoError(t, s.Validate(bson.M{"name": "x"}))
		assert.NoError(t, s.Validate(bson.M{"name": "x", "note": ""}))
	})
}

func TestValidateKinds(t *testing.T) {
	s := New("thing",
		Rule{Field: "name", Kind: String},
		Rule{Field: "count", Kind: Int},
		Rule{Field: "rate", Kind: Number},
		Rule{Field: "flag", Kind: Bool},
		Rule{Field: "when", Kind: Date},
		Rule{Field: "ref", Kind: ObjectID},
	)

	t.Run("all well-typed", func(t *testing.T) {
		assert.NoError(t, s.Validate(bson.M{
			"name":  "x",
			"count": int32(3),
			"rate":  7.5,
			"flag":  true,
			"when":  time.Now(),
			"ref":   primitive.NewObjectID(),
		}))
	})

	t.Run("mismatches are collected per field", func(t *testing.T) {
		err := s.Validate(bson.M{
			"name":  123,
			"count": 1.5,
			"rate":  "not a number",
			"flag":  "yes",
			"when":  "2024-01-01",
			"ref":   "not-an-id",
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 6)
	})

	t.Run("hex string passes as object id", func(t *testing.T) {
		assert.NoError(t, s.Validate(bson.M{"ref": primitive.NewObjectID().Hex()}))
	})

	t.Run("zero number is a present value", func(t *testing.T) {
		s := New("thing", Rule{Field: "count", Kind: Int, Required: true})
		assert.NoError(t, s.Validate(bson.M{"count": 0}))
	})
}

func TestValidateEnumAndBounds(t *testing.T) {
	s := New("thing",
		Rule{Field: "status", Kind: Int, Enum: []int{0, 50, 100}},
		Rule{Field: "hours", Kind: Int, Min: f(1), Max: f(8)},
	)

	assert.NoError(t, s.Validate(bson.M{"status": 50, "hours": 8}))

	err := s.Validate(bson.M{"status": 42})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "status")

	err = s.Validate(bson.M{"hours": 9})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "hours")

	err = s.Validate(bson.M{"hours": 0})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "hours")
}

func TestValidateArrays(t *testing.T) {
	s := New("thing",
		Rule{Field: "ids", Kind: Array, Elem: &Rule{Kind: ObjectID, Required: true}},
	)

	t.Run("typed slices work like bson arrays", func(t *testing.T) {
		assert.NoError(t, s.Validate(bson.M{"ids": []primitive.ObjectID{primitive.NewObjectID()}}))
		assert.NoError(t, s.Validate(bson.M{"ids": primitive.A{primitive.NewObjectID()}}))
	})

	t.Run("offending element is named by index", func(t *testing.T) {
		err := s.Validate(bson.M{"ids": primitive.A{primitive.NewObjectID(), "bogus"}})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "ids.1")
	})

	t.Run("non-array fails", func(t *testing.T) {
		err := s.Validate(bson.M{"ids": "nope"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "ids")
	})
}

func TestValidateNested(t *testing.T) {
	inner := New("slot",
		Rule{Field: "abilityId", Kind: ObjectID, Required: true},
		Rule{Field: "hours", Kind: Int, Required: true, Min: f(1), Max: f(8)},
	)
	s := New("thing",
		Rule{Field: "abilities", Kind: Array, Required: true, Nested: inner},
	)

	t.Run("valid nested documents", func(t *testing.T) {
		assert.NoError(t, s.Validate(bson.M{"abilities": primitive.A{
			bson.M{"abilityId": primitive.NewObjectID(), "hours": 4},
			bson.D{{Key: "abilityId", Value: primitive.NewObjectID()}, {Key: "hours", Value: int32(2)}},
		}}))
	})

	t.Run("nested failure carries the full path", func(t *testing.T) {
		err := s.Validate(bson.M{"abilities": primitive.A{
			bson.M{"abilityId": primitive.NewObjectID(), "hours": 12},
		}})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "abilities.0.hours")
	})
}

func TestValidateIgnoresUnknownFields(t *testing.T) {
	s := New("thing", Rule{Field: "name", Kind: String, Required: true})
	assert.NoError(t, s.Validate(bson.M{"name": "x", "_id": primitive.NewObjectID(), "history": primitive.A{}}))
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"b": "b is broken",
		"a": "a is broken",
	}}
	assert.Equal(t, "a is broken, b is broken", err.Error())
}
