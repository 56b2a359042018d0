package repository

import (
	"reflect"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Snapshot is a plain, storage-independent view of an entity's fields at one
// point in time.
type Snapshot = bson.M

// managedFields are the collection-owned fields; they never show up in a
// change set, at any nesting level.
var managedFields = map[string]bool{
	"_id":       true,
	"createdAt": true,
	"updatedAt": true,
	"history":   true,
}

// Diff compares two snapshots field by field and returns the change set:
// removed fields and explicit nulls surface as nil, new fields carry their
// full value (a freshly introduced empty array is not a change), changed
// sequences are compared by membership regardless of order and recorded as
// {new, prev}, and a changed nested object is recorded whole. Diff is total:
// it never fails, and shapes it does not recognize fall back to plain
// replacement.
func Diff(prev, next Snapshot) Snapshot {
	out := Snapshot{}

	keys := map[string]bool{}
	for key := range prev {
		keys[key] = true
	}
	for key := range next {
		keys[key] = true
	}

	for key := range keys {
		if managedFields[key] {
			continue
		}
		prevVal, prevOK := lookup(prev, key)
		nextVal, nextOK := lookup(next, key)

		switch {
		case !prevOK && !nextOK:
			// absent (or null) on both sides, nothing happened
		case prevOK && !nextOK:
			out[key] = nil
		case !prevOK && nextOK:
			if isEmptyArray(nextVal) {
				continue
			}
			out[key] = nextVal
		default:
			if valueEqual(prevVal, nextVal) {
				continue
			}
			if added, removed, ok := sequenceDiff(prevVal, nextVal); ok {
				if len(added) == 0 && len(removed) == 0 {
					continue
				}
				out[key] = bson.M{"new": added, "prev": removed}
				continue
			}
			if prevMap, ok := asMap(prevVal); ok {
				if nextMap, ok := asMap(nextVal); ok {
					if len(Diff(prevMap, nextMap)) == 0 {
						continue
					}
					// nested objects are recorded whole, not as a partial diff
					out[key] = nextVal
					continue
				}
			}
			out[key] = nextVal
		}
	}

	return out
}

// lookup treats an explicit null the same as a missing key.
func lookup(snap Snapshot, key string) (any, bool) {
	val, ok := snap[key]
	if !ok || val == nil {
		return nil, false
	}
	return val, true
}

func isEmptyArray(val any) bool {
	items, ok := asSequence(val)
	return ok && len(items) == 0
}

// sequenceDiff compares two sequences as multisets: an element counts as
// changed only when no structurally equal counterpart exists on the other
// side. Returns ok=false when either value is not a sequence.
func sequenceDiff(prevVal, nextVal any) (added, removed []any, ok bool) {
	prevItems, prevOK := asSequence(prevVal)
	nextItems, nextOK := asSequence(nextVal)
	if !prevOK || !nextOK {
		return nil, nil, false
	}

	added = []any{}
	removed = []any{}
	used := make([]bool, len(prevItems))

	for _, item := range nextItems {
		found := false
		for i, prevItem := range prevItems {
			if !used[i] && valueEqual(prevItem, item) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			added = append(added, item)
		}
	}
	for i, prevItem := range prevItems {
		if !used[i] {
			removed = append(removed, prevItem)
		}
	}
	return added, removed, true
}

// valueEqual is structural equality over snapshot values: dates compare by
// instant, numbers by value across widths, documents and sequences
// recursively, everything else strictly.
func valueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if at, aok := asTime(a); aok {
		bt, bok := asTime(b)
		return bok && at.Equal(bt)
	}
	if an, aok := asNumber(a); aok {
		bn, bok := asNumber(b)
		return bok && an == bn
	}
	if am, aok := asMap(a); aok {
		bm, bok := asMap(b)
		if !bok || len(am) != len(bm) {
			return false
		}
		for key, av := range am {
			bv, ok := bm[key]
			if !ok || !valueEqual(av, bv) {
				return false
			}
		}
		return true
	}
	if as, aok := asSequence(a); aok {
		bs, bok := asSequence(b)
		if !bok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !valueEqual(as[i], bs[i]) {
				return false
			}
		}
		return true
	}

	return reflect.DeepEqual(a, b)
}

func asTime(val any) (time.Time, bool) {
	switch v := val.(type) {
	case time.Time:
		return v, true
	case primitive.DateTime:
		return v.Time(), true
	}
	return time.Time{}, false
}

func asNumber(val any) (float64, bool) {
	switch v := val.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func asMap(val any) (bson.M, bool) {
	switch v := val.(type) {
	case bson.M:
		return v, true
	case map[string]any:
		return v, true
	case bson.D:
		return v.Map(), true
	}
	return nil, false
}

// asSequence accepts the bson array shapes plus arbitrary typed slices, so
// hand-built snapshots diff the same way as store round-tripped ones.
func asSequence(val any) ([]any, bool) {
	switch v := val.(type) {
	case primitive.A:
		return v, true
	case []any:
		return v, true
	case primitive.ObjectID:
		// an ObjectID is an array of bytes to reflect; treat it as a scalar
		return nil, false
	}
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}
