package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemStore is an in-memory Store with mongo-compatible filter semantics for
// the operator subset the collections use. It backs the test suites and
// lets the server run without a database; it is not a mongo replacement.
type MemStore struct {
	mu   sync.Mutex
	docs []bson.M
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

// MemDatabase hands out one MemStore per collection name.
type MemDatabase struct {
	mu     sync.Mutex
	stores map[string]*MemStore
}

func NewMemDatabase() *MemDatabase {
	return &MemDatabase{stores: map[string]*MemStore{}}
}

func (d *MemDatabase) Collection(name string) Store {
	d.mu.Lock()
	defer d.mu.Unlock()
	if store, ok := d.stores[name]; ok {
		return store
	}
	store := NewMemStore()
	d.stores[name] = store
	return store
}

func (s *MemStore) Find(ctx context.Context, filter bson.M, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	matches := []bson.M{}
	for _, doc := range s.docs {
		if matchFilter(filter, doc) {
			matches = append(matches, doc)
		}
	}
	return decodeSlice(matches, out)
}

func (s *MemStore) FindOne(ctx context.Context, filter bson.M, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.docs {
		if matchFilter(filter, doc) {
			return decodeDoc(doc, out)
		}
	}
	return ErrNotFound
}

// Aggregate supports $match-only pipelines, which is all the in-memory
// callers need.
func (s *MemStore) Aggregate(ctx context.Context, pipeline []bson.M, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	matches := append([]bson.M{}, s.docs...)
	for _, stage := range pipeline {
		match, ok := stage["$match"].(bson.M)
		if !ok || len(stage) != 1 {
			return errors.New("memstore: only $match pipeline stages are supported")
		}
		kept := []bson.M{}
		for _, doc := range matches {
			if matchFilter(match, doc) {
				kept = append(kept, doc)
			}
		}
		matches = kept
	}
	return decodeSlice(matches, out)
}

func (s *MemStore) InsertOne(ctx context.Context, doc any) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(doc)
}

func (s *MemStore) InsertMany(ctx context.Context, docs []any) ([]primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, doc := range docs {
		id, err := s.insertLocked(doc)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *MemStore) insertLocked(doc any) (primitive.ObjectID, error) {
	m, err := toDoc(doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := m["_id"].(primitive.ObjectID)
	if !ok || id.IsZero() {
		id = primitive.NewObjectID()
		m["_id"] = id
	}
	s.docs = append(s.docs, m)
	return id, nil
}

func (s *MemStore) FindOneAndReplace(ctx context.Context, filter bson.M, replacement, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, doc := range s.docs {
		if !matchFilter(filter, doc) {
			continue
		}
		m, err := toDoc(replacement)
		if err != nil {
			return err
		}
		m["_id"] = doc["_id"]
		s.docs[i] = m
		return decodeDoc(m, out)
	}
	return ErrNotFound
}

func (s *MemStore) UpdateOne(ctx context.Context, filter, update bson.M) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, doc := range s.docs {
		if !matchFilter(filter, doc) {
			continue
		}
		next := bson.M{}
		for k, v := range doc {
			next[k] = v
		}
		if set, ok := update["$set"].(bson.M); ok {
			for k, v := range set {
				normalized, err := normalizeValue(v)
				if err != nil {
					return 0, err
				}
				next[k] = normalized
			}
		}
		if unset, ok := update["$unset"].(bson.M); ok {
			for k := range unset {
				delete(next, k)
			}
		}
		s.docs[i] = next
		return 1, nil
	}
	return 0, nil
}

func (s *MemStore) DeleteOne(ctx context.Context, filter bson.M) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, doc := range s.docs {
		if matchFilter(filter, doc) {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *MemStore) CountDocuments(ctx context.Context, filter bson.M) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, doc := range s.docs {
		if matchFilter(filter, doc) {
			count++
		}
	}
	return count, nil
}

func matchFilter(filter, doc bson.M) bool {
	for key, cond := range filter {
		switch key {
		case "$and":
			for _, sub := range subFilters(cond) {
				if !matchFilter(sub, doc) {
					return false
				}
			}
		case "$or":
			matched := false
			for _, sub := range subFilters(cond) {
				if matchFilter(sub, doc) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		default:
			if !matchField(doc[key], cond, doc, key) {
				return false
			}
		}
	}
	return true
}

func matchField(value, cond any, doc bson.M, key string) bool {
	ops, ok := asMap(cond)
	if !ok || !hasOperators(ops) {
		return valueEqual(value, cond)
	}
	for op, arg := range ops {
		switch op {
		case "$ne":
			if valueEqual(value, arg) {
				return false
			}
		case "$in":
			found := false
			for _, member := range toSequence(arg) {
				if valueEqual(value, member) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case "$exists":
			_, present := doc[key]
			if want, _ := arg.(bool); present != want {
				return false
			}
		case "$gt", "$gte", "$lt", "$lte":
			cmp, ok := compareValues(value, arg)
			if !ok {
				return false
			}
			switch op {
			case "$gt":
				if cmp <= 0 {
					return false
				}
			case "$gte":
				if cmp < 0 {
					return false
				}
			case "$lt":
				if cmp >= 0 {
					return false
				}
			case "$lte":
				if cmp > 0 {
					return false
				}
			}
		default:
			return false
		}
	}
	return true
}

func hasOperators(m bson.M) bool {
	for key := range m {
		if len(key) > 0 && key[0] == '$' {
			return true
		}
	}
	return false
}

func subFilters(cond any) []bson.M {
	switch v := cond.(type) {
	case []bson.M:
		return v
	case bson.A:
		subs := make([]bson.M, 0, len(v))
		for _, item := range v {
			if m, ok := asMap(item); ok {
				subs = append(subs, m)
			}
		}
		return subs
	case []any:
		subs := make([]bson.M, 0, len(v))
		for _, item := range v {
			if m, ok := asMap(item); ok {
				subs = append(subs, m)
			}
		}
		return subs
	}
	return nil
}

func toSequence(val any) []any {
	if items, ok := asSequence(val); ok {
		return items
	}
	return nil
}

func compareValues(a, b any) (int, bool) {
	if at, aok := asTime(a); aok {
		if bt, bok := asTime(b); bok {
			switch {
			case at.Before(bt):
				return -1, true
			case at.After(bt):
				return 1, true
			}
			return 0, true
		}
		return 0, false
	}
	an, aok := asNumber(a)
	bn, bok := asNumber(b)
	if !aok || !bok {
		return 0, false
	}
	switch {
	case an < bn:
		return -1, true
	case an > bn:
		return 1, true
	}
	return 0, true
}

// toDoc normalizes any value into the document shape bson produces, so
// stored documents and filter values compare consistently.
func toDoc(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func normalizeValue(val any) (any, error) {
	raw, err := bson.Marshal(bson.M{"v": val})
	if err != nil {
		return nil, err
	}
	var wrapper bson.M
	if err := bson.Unmarshal(raw, &wrapper); err != nil {
		return nil, err
	}
	return wrapper["v"], nil
}

func decodeDoc(doc bson.M, out any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

func decodeSlice(docs []bson.M, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("memstore: decode target must be a slice pointer, got %T", out)
	}
	slice := rv.Elem()
	result := reflect.MakeSlice(slice.Type(), 0, len(docs))
	for _, doc := range docs {
		raw, err := bson.Marshal(doc)
		if err != nil {
			return err
		}
		elem := reflect.New(slice.Type().Elem())
		if err := bson.Unmarshal(raw, elem.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, elem.Elem())
	}
	slice.Set(result)
	return nil
}
