// Package schema implements declarative document validation: each entity
// declares a list of field rules that are evaluated against the assembled
// document right before it is persisted. Rules are plain data, not struct
// tags, so the same schema can be checked against any snapshot shape.
package schema

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Kind int

const (
	String Kind = iota
	Int
	Number
	Bool
	Date
	ObjectID
	Object
	Array
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "integer"
	case Number:
		return "number"
	case Bool:
		return "boolean"
	case Date:
		return "date"
	case ObjectID:
		return "object id"
	case Object:
		return "object"
	case Array:
		return "array"
	}
	return "unknown"
}

// Rule describes the constraints for one document field.
type Rule struct {
	Field    string
	Kind     Kind
	Required bool
	Enum     []int    // membership set for integer enums
	Min      *float64 // numeric lower bound, inclusive
	Max      *float64 // numeric upper bound, inclusive
	Elem     *Rule    // element rule for Array fields
	Nested   *Schema  // sub-schema for Object fields or object array elements
}

type Schema struct {
	Name  string
	Rules []Rule
}

func New(name string, rules ...Rule) *Schema {
	return &Schema{Name: name, Rules: rules}
}

// ValidationError carries one message per offending field. It is recoverable
// by the caller: fix the named fields and retry.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return strings.Join(parts, ", ")
}

// Validate checks doc against the schema. Fields the schema does not know
// about are ignored; the collection layer owns the management fields.
func (s *Schema) Validate(doc bson.M) error {
	fields := map[string]string{}
	for _, rule := range s.Rules {
		checkRule(rule, rule.Field, doc[rule.Field], fields)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func checkRule(rule Rule, path string, value any, fields map[string]string) {
	if isAbsent(rule, value) {
		if rule.Required {
			fields[path] = fmt.Sprintf("%s should not be empty", path)
		}
		return
	}

	switch rule.Kind {
	case String:
		if _, ok := value.(string); !ok {
			fields[path] = fmt.Sprintf("%s must be a string", path)
		}
	case Int:
		n, ok := asNumber(value)
		if !ok || n != float64(int64(n)) {
			fields[path] = fmt.Sprintf("%s must be an integer", path)
			return
		}
		checkBounds(rule, path, n, fields)
	case Number:
		n, ok := asNumber(value)
		if !ok {
			fields[path] = fmt.Sprintf("%s must be a number", path)
			return
		}
		checkBounds(rule, path, n, fields)
	case Bool:
		if _, ok := value.(bool); !ok {
			fields[path] = fmt.Sprintf("%s must be a boolean", path)
		}
	case Date:
		if !isDate(value) {
			fields[path] = fmt.Sprintf("%s must be a date", path)
		}
	case ObjectID:
		if !isObjectID(value) {
			fields[path] = fmt.Sprintf("%s must be a mongodb id", path)
		}
	case Object:
		sub, ok := asDocument(value)
		if !ok {
			fields[path] = fmt.Sprintf("%s must be an object", path)
			return
		}
		if rule.Nested != nil {
			for _, nested := range rule.Nested.Rules {
				checkRule(nested, path+"."+nested.Field, sub[nested.Field], fields)
			}
		}
	case Array:
		items, ok := asArray(value)
		if !ok {
			fields[path] = fmt.Sprintf("%s must be an array", path)
			return
		}
		for i, item := range items {
			itemPath := fmt.Sprintf("%s.%d", path, i)
			if rule.Elem != nil {
				checkRule(*rule.Elem, itemPath, item, fields)
				continue
			}
			if rule.Nested != nil {
				checkRule(Rule{Kind: Object, Required: true, Nested: rule.Nested}, itemPath, item, fields)
			}
		}
	}

	if len(rule.Enum) > 0 {
		if n, ok := asNumber(value); ok {
			for _, allowed := range rule.Enum {
				if int(n) == allowed {
					return
				}
			}
		}
		fields[path] = fmt.Sprintf("%s must be a valid enum value", path)
	}
}

func checkBounds(rule Rule, path string, n float64, fields map[string]string) {
	if rule.Min != nil && n < *rule.Min {
		fields[path] = fmt.Sprintf("%s must not be less than %v", path, *rule.Min)
	}
	if rule.Max != nil && n > *rule.Max {
		fields[path] = fmt.Sprintf("%s must not be greater than %v", path, *rule.Max)
	}
}

// isAbsent treats nil as missing for every kind, and the empty string as
// missing for string fields; zero numbers are present values.
func isAbsent(rule Rule, value any) bool {
	if value == nil {
		return true
	}
	if rule.Kind == String {
		if s, ok := value.(string); ok && s == "" {
			return true
		}
	}
	return false
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
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

func isDate(value any) bool {
	switch value.(type) {
	case time.Time, primitive.DateTime:
		return true
	}
	return false
}

func isObjectID(value any) bool {
	switch v := value.(type) {
	case primitive.ObjectID:
		return true
	case string:
		_, err := primitive.ObjectIDFromHex(v)
		return err == nil
	}
	return false
}

func asDocument(value any) (bson.M, bool) {
	switch v := value.(type) {
	case bson.M:
		return v, true
	case map[string]any:
		return v, true
	case bson.D:
		return v.Map(), true
	}
	return nil, false
}

func asArray(value any) ([]any, bool) {
	switch v := value.(type) {
	case primitive.A:
		return v, true
	case []any:
		return v, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}
