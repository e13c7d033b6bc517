// Package ownership decides whether a record was created by the current actor.
//
// Endpoints disagree on which field names the creator: some carry a login id
// string, others a numeric member id or a numeric "createdBy". Classification
// probes an ordered list of candidate fields and compares the first one present
// against the actor id after normalization (stringify, trim, lowercase).
package ownership

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Author is the derived ownership tag of a record.
type Author string

const (
	Me   Author = "me"
	Mate Author = "mate"
)

// Conventional owner-candidate field names, in default probe order.
const (
	FieldLoginID   = "memberLoginId"
	FieldMemberID  = "memberId"
	FieldCreatedBy = "createdBy"
)

// DefaultFields is the probe order used when no candidate list is given.
var DefaultFields = []string{FieldLoginID, FieldMemberID, FieldCreatedBy}

// Record is anything that can report the value of a named field.
// ok is false only when the field is absent; a present zero value
// (0, "", nil) reports ok == true.
type Record interface {
	Lookup(field string) (value any, ok bool)
}

// Fields is a schemaless record, typically decoded from JSON.
type Fields map[string]any

// Lookup implements Record.
func (f Fields) Lookup(field string) (any, bool) {
	if f == nil {
		return nil, false
	}
	v, ok := f[field]
	return v, ok
}

// Tagged is a record annotated with its ownership classification.
type Tagged[R Record] struct {
	Record R
	Author Author
}

// Normalize stringifies v, trims surrounding whitespace and lowercases it.
// nil normalizes to the empty string.
func Normalize(v any) string {
	return strings.ToLower(strings.TrimSpace(stringify(v)))
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// Probe returns the value of the first candidate field present on rec.
func Probe(rec Record, fields []string) (any, bool) {
	if rec == nil {
		return nil, false
	}
	for _, name := range fields {
		if v, ok := rec.Lookup(name); ok {
			return v, true
		}
	}
	return nil, false
}

// Classify tags rec as Me when its first present owner field equals actorID
// after normalization, and Mate otherwise. An absent record, an empty actor
// id or a record with none of the fields always yields Mate.
// A nil or empty fields list means DefaultFields.
func Classify(rec Record, actorID any, fields []string) Author {
	if IsNil(rec) {
		return Mate
	}
	actor := Normalize(actorID)
	if actor == "" {
		return Mate
	}
	if len(fields) == 0 {
		fields = DefaultFields
	}
	v, ok := Probe(rec, fields)
	if !ok {
		return Mate
	}
	if Normalize(v) == actor {
		return Me
	}
	return Mate
}

// IsMine reports whether Classify would return Me.
func IsMine(rec Record, actorID any, fields ...string) bool {
	return Classify(rec, actorID, fields) == Me
}

// TagAll classifies every record, preserving order and cardinality.
func TagAll[R Record](records []R, actorID any, fields []string) []Tagged[R] {
	tagged := make([]Tagged[R], len(records))
	for i, rec := range records {
		tagged[i] = Tagged[R]{Record: rec, Author: Classify(rec, actorID, fields)}
	}
	return tagged
}

// IsNil reports a nil interface as well as a nil map or pointer stored in one.
func IsNil(rec Record) bool {
	if rec == nil {
		return true
	}
	if f, ok := rec.(Fields); ok {
		return f == nil
	}
	v := reflect.ValueOf(rec)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map:
		return v.IsNil()
	}
	return false
}
