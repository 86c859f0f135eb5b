package rpc

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"service-calendar/internal/model"
)

// Record is one row returned by Read or SearchRead, keyed by field name.
// Many-to-one fields hold a model.Ref or nil.
type Record map[string]any

func (r Record) ID() uuid.UUID {
	id, _ := r.UUID("id")
	return id
}

func (r Record) UUID(field string) (uuid.UUID, bool) {
	switch v := r[field].(type) {
	case uuid.UUID:
		return v, v != uuid.Nil
	case *uuid.UUID:
		if v == nil {
			return uuid.Nil, false
		}
		return *v, *v != uuid.Nil
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, false
		}
		return id, true
	case model.Ref:
		return v.ID, true
	case *model.Ref:
		if v == nil {
			return uuid.Nil, false
		}
		return v.ID, true
	default:
		return uuid.Nil, false
	}
}

func (r Record) String(field string) string {
	switch v := r[field].(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// OptString returns nil when the field is missing, null or false.
func (r Record) OptString(field string) *string {
	switch v := r[field].(type) {
	case string:
		return &v
	case *string:
		return v
	default:
		return nil
	}
}

func (r Record) Bool(field string) bool {
	v, _ := r[field].(bool)
	return v
}

func (r Record) Float(field string) float64 {
	switch v := r[field].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func (r Record) Time(field string) *time.Time {
	switch v := r[field].(type) {
	case time.Time:
		return &v
	case *time.Time:
		return v
	default:
		return nil
	}
}

func (r Record) Ref(field string) *model.Ref {
	switch v := r[field].(type) {
	case model.Ref:
		return &v
	case *model.Ref:
		return v
	default:
		return nil
	}
}

// RefLabel returns the display label of a many-to-one field, or "".
func (r Record) RefLabel(field string) string {
	if ref := r.Ref(field); ref != nil {
		return ref.Label
	}
	return ""
}

// Pick returns a copy of r restricted to fields. The id is always kept.
func (r Record) Pick(fields []string) Record {
	if len(fields) == 0 {
		out := make(Record, len(r))
		for k, v := range r {
			out[k] = v
		}
		return out
	}
	out := make(Record, len(fields)+1)
	out["id"] = r["id"]
	for _, f := range fields {
		if v, ok := r[f]; ok {
			out[f] = v
		}
	}
	return out
}
