package repository

import (
	"fmt"

	"gorm.io/gorm"

	"service-calendar/internal/rpc"
)

// applyDomain translates an rpc.Domain into WHERE clauses. Only fields
// listed in columns are accepted; the column expression is taken from
// the map, never from caller input.
func applyDomain(query *gorm.DB, domain rpc.Domain, columns map[string]string) (*gorm.DB, error) {
	for _, cond := range domain {
		column, ok := columns[cond.Field]
		if !ok {
			return nil, fmt.Errorf("%w: %s", rpc.ErrUnknownField, cond.Field)
		}
		switch cond.Operator {
		case rpc.OpEq:
			if cond.Value == nil {
				query = query.Where(column + " IS NULL")
			} else {
				query = query.Where(column+" = ?", cond.Value)
			}
		case rpc.OpNotEq:
			if cond.Value == nil {
				query = query.Where(column + " IS NOT NULL")
			} else {
				query = query.Where(column+" <> ?", cond.Value)
			}
		case rpc.OpIn:
			query = query.Where(column+" IN ?", cond.Value)
		case rpc.OpNotIn:
			query = query.Where(column+" NOT IN ?", cond.Value)
		case rpc.OpGte:
			query = query.Where(column+" >= ?", cond.Value)
		case rpc.OpLt:
			query = query.Where(column+" < ?", cond.Value)
		case rpc.OpLte:
			query = query.Where(column+" <= ?", cond.Value)
		default:
			return nil, fmt.Errorf("%w: %q", rpc.ErrUnsupportedOperator, cond.Operator)
		}
	}
	return query, nil
}

// applyLimit caps the query at limit rows. Zero or a negative limit
// returns every matching row; callers bound those queries by domain.
func applyLimit(query *gorm.DB, limit int) *gorm.DB {
	if limit > 0 {
		return query.Limit(limit)
	}
	return query
}
