package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// Op enumerates the comparison operators the store supports.
type Op string

const (
	OpEq          Op = "eq"           // field = value
	OpIn          Op = "in"           // field IN (values)
	OpContainsAny Op = "contains_any" // JSON array column overlaps values
	OpGte         Op = "gte"          // field >= value
	OpLte         Op = "lte"          // field <= value
)

// Condition is one (field, operator, value) triple. Field names come from
// fixed column maps in the callers, never from user input.
type Condition struct {
	Field string
	Op    Op
	Value any
}

// Query describes a conditional fetch: conditions, an optional single-field
// sort, and an optional result cap. There is no offset — the adapter only
// returns the first N of the sorted order.
type Query struct {
	Conditions []Condition
	OrderBy    string
	Desc       bool
	Limit      int
}

func applyConditions(tx *gorm.DB, conds []Condition) *gorm.DB {
	for _, c := range conds {
		switch c.Op {
		case OpEq:
			tx = tx.Where(c.Field+" = ?", c.Value)
		case OpIn:
			tx = tx.Where(c.Field+" IN ?", c.Value)
		case OpGte:
			tx = tx.Where(c.Field+" >= ?", c.Value)
		case OpLte:
			tx = tx.Where(c.Field+" <= ?", c.Value)
		case OpContainsAny:
			vals, _ := c.Value.([]string)
			if len(vals) == 0 {
				continue
			}
			// JSON string-slice columns are probed through their text
			// encoding; the quotes in the pattern match whole elements.
			// Works on both jsonb (postgres) and JSON text (sqlite).
			group := tx.Session(&gorm.Session{NewDB: true})
			for i, v := range vals {
				pattern := fmt.Sprintf(`%%"%s"%%`, v)
				if i == 0 {
					group = group.Where("CAST("+c.Field+" AS TEXT) LIKE ?", pattern)
				} else {
					group = group.Or("CAST("+c.Field+" AS TEXT) LIKE ?", pattern)
				}
			}
			tx = tx.Where(group)
		}
	}
	return tx
}

func applyQuery(tx *gorm.DB, q Query) *gorm.DB {
	tx = applyConditions(tx, q.Conditions)
	if q.OrderBy != "" {
		order := q.OrderBy
		if q.Desc {
			order += " DESC"
		}
		tx = tx.Order(order)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	return tx
}
