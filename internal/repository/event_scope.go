package repository

import (
	"fmt"

	"gorm.io/gorm"

	"crane-safety-service/internal/model"
)

// condition is one (column, operator, value) predicate triple.
type condition struct {
	column   string
	operator string
	value    interface{}
}

// eventConditions expands a filter into its predicate triples, always in the
// same fixed order: date_from, date_to, event_type, crane_id, operator,
// shift_id, severity. Every query that filters events derives its WHERE
// clause from this list, so the count, list, export and analytics predicates
// cannot drift apart.
func eventConditions(filter model.EventFilter, alias string) []condition {
	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}

	conds := make([]condition, 0, 7)
	if filter.DateFrom != nil {
		conds = append(conds, condition{prefix + `"timestamp"`, ">=", *filter.DateFrom})
	}
	if filter.DateTo != nil {
		conds = append(conds, condition{prefix + `"timestamp"`, "<=", *filter.DateTo})
	}
	if filter.EventType != "" {
		conds = append(conds, condition{prefix + "event_type", "=", filter.EventType})
	}
	if filter.CraneID != "" {
		conds = append(conds, condition{prefix + "crane_id", "=", filter.CraneID})
	}
	if filter.Operator != "" {
		conds = append(conds, condition{prefix + "operator", "=", filter.Operator})
	}
	if filter.ShiftID != nil {
		conds = append(conds, condition{prefix + "shift_id", "=", *filter.ShiftID})
	}
	if filter.Severity != "" {
		conds = append(conds, condition{prefix + "severity", "=", filter.Severity})
	}
	return conds
}

// scopeEvents applies the filter's predicate triples to a query. alias is the
// events table alias, or empty when querying the bare table.
func scopeEvents(query *gorm.DB, filter model.EventFilter, alias string) *gorm.DB {
	for _, c := range eventConditions(filter, alias) {
		query = query.Where(fmt.Sprintf("%s %s ?", c.column, c.operator), c.value)
	}
	return query
}
