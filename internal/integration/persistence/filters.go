package persistence

import (
	"log/slog"
	"reflect"
	"strings"

	"gorm.io/gorm"

	"github.com/piggybank/backend/internal/application/filter"
)

// applyFilters translates a filter set into WHERE clauses, AND-combined
// across fields. Fields absent from the schema are dropped with a warning,
// never rejected. Bound fields carry a "_gt"/"_lt" suffix that is stripped to
// obtain the column name; both bounds are inclusive.
func applyFilters(tx *gorm.DB, schema filter.Schema, set filter.Set, logger *slog.Logger) *gorm.DB {
	for field, value := range set {
		kind, ok := schema[field]
		if !ok {
			logger.Warn("ignoring unrecognized filter", "field", field)
			continue
		}

		switch kind {
		case filter.List:
			v := reflect.ValueOf(value)
			if v.Kind() != reflect.Slice || v.Len() == 0 {
				continue
			}
			tx = tx.Where(field+" IN ?", value)

		case filter.GreaterEqual:
			tx = tx.Where(strings.TrimSuffix(field, "_gt")+" >= ?", value)

		case filter.LessEqual:
			tx = tx.Where(strings.TrimSuffix(field, "_lt")+" <= ?", value)

		case filter.Keyword:
			keywords, ok := value.([]string)
			if !ok || len(keywords) == 0 {
				continue
			}
			clauses := make([]string, len(keywords))
			args := make([]interface{}, len(keywords))
			for i, kw := range keywords {
				clauses[i] = "LOWER(" + field + ") LIKE ?"
				args[i] = "%" + strings.ToLower(kw) + "%"
			}
			// keywords OR together within the field, the field still
			// ANDs with the rest of the set
			tx = tx.Where("("+strings.Join(clauses, " OR ")+")", args...)
		}
	}
	return tx
}
