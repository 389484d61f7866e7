package persistence

import (
	"fmt"

	"gorm.io/gorm"
)

type groupCount struct {
	GroupKey string
	Total    int64
}

// countBy runs a GROUP BY over column and returns the row count per value
func countBy(dbQuery *gorm.DB, column string) (map[string]int64, error) {
	var rows []groupCount
	err := dbQuery.
		Select(fmt.Sprintf("%s AS group_key, COUNT(*) AS total", column)).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count by %s: %w", column, err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.GroupKey] = row.Total
	}
	return counts, nil
}
