package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// MonthBucket returns a SQL expression that truncates column to the first day
// of its month, rendered as YYYY-MM-DD text.
func MonthBucket(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "sqlite" {
		return fmt.Sprintf("strftime('%%Y-%%m-01', %s)", column)
	}
	return fmt.Sprintf("to_char(date_trunc('month', %s), 'YYYY-MM-DD')", column)
}

// YearBucket returns a SQL expression extracting the calendar year of column
// as an integer.
func YearBucket(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "sqlite" {
		return fmt.Sprintf("CAST(strftime('%%Y', %s) AS INTEGER)", column)
	}
	return fmt.Sprintf("CAST(EXTRACT(YEAR FROM %s) AS INTEGER)", column)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsFold returns a case-insensitive substring predicate on column and
// the bound argument for it. Wildcards in value match literally.
func ContainsFold(column, value string) (string, string) {
	return fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, column), "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
}
