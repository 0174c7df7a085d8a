package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/daybook-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// MatchAny keeps rows where any of the columns contains query, ignoring case.
func MatchAny(query string, columns ...string) func(db *gorm.DB) *gorm.DB {
	pattern := utils.LikePattern(query)
	return func(db *gorm.DB) *gorm.DB {
		if len(columns) == 0 {
			return db
		}
		conds := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			conds[i] = fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '!'", col)
			args[i] = pattern
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}
