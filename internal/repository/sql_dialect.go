package repository

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func isPostgres(db *gorm.DB) bool {
	if db == nil || db.Dialector == nil {
		return false
	}
	switch strings.ToLower(db.Dialector.Name()) {
	case "postgres", "postgresql":
		return true
	}
	return false
}

// likeClause 多列 OR 模糊匹配；postgres 用 ILIKE，sqlite 的 LIKE 对 ASCII 本就不区分大小写
func likeClause(postgres bool, columns []string) (string, int) {
	op := " LIKE ? ESCAPE '\\'"
	if postgres {
		op = " ILIKE ? ESCAPE '\\'"
	}
	var b strings.Builder
	n := 0
	for _, column := range columns {
		column = strings.TrimSpace(column)
		if column == "" {
			continue
		}
		if n > 0 {
			b.WriteString(" OR ")
		}
		b.WriteString(column)
		b.WriteString(op)
		n++
	}
	if n == 0 {
		return "", 0
	}
	return "(" + b.String() + ")", n
}

// containsFold 按子串（忽略大小写）过滤任一列，term 为空时不加条件
func containsFold(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" {
			return db
		}
		clause, n := likeClause(isPostgres(db), columns)
		if n == 0 {
			return db
		}
		pattern := "%" + likeEscaper.Replace(term) + "%"
		args := make([]interface{}, n)
		for i := range args {
			args[i] = pattern
		}
		return db.Where(clause, args...)
	}
}
