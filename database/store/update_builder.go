package store

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// updateBuilder assembles an UPDATE statement from explicitly registered
// columns. Callers map each present field of a typed partial-update struct
// to one set() call; exec refuses to run when nothing was registered.
type updateBuilder struct {
	table   string
	columns []string
	args    []interface{}
}

func newUpdateBuilder(table string) *updateBuilder {
	return &updateBuilder{table: table}
}

func (b *updateBuilder) set(column string, value interface{}) {
	b.args = append(b.args, value)
	b.columns = append(b.columns, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

func (b *updateBuilder) exec(db sqlx.Ext, id int64) error {
	if len(b.columns) == 0 {
		return ErrNoFields
	}
	b.columns = append(b.columns, "updated_at = now()")
	b.args = append(b.args, id)
	SQL := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d`,
		b.table, strings.Join(b.columns, ", "), len(b.args))
	res, err := db.Exec(SQL, b.args...)
	if err != nil {
		return mapError(err)
	}
	return requireRows(res)
}
