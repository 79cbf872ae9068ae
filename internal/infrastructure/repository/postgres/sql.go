package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

const undefinedTableCode = "42P01"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isUndefinedTable reports a missing relation, which means migrations were not applied.
func isUndefinedTable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == undefinedTableCode
	}
	return false
}
