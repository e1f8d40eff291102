package repositories

import (
	"errors"
	"strings"

	"blog-api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// translateError maps driver errors onto the model error taxonomy. Unique
// index violations are the only uniqueness check in the system, so they
// must always come back as models.ErrorConflict.
func translateError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrorNotFound{Resource: resource}
	}
	if field, ok := duplicateField(err); ok {
		return models.ErrorConflict{Field: field}
	}
	return models.ErrorInternalServer{Err: err}
}

// duplicateField reports whether err is a unique violation and, when the
// driver says so, which column caused it.
func duplicateField(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		// gorm names unique indexes idx_<table>_<column>
		return lastSegment(pgErr.ConstraintName, "_"), true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		// "UNIQUE constraint failed: users.email"
		return lastSegment(sqliteErr.Error(), "."), true
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}
	return "", false
}

func lastSegment(s, sep string) string {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[i+len(sep):]
	}
	return s
}

// escapeLike makes user input safe inside a LIKE pattern using '\' as escape.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
