package sqlite

import (
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
	"github.com/vytor/lexiflash/internal/repository"
)

// Helper functions shared across repository implementations

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type rowScanner interface {
	Scan(dest ...any) error
}

// utc normalises timestamps so that stored DATETIME text compares in order.
func utc(t time.Time) time.Time {
	return t.UTC()
}

// mapConstraintErr converts unique and foreign key violations into
// repository sentinels.
func mapConstraintErr(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code != sqlite3.ErrConstraint {
		return err
	}
	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	case sqlite3.ErrConstraintForeignKey:
		return fmt.Errorf("%w: %v", repository.ErrNotFound, err)
	}
	return err
}

func likePattern(s string) string {
	return "%" + s + "%"
}
