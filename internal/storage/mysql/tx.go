package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	gomysql "github.com/go-sql-driver/mysql"

	"resort_booking/internal/domain"
)

// MySQL server error numbers we translate.
const (
	erDupEntry          = 1062
	erRowIsReferenced   = 1451
	erNoReferencedRow   = 1216
	erNoReferencedRow2  = 1452
	erCheckConstraintNo = 3819
)

// withTx runs fn in a transaction, rolling back on error or panic.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()
	return fn(tx)
}

// mapErr turns driver errors into domain sentinels where one applies.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var me *gomysql.MySQLError
	if !errors.As(err, &me) {
		return err
	}
	switch me.Number {
	case erDupEntry:
		return fmt.Errorf("%w: %s", domain.ErrDuplicateIdentity, me.Message)
	case erNoReferencedRow, erNoReferencedRow2, erRowIsReferenced:
		return fmt.Errorf("%w: %s", domain.ErrReferentialIntegrity, me.Message)
	case erCheckConstraintNo:
		ie := domain.NewInputError()
		ie.Add("reservation", me.Message)
		return ie
	}
	return err
}
