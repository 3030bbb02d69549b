// Package repositories はデータベース操作を行うリポジトリを提供します。
package repositories

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgconn"
)

// ErrOwnerNotFound は参照先の Owner が存在しない (外部キー違反) 場合のエラーです。
var ErrOwnerNotFound = errors.New("owner not found")

const (
	mysqlForeignKeyViolation = 1452
	pgForeignKeyViolation    = "23503"
)

// StorageError は接続失敗・制約違反・クエリ失敗をまとめたエラーです。
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("could not %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError は err の連鎖に StorageError が含まれるかを返します。
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// storageError はドライバー固有のエラーを StorageError に変換します。
// 外部キー違反は ErrOwnerNotFound でも判定できるようにします。
func storageError(op string, err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlForeignKeyViolation {
		return &StorageError{Op: op, Err: fmt.Errorf("%w: %w", ErrOwnerNotFound, err)}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return &StorageError{Op: op, Err: fmt.Errorf("%w: %w", ErrOwnerNotFound, err)}
	}
	return &StorageError{Op: op, Err: err}
}
