package repositories

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"beekeeper/internal/database"
)

// newMockDB は sqlmock を使った DB を作成します。クエリは完全一致で比較します。
func newMockDB(t *testing.T, driver string) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	dialect, err := database.DialectFor(driver, "pledgegtd")
	require.NoError(t, err)
	return &database.DB{DB: conn, Dialect: dialect}, mock
}

// timeArg は time.Time の引数を記録します。
type timeArg struct {
	seen []time.Time
}

func (a *timeArg) Match(v driver.Value) bool {
	ts, ok := v.(time.Time)
	if ok {
		a.seen = append(a.seen, ts)
	}
	return ok
}
