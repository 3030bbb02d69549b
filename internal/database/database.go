package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"

	"beekeeper/internal/config"
)

// DB はコネクションプールと SQL 方言をまとめたものです。
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open は設定からコネクションプールを作成します。接続の確認は Ping で行います。
func Open(cfg *config.Config) (*DB, error) {
	dialect, err := DialectFor(cfg.Driver, cfg.Schema)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(dialect.DriverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	return &DB{DB: db, Dialect: dialect}, nil
}

// InitDB はデータベース接続を初期化します。プールを作れない場合はプロセスを終了します。
// Ping の失敗は警告のみです。DB が落ちていてもページは表示し、操作ごとにエラーを出します。
func InitDB(cfg *config.Config) *DB {
	db, err := Open(cfg)
	if err != nil {
		log.Fatalf("Fatal: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Printf("Warning: Failed to ping database: %v", err)
		return db
	}
	log.Printf("Successfully connected to %s database!", cfg.Driver)
	return db
}

// WithConn はプールから接続を一つ取り出して fn を実行し、
// どの経路で戻っても接続をプールへ返却します。
func (db *DB) WithConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("could not acquire connection: %w", err)
	}
	defer conn.Close()
	return fn(conn)
}

// Dialect はドライバーごとの SQL の違いを吸収します。
type Dialect struct {
	DriverName string
	Schema     string
	// Returning が true なら INSERT ... RETURNING で採番された ID を取得します。
	Returning bool
	bindType  int
}

// DialectFor はドライバー名に対応する Dialect を返します。
func DialectFor(driver, schema string) (Dialect, error) {
	switch driver {
	case config.DriverPostgres:
		return Dialect{DriverName: "pgx", Schema: schema, Returning: true, bindType: sqlx.BindType("pgx")}, nil
	case config.DriverMySQL:
		return Dialect{DriverName: "mysql", Schema: schema, bindType: sqlx.BindType("mysql")}, nil
	default:
		return Dialect{}, fmt.Errorf("%w: %q", config.ErrUnknownDriver, driver)
	}
}

// Table はスキーマで修飾したテーブル名を返します。
func (d Dialect) Table(name string) string {
	if d.Schema == "" {
		return name
	}
	return d.Schema + "." + name
}

// Rebind は ? プレースホルダーを方言の形式 (PostgreSQL なら $1, $2, ...) に書き換えます。
func (d Dialect) Rebind(query string) string {
	return sqlx.Rebind(d.bindType, query)
}
