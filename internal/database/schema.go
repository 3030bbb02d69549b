package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// SchemaStatements はスキーマとテーブルを作成する DDL を順番に返します。
func (d Dialect) SchemaStatements() []string {
	owners := d.Table("owners")
	tasks := d.Table("tasks")

	if d.DriverName == "mysql" {
		var stmts []string
		if d.Schema != "" {
			stmts = append(stmts, "CREATE DATABASE IF NOT EXISTS "+d.Schema)
		}
		return append(stmts,
			`CREATE TABLE IF NOT EXISTS `+owners+` (
				owner_id INT AUTO_INCREMENT PRIMARY KEY,
				owner_name VARCHAR(255) NOT NULL,
				owner_email VARCHAR(255) NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS `+tasks+` (
				taskid INT AUTO_INCREMENT PRIMARY KEY,
				verb VARCHAR(255) NOT NULL,
				direct_object VARCHAR(255) NOT NULL,
				owner_id INT NOT NULL,
				createdat DATETIME(6) NOT NULL,
				updatedat DATETIME(6) NOT NULL,
				FOREIGN KEY (owner_id) REFERENCES `+owners+`(owner_id)
			)`,
		)
	}

	var stmts []string
	if d.Schema != "" {
		stmts = append(stmts, "CREATE SCHEMA IF NOT EXISTS "+d.Schema)
	}
	return append(stmts,
		`CREATE TABLE IF NOT EXISTS `+owners+` (
			owner_id SERIAL PRIMARY KEY,
			owner_name TEXT NOT NULL,
			owner_email TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS `+tasks+` (
			taskid SERIAL PRIMARY KEY,
			verb TEXT NOT NULL,
			direct_object TEXT NOT NULL,
			owner_id INTEGER NOT NULL REFERENCES `+owners+`(owner_id),
			createdat TIMESTAMP NOT NULL,
			updatedat TIMESTAMP NOT NULL
		)`,
	)
}

// EnsureSchema は owners / tasks テーブルが無ければ作成します。
func (db *DB) EnsureSchema(ctx context.Context) error {
	return db.WithConn(ctx, func(conn *sql.Conn) error {
		for _, stmt := range db.Dialect.SchemaStatements() {
			if _, err := conn.ExecContext(ctx, stmt); err != nil {
				log.Printf("Failed to apply schema: %v", err)
				return fmt.Errorf("could not apply schema: %w", err)
			}
		}
		log.Printf("Schema %q is ready", db.Dialect.Schema)
		return nil
	})
}
