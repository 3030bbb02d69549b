package repositories

import (
	"context"
	"database/sql"
	"log"

	"beekeeper/internal/database"
	"beekeeper/internal/models"
)

// OwnerRepository は owners テーブルを操作します。
type OwnerRepository struct {
	DB *database.DB
}

// NewOwnerRepository は新しいOwnerRepositoryインスタンスを作成します。
func NewOwnerRepository(db *database.DB) *OwnerRepository {
	return &OwnerRepository{DB: db}
}

// FindAll はすべての Owner の ID と名前を取得します。並び順は保証しません。
func (r *OwnerRepository) FindAll(ctx context.Context) ([]models.Owner, error) {
	query := "SELECT owner_id, owner_name FROM " + r.DB.Dialect.Table("owners")

	var owners []models.Owner
	err := r.DB.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var o models.Owner
			if err := rows.Scan(&o.ID, &o.Name); err != nil {
				return err
			}
			owners = append(owners, o)
		}
		return rows.Err()
	})
	if err != nil {
		log.Printf("Failed to query owners: %v", err)
		return nil, storageError("list owners", err)
	}
	return owners, nil
}

// Create は新しい Owner を挿入します。
func (r *OwnerRepository) Create(ctx context.Context, name, email string) error {
	query := r.DB.Dialect.Rebind("INSERT INTO " + r.DB.Dialect.Table("owners") + " (owner_name, owner_email) VALUES (?, ?)")

	err := r.DB.WithConn(ctx, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, query, name, email)
		return err
	})
	if err != nil {
		log.Printf("Failed to insert owner: %v", err)
		return storageError("insert owner", err)
	}
	return nil
}
