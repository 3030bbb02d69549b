package repositories

import (
	"context"
	"database/sql"
	"log"
	"time"

	"beekeeper/internal/database"
	"beekeeper/internal/models"
)

// TaskRepository は tasks テーブルを操作します。
type TaskRepository struct {
	DB  *database.DB
	now func() time.Time
}

// NewTaskRepository は新しいTaskRepositoryインスタンスを作成します。
func NewTaskRepository(db *database.DB) *TaskRepository {
	return &TaskRepository{DB: db, now: time.Now}
}

// Create は新しい Task を挿入し、採番された ID を返します。
// 成功すると t の ID と作成・更新日時も設定します。
// 失敗した場合は 0 と StorageError を返し、t は変更しません。
func (r *TaskRepository) Create(ctx context.Context, t *models.Task) (int64, error) {
	d := r.DB.Dialect
	query := "INSERT INTO " + d.Table("tasks") + " (verb, direct_object, owner_id, createdat, updatedat) VALUES (?, ?, ?, ?, ?)"
	if d.Returning {
		query += " RETURNING taskid"
	}
	query = d.Rebind(query)

	// createdat と updatedat には同じ時刻を入れる
	now := r.now().UTC().Truncate(time.Microsecond)

	var id int64
	err := r.DB.WithConn(ctx, func(conn *sql.Conn) error {
		if d.Returning {
			return conn.QueryRowContext(ctx, query, t.Verb, t.DirectObject, t.OwnerID, now, now).Scan(&id)
		}
		result, err := conn.ExecContext(ctx, query, t.Verb, t.DirectObject, t.OwnerID, now, now)
		if err != nil {
			return err
		}
		id, err = result.LastInsertId()
		return err
	})
	if err != nil {
		log.Printf("Failed to insert task: %v", err)
		return 0, storageError("insert task", err)
	}

	t.ID = id
	t.CreatedAt = now
	t.UpdatedAt = now
	return id, nil
}
