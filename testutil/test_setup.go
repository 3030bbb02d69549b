package testutil

import (
	"context"
	"log"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"beekeeper/internal/config"
	"beekeeper/internal/database"
	"beekeeper/internal/repositories"
	"beekeeper/internal/routes"
)

// SetupTestDB はテスト用のデータベース接続を確立し、テーブルを作成して空にします。
// TEST_DB_HOST が設定されていない場合はテストをスキップします。
func SetupTestDB(t *testing.T) (*database.DB, *gin.Engine, *repositories.OwnerRepository, *repositories.TaskRepository) {
	t.Helper()

	if err := godotenv.Load("../../.env"); err != nil {
		log.Printf("Warning: Could not load .env file for tests: %v", err)
	}

	cfg, err := config.FromEnv("TEST_")
	if err != nil {
		t.Skipf("test database is not configured: %v", err)
	}

	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	ctx := context.Background()
	require.NoError(t, db.EnsureSchema(ctx))
	truncate(t, db)

	router := SetupTestRouter(t, cfg, db)
	return db, router, repositories.NewOwnerRepository(db), repositories.NewTaskRepository(db)
}

// SetupTestRouter はテスト用のGinルーターをセットアップします。
func SetupTestRouter(t *testing.T, cfg *config.Config, db *database.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r, err := routes.SetupRouter(cfg, db, "")
	require.NoError(t, err)
	return r
}

// truncate は tasks -> owners の順でテーブルを空にします。
func truncate(t *testing.T, db *database.DB) {
	t.Helper()
	owners := db.Dialect.Table("owners")
	tasks := db.Dialect.Table("tasks")

	if db.Dialect.Returning {
		_, err := db.Exec("TRUNCATE TABLE " + tasks + ", " + owners + " RESTART IDENTITY CASCADE")
		require.NoError(t, err)
		return
	}

	// Foreign Key Constraint があるため、チェックを外してから削除する
	conn, err := db.Conn(context.Background())
	require.NoError(t, err)
	defer conn.Close()
	ctx := context.Background()
	for _, stmt := range []string{
		"SET FOREIGN_KEY_CHECKS=0",
		"TRUNCATE TABLE " + tasks,
		"TRUNCATE TABLE " + owners,
		"SET FOREIGN_KEY_CHECKS=1",
	} {
		_, err := conn.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}
}

// CreateTestOwner はテスト用の Owner を作成し、その ID を返します。
func CreateTestOwner(t *testing.T, repo *repositories.OwnerRepository, name, email string) int64 {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, name, email))

	owners, err := repo.FindAll(ctx)
	require.NoError(t, err)
	var id int64
	for _, o := range owners {
		if o.Name == name && o.ID > id {
			id = o.ID
		}
	}
	require.NotZero(t, id, "created owner %q not found", name)
	return id
}
