// Package routesはroutingを行います。
package routes

import (
	"fmt"
	"html/template"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"beekeeper/internal/config"
	"beekeeper/internal/database"
	"beekeeper/internal/handlers"
	"beekeeper/internal/repositories"
	"beekeeper/internal/services"
	"beekeeper/internal/web"
)

// SetupRouter はリポジトリ・サービス・ハンドラーを組み立て、Ginルーターを返します。
func SetupRouter(cfg *config.Config, db *database.DB, style template.CSS) (*gin.Engine, error) {
	// リポジトリ
	ownerRepo := repositories.NewOwnerRepository(db)
	taskRepo := repositories.NewTaskRepository(db)

	// サービス
	board := services.NewBoardService(ownerRepo, taskRepo)

	// ハンドラー
	pageHandler := handlers.NewPageHandler(board, style)

	return NewRouter(cfg.AllowOrigins, pageHandler)
}

// NewRouter はページのエンドポイントを登録したGinルーターを作成します。
func NewRouter(allowOrigins []string, pageHandler *handlers.PageHandler) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("could not parse templates: %w", err)
	}

	r := gin.Default()
	r.SetHTMLTemplate(tmpl)

	// CORS対策 (オリジン未設定なら付けない)
	if len(allowOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = allowOrigins
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
		r.Use(cors.New(corsConfig))
	}
	r.Use(RequestIDMiddleware())

	// ルーティング
	r.GET("/", pageHandler.IndexHandler)
	r.POST("/owners", pageHandler.CreateOwnerHandler)
	r.POST("/tasks", pageHandler.CreateTaskHandler)

	return r, nil
}
