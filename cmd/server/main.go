package main

import (
	"context"
	"log"

	"beekeeper/internal/config"
	"beekeeper/internal/database"
	"beekeeper/internal/routes"
	"beekeeper/internal/web"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Fatal: invalid configuration: %v", err)
	}

	// 背景画像が無い場合は起動しない
	style, err := web.LoadBackground(cfg.BackgroundImage)
	if err != nil {
		log.Fatalf("Fatal: %v", err)
	}

	db := database.InitDB(cfg)
	defer db.Close()

	if cfg.AutoMigrate {
		if err := db.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("Fatal: %v", err)
		}
	}

	r, err := routes.SetupRouter(cfg, db, style)
	if err != nil {
		log.Fatalf("Fatal: %v", err)
	}

	// サーバー起動
	log.Printf("Server listening on %s...", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
