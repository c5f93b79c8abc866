package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jengzang/securecheck/internal/api"
	"github.com/jengzang/securecheck/internal/config"
	"github.com/jengzang/securecheck/internal/database"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 初始化数据库
	store, err := database.Open(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize store:", err)
	}
	defer store.Close()

	if cfg.Bootstrap {
		if err := store.EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to bootstrap schema:", err)
		}
	}

	// 初始化路由
	server := api.SetupRouter(cfg, store)
	defer server.Close()

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           server.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Failed to start server:", err)
	}
	log.Printf("Server stopped")
}
