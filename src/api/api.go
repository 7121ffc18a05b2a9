// File: src/api/api.go

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/verity-app/verity-backend/src/api/components/llm"
	"github.com/verity-app/verity-backend/src/api/components/news"
	"github.com/verity-app/verity-backend/src/api/components/verify"
	"github.com/verity-app/verity-backend/src/api/config"
	"github.com/verity-app/verity-backend/src/api/data"
	"github.com/verity-app/verity-backend/src/api/types"
	"github.com/verity-app/verity-backend/src/api/webserver"
)

func main() {
	cfg := config.Load()

	db := data.MustMySQL(cfg.MySQLDSN)
	if err := db.AutoMigrate(&types.User{}, &types.NewsItem{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	rdb := data.MustRedis(cfg.RedisURL)

	if cfg.GNewsKey == "" {
		log.Printf("GNEWS_API_KEY not set; verification will run without news grounding")
	}
	if cfg.LLMKey == "" {
		log.Printf("LLM_API_KEY not set; verification will run in fallback mode")
	}

	verifier := verify.New(
		news.NewClient(cfg.GNewsKey),
		llm.NewClient(cfg.LLMKey, cfg.LLMBaseURL, cfg.LLMModel),
	)

	router := webserver.New(cfg, db, rdb, verifier)

	// Write timeout must cover a full pipeline run (15s retrieval + 20s
	// inference) with headroom.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	log.Printf("Verity API listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
