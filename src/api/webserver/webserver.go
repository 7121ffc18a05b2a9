package webserver

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/verity-app/verity-backend/src/api/config"
)

func New(cfg config.Config, db *gorm.DB, rdb *redis.Client, verifier Verifier) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, cfg, db, rdb, verifier)
	return g
}
