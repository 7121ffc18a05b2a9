package webserver

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/verity-app/verity-backend/src/api/config"
	"github.com/verity-app/verity-backend/src/api/data"
)

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client, verifier Verifier) {
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:   []string{"Content-Length"},
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	users := data.NewUserRepository(db)
	newsItems := data.NewNewsRepository(db)
	tokens := data.NewTokenStore(rdb)

	authH := NewAuth(users, tokens, []byte(cfg.JWTSecret))
	chatH := NewChat(verifier)
	newsH := NewNews(newsItems, verifier)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", authH.Signup)
		auth.POST("/login", authH.Login)
		auth.POST("/logout", authH.Logout)
	}

	identified := r.Group("", UserMiddleware(users, tokens, []byte(cfg.JWTSecret)))
	{
		identified.POST("/chat/verify", chatH.Verify)
		identified.GET("/news/feed", newsH.Feed)
		identified.POST("/news/upload", newsH.Upload)
	}
}
