package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/cliniqa/clinic-attendance/internal/cache"
	"github.com/cliniqa/clinic-attendance/internal/config"
	dbpkg "github.com/cliniqa/clinic-attendance/internal/db"
	"github.com/cliniqa/clinic-attendance/internal/middleware"
	"github.com/cliniqa/clinic-attendance/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	tokenCache := cache.New(cfg.RedisAddr)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, tokenCache, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
