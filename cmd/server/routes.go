package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nightjar-labs/marquee/internal/db"
	"github.com/nightjar-labs/marquee/internal/http/api"
	authEndpoints "github.com/nightjar-labs/marquee/internal/http/api/admin/auth/endpoints"
	controlEndpoints "github.com/nightjar-labs/marquee/internal/http/api/admin/control/endpoints"
	playerEndpoints "github.com/nightjar-labs/marquee/internal/http/api/player/endpoints"
	playerPackets "github.com/nightjar-labs/marquee/internal/http/api/player/packets"
	"github.com/nightjar-labs/marquee/internal/http/middleware"
	"github.com/nightjar-labs/marquee/internal/hub"
	"github.com/nightjar-labs/marquee/internal/storage"
)

func registerRoutes(router *gin.Engine, env Environment, store db.Store, h *hub.Hub, storageSystem storage.Storage) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/discover", func(c *gin.Context) {
		c.JSON(http.StatusOK, playerPackets.DiscoverResponse{Service: "marquee", Version: "1.0"})
	})

	// dashboard login, no token required
	api.MountGroup(router, api.GroupConfig{
		Prefix:     "/api/admin",
		Middleware: []gin.HandlerFunc{middleware.InjectStore(store)},
	},
		authEndpoints.AuthPublicModule(store, env.JWTSecret),
	)

	// dashboard control surface behind JWT
	api.MountGroup(router, api.GroupConfig{
		Prefix:     "/api/admin",
		Auth:       true,
		SecretKey:  env.JWTSecret,
		Middleware: []gin.HandlerFunc{middleware.InjectStore(store)},
	},
		authEndpoints.AuthSessionModule(store),
		controlEndpoints.ScheduleGroupModule(store, h, storageSystem),
		controlEndpoints.ScheduleModule(store, h),
		controlEndpoints.ContentGroupModule(store, h, storageSystem),
		controlEndpoints.DeviceModule(store, h),
		controlEndpoints.DisplayModule(store, h, storageSystem),
	)

	// player pull surface, access code is the credential
	api.MountGroup(router, api.GroupConfig{Prefix: "/api/player"},
		playerEndpoints.PlayerModule(store, h),
	)

	router.GET("/ws/:access_code", playerEndpoints.SocketHandler(store, h))

	// media is only served from disk with local storage; Spaces serves via CDN
	if !env.UseSpaces {
		router.Static("/uploads", env.UploadDir)
	}
}
