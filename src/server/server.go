// Package server assembles the gin router and HTTP server.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/khabaroff/admin-auth/src/config"
	"github.com/khabaroff/admin-auth/src/handlers"
	"github.com/khabaroff/admin-auth/src/middleware"
	"github.com/khabaroff/admin-auth/src/services"
)

// NewRouter wires middleware and routes around adminService
func NewRouter(cfg *config.Config, adminService *services.AdminService) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware())

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	healthHandler := handlers.NewHealthHandler(adminService)
	adminHandler := handlers.NewAdminHandler(adminService, cfg.CookieSecure)

	router.GET("/health", healthHandler.HandleHealth)
	router.GET("/ready", healthHandler.HandleReady)
	router.GET("/info", healthHandler.HandleInfo)

	auth := router.Group("/api/admin/auth")
	{
		auth.POST("/login", adminHandler.HandleAdminLogin)
		auth.POST("/logout", middleware.AdminAuthMiddleware(), adminHandler.HandleAdminLogout)
		auth.GET("/me", middleware.AdminAuthMiddleware(), adminHandler.HandleAdminStatus)
	}

	return router
}

// NewHTTPServer wraps handler with the listener timeouts
func NewHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}
