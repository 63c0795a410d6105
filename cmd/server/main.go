package main

import (
	"log"

	_ "productivity/docs"
	"productivity/internal/config"
	"productivity/internal/server"
)

// @title           Productivity API
// @version         1.0
// @description     API for notes, tags and hierarchical to-do lists.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
