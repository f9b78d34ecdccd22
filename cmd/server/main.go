package main

import (
	"log"

	_ "paxala/docs"
	"paxala/internal/config"
	"paxala/internal/server"
)

// @title           Studio API
// @version         1.0
// @description     Client projects, milestones, payments and the public site of a creative studio.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("server initialization failed: %v", err)
	}

	s.Run()
}
