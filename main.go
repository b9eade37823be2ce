package main

import (
	"PdfVault/config"
	"PdfVault/internal/repo"
	"PdfVault/internal/service"
	"PdfVault/internal/storage"
	"PdfVault/router"
)

// main initializes services and starts the HTTP server.
func main() {
	config.InitConfig()
	repo.InitMysql()
	repo.InitRedis()
	storage.InitMinio()

	service.EnsureAdminUser()

	router := router.InitRouter()

	router.Run(":8000")
}
