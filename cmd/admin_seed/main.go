// Package main seeds an admin user and the starter catalog. Run once after
// provisioning a fresh database.
package main

import (
	"context"
	"log"
	"os"

	"khazina/internal/config"
	"khazina/internal/models"
	"khazina/internal/repositories"
	"khazina/internal/services/catalog"
	"khazina/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer func() {
		if repositories.DB != nil {
			if sqlDB, err := repositories.DB.DB(); err == nil {
				sqlDB.Close()
			}
		}
		if repositories.CacheService != nil {
			repositories.CacheService.Close()
		}
	}()

	ctx := context.Background()

	catalogService := catalog.NewService(
		repositories.NewProductRepository(repositories.DB),
		repositories.NewMerchantRepository(repositories.DB),
		repositories.NewDesignerRepository(repositories.DB),
	)
	if err := catalogService.SeedIfEmpty(ctx); err != nil {
		log.Fatal("Failed to seed catalog:", err)
	}

	var existingAdmin models.User
	if err := repositories.DB.Where("email = ?", adminEmail).First(&existingAdmin).Error; err == nil {
		log.Println("Admin user already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.User{
		UserID:       utils.NewID("user", 12),
		Name:         "Administrator",
		Email:        adminEmail,
		Password:     string(hashedPassword),
		Role:         "admin",
		TokenVersion: 1,
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	wallet := models.Wallet{UserID: admin.ID, PublicUserID: admin.UserID}
	if err := repositories.DB.Create(&wallet).Error; err != nil {
		log.Fatal("Failed to create admin wallet:", err)
	}

	log.Println("Admin user created:", adminEmail)
}
