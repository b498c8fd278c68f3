// Command admin_seed creates the initial admin user and the credit
// package catalog. It is idempotent: existing rows are left alone.
package main

import (
	"log"
	"os"

	"aikit/internal/config"
	"aikit/internal/models"
	"aikit/internal/repositories"

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
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("Failed to close database connection: %v", err)
			}
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("Failed to close Redis connection: %v", err)
			}
		}
	}()

	seedAdmin(adminEmail, adminPassword)
	seedPackages()
}

func seedAdmin(email, password string) {
	var existing models.User
	if err := repositories.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Println("Admin user already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.User{
		Email:    email,
		Password: string(hashed),
		Name:     "Administrator",
		Role:     "admin",
		Status:   "active",
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}
	log.Printf("Created admin user %s (id=%d)", admin.Email, admin.ID)
	log.Println("Remember to add the email to ADMIN_EMAILS for back-office access")
}

func seedPackages() {
	packages := []models.CreditPackage{
		{Code: "starter", Name: "Starter", USDPrice: 5, Credits: 2500, Active: true},
		{Code: "plus", Name: "Plus", USDPrice: 10, Credits: 6000, Active: true},
		{Code: "pro", Name: "Pro", USDPrice: 25, Credits: 17500, Active: true},
	}

	for i := range packages {
		var existing models.CreditPackage
		if err := repositories.DB.Where("code = ?", packages[i].Code).First(&existing).Error; err == nil {
			continue
		}
		if err := repositories.DB.Create(&packages[i]).Error; err != nil {
			log.Fatalf("Failed to seed package %s: %v", packages[i].Code, err)
		}
		log.Printf("Seeded credit package %s (%d credits / $%.2f)",
			packages[i].Code, packages[i].Credits, packages[i].USDPrice)
	}
}
