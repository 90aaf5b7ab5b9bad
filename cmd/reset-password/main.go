package main

import (
	"flag"
	"log"

	"go-product-inventory/internal/repository"
	"go-product-inventory/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "", "email of the account to reset")
	password := flag.String("password", "", "new password (min 6 characters)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Usage: reset-password -email <email> -password <new password>")
	}
	if len(*password) < 6 {
		log.Fatal("Password must be at least 6 characters")
	}

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	userRepo := repository.NewUserRepo(db)

	// 3. Find User
	user, err := userRepo.FindByEmail(*email)
	if err != nil {
		log.Fatalf("User %s not found in database: %v", *email, err)
	}

	// 4. Hash new password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	// 5. Update
	if err := userRepo.UpdatePassword(user.ID, string(hashedPassword)); err != nil {
		log.Fatalf("Failed to update password in DB: %v", err)
	}

	log.Printf("Password for %s has been reset", *email)
}
