package main

import (
	"fmt"
	"log"

	"github.com/seatlabs/library-layout-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	fmt.Println("===========================================")
	fmt.Println("Secret Generator for Library Layout Backend")
	fmt.Println("===========================================")
	fmt.Println()

	accessSecret, refreshSecret, err := utils.GenerateJWTSecrets()
	if err != nil {
		log.Fatalf("Failed to generate JWT secrets: %v", err)
	}

	apiKey, err := utils.GenerateSecret(32)
	if err != nil {
		log.Fatalf("Failed to generate internal API key: %v", err)
	}

	apiKeyHash, err := utils.HashAPIKey(apiKey, bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash internal API key: %v", err)
	}

	fmt.Println("Secrets generated successfully!")
	fmt.Println()
	fmt.Println("Add these to your .env file or deployment secrets:")
	fmt.Println()
	fmt.Printf("JWT_SECRET=%s\n", accessSecret)
	fmt.Printf("JWT_REFRESH_SECRET=%s\n", refreshSecret)
	fmt.Printf("INTERNAL_API_KEY_HASH=%s\n", apiKeyHash)
	fmt.Println()
	fmt.Println("Give the plaintext key below to the booking service only.")
	fmt.Println("It is not stored here; re-run this tool to rotate it.")
	fmt.Println()
	fmt.Printf("INTERNAL_API_KEY=%s\n", apiKey)
	fmt.Println()
	fmt.Println("IMPORTANT: Keep these secrets safe and never commit them to version control!")
	fmt.Println("===========================================")
}
