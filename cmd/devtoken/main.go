// Command devtoken mints a JWT for local testing against the API.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"actionmate/middleware"
	"actionmate/models"

	"github.com/joho/godotenv"
)

func main() {
	userID := flag.String("user", "", "user id to embed in the token")
	nickname := flag.String("nickname", "", "nickname to embed in the token")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" || *userID == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET and -user are required")
		os.Exit(1)
	}

	token, err := middleware.IssueToken([]byte(secret), models.User{ID: *userID, Nickname: *nickname}, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to sign token:", err)
		os.Exit(1)
	}

	fmt.Println("========================================")
	fmt.Println("TOKEN for", *userID)
	fmt.Println(token)
	fmt.Println("========================================")
	fmt.Println("Use it as: Authorization: Bearer <token>")
}
