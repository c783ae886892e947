package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/so637/personal-budget-tracker-backend/auth"
	"github.com/so637/personal-budget-tracker-backend/pkg/database"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: go run ./cmd/create_user <username> <password>")
		os.Exit(2)
	}
	username := os.Args[1]
	password := os.Args[2]

	dsn, err := database.DSNFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	db, err := database.Open(dsn, slog.Default(), false)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	svc := auth.NewService(db, auth.Config{})
	user, err := svc.RegisterUser(context.Background(), username, password)
	if errors.Is(err, auth.ErrUserExists) {
		fmt.Printf("user %s already exists\n", username)
		return
	}
	if err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	fmt.Printf("created user %s id=%d\n", user.Username, user.ID)
}
