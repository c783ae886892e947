package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/so637/personal-budget-tracker-backend/auth"
	"github.com/so637/personal-budget-tracker-backend/pkg/database"
)

func main() {
	username := flag.String("username", "", "username to reset")
	password := flag.String("password", "", "new plaintext password (min 6 chars)")
	flag.Parse()
	if *username == "" || *password == "" {
		log.Fatal("--username and --password are required")
	}
	if len(*password) < 6 {
		log.Fatal("password too short (min 6)")
	}

	dsn, err := database.DSNFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	db, err := database.Open(dsn, slog.Default(), false)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	svc := auth.NewService(db, auth.Config{})
	if err := svc.ResetPassword(context.Background(), *username, *password); err != nil {
		log.Fatalf("reset failed: %v", err)
	}
	fmt.Printf("Password reset for user %s; existing sessions revoked\n", *username)
}
