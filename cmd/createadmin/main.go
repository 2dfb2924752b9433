package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/marocvoyages/marocvoyages-backend/internal/users"
	"github.com/marocvoyages/marocvoyages-backend/pkg/config"
	"github.com/marocvoyages/marocvoyages-backend/pkg/db"
	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	"github.com/marocvoyages/marocvoyages-backend/pkg/logger"
	"github.com/marocvoyages/marocvoyages-backend/pkg/security"
)

// Seeds a back-office account. Intended for first deploy and local setups.
func main() {
	logg := logger.New(logger.Options{ServiceName: "createadmin"})

	_ = godotenv.Load()

	username := flag.String("username", "", "admin username")
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *username == "" || *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: createadmin -username <name> -email <email> -password <password>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	hash, err := security.HashPassword(*password, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to hash password", err)
		os.Exit(1)
	}

	repo := users.NewRepository(dbClient.DB())
	user, err := repo.Create(context.Background(), &models.User{
		Username:     *username,
		Email:        *email,
		PasswordHash: hash,
		IsAdmin:      true,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create admin user", err)
		os.Exit(1)
	}

	fmt.Printf("created admin user %q (id=%d)\n", user.Username, user.ID)
}
