package main

import (
	"context"
	"fmt"
	"os"

	"gorm.io/gorm/clause"

	"crane-safety-service/internal/auth"
	"crane-safety-service/internal/config"
	"crane-safety-service/internal/db"
	"crane-safety-service/internal/logger"
	"crane-safety-service/internal/model"
)

// Seeds the default dashboard accounts. Re-running resets their passwords.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer db.Close(database)

	seeds := []struct {
		username string
		password string
		role     model.UserRole
		name     string
	}{
		{"admin", "admin123", model.RoleAdmin, "Admin User"},
		{"viewer", "viewer123", model.RoleViewer, "Viewer User"},
	}

	ctx := context.Background()
	for _, seed := range seeds {
		hash, err := auth.HashPassword(seed.password)
		if err != nil {
			appLogger.Fatal().Err(err).Str("username", seed.username).Msg("failed to hash password")
		}

		user := model.User{
			Username:     seed.username,
			PasswordHash: hash,
			Role:         seed.role,
			Name:         seed.name,
		}
		err = database.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "username"}},
				DoUpdates: clause.AssignmentColumns([]string{"password_hash"}),
			}).
			Create(&user).Error
		if err != nil {
			appLogger.Fatal().Err(err).Str("username", seed.username).Msg("failed to seed user")
		}
		appLogger.Info().Str("username", seed.username).Str("role", string(seed.role)).Msg("user seeded")
	}
}
