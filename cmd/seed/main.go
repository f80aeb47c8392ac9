// Command seed provisions the fixed slot inventory and an admin operator.
// Safe to re-run: slots already present are left alone and the operator is
// upserted.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"parkdesk/internal/config"
	"parkdesk/internal/db"
	"parkdesk/internal/logging"
	"parkdesk/internal/models"
	"parkdesk/internal/password"
	"parkdesk/internal/repository"
)

const (
	floors          = 3
	sections        = 4
	slotsPerSection = 20
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer sqlDB.Close()

	store := repository.NewPostgres(sqlDB)
	ctx := context.Background()

	created := 0
	index := 0
	for floor := 1; floor <= floors; floor++ {
		for section := 0; section < sections; section++ {
			sectionLetter := string(rune('A' + section))
			for slot := 1; slot <= slotsPerSection; slot++ {
				number := fmt.Sprintf("%s%d-%02d", sectionLetter, floor, slot)
				record := &models.Slot{
					SlotNumber: number,
					Category:   categoryFor(index),
					Status:     models.SlotAvailable,
				}
				if err := store.CreateSlot(ctx, record); err != nil {
					logger.Fatal("failed to create slot", zap.String("slot", number), zap.Error(err))
				}
				if record.ID != 0 {
					created++
				}
				index++
			}
		}
	}

	username := envOr("PARKDESK_ADMIN_USERNAME", "admin")
	pass := os.Getenv("PARKDESK_ADMIN_PASSWORD")
	if pass == "" {
		logger.Fatal("PARKDESK_ADMIN_PASSWORD is required")
	}

	hasher := password.NewBcryptHasher(0)
	hash, err := hasher.Hash(pass)
	if err != nil {
		logger.Fatal("failed to hash admin password", zap.Error(err))
	}
	operator := &models.Operator{
		Username:     username,
		Name:         envOr("PARKDESK_ADMIN_NAME", "Admin Operator"),
		PasswordHash: hash,
	}
	if err := store.UpsertOperator(ctx, operator); err != nil {
		logger.Fatal("failed to upsert operator", zap.Error(err))
	}

	logger.Info("facility seeded",
		zap.Int("slots_created", created),
		zap.Int("slots_total", index),
		zap.String("admin_username", username),
	)
}

// categoryFor mirrors the facility's provisioning mix: every 10th slot is
// handicap, every 5th EV, every 3rd compact, the rest regular.
func categoryFor(index int) models.SlotCategory {
	switch {
	case index%10 == 0:
		return models.SlotHandicap
	case index%5 == 0:
		return models.SlotEV
	case index%3 == 0:
		return models.SlotCompact
	default:
		return models.SlotRegular
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
