package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"linktracker/config"
)

const maxConnectRetries = 5

// Connect opens a GORM connection to Postgres, retrying a few times so the
// service survives the database coming up after it in container setups.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)

	var db *gorm.DB
	var err error
	for i := 0; i < maxConnectRetries; i++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", i+1).Int("max", maxConnectRetries).Msg("Failed to connect to database")
		time.Sleep(time.Second * 3)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	log.Info().Msg("Connected to database")
	return db, nil
}
