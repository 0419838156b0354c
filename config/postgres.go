package config

import (
	"fmt"
	"os"
)

type PostgresConfig struct {
	DatabaseUrl string
}

func GetPostgresConfig() (*PostgresConfig, error) {
	databaseUrl := os.Getenv("DATABASE_URL")
	if databaseUrl == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	return &PostgresConfig{
		DatabaseUrl: databaseUrl,
	}, nil
}
