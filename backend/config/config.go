package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	JWTSecret   string
	DataPath    string // SQLite file backing session persistence
	CatalogPath string // course YAML directory; empty uses the embedded seed
	LogPath     string
	Mode        string // debug or release
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		DataPath:    getEnv("DATA_PATH", "data/session.db"),
		CatalogPath: getEnv("CATALOG_PATH", ""),
		LogPath:     getEnv("LOG_PATH", "logs/app.log"),
		Mode:        getEnv("MODE", "debug"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
