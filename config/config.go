package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds the application's configuration values.
type Config struct {
	AppName  string `json:"appname"`
	AppEnv   string `json:"appenv"`
	AppPort  uint16 `json:"appport"`
	GinMode  string `json:"ginmode"`
	DBHost   string `json:"dbhost"`
	DBPort   uint16 `json:"dbport"`
	DBName   string `json:"dbname"`
	DBUser   string `json:"dbuser"`
	DBPass   string `json:"dbpass"`
	Timezone string `json:"timezone"`
}

var config *Config
var once sync.Once

// LoadConfig loads environment variables from a .env file when present and
// returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Printf("no .env file loaded: %v", err)
		}

		appPort, _ := strconv.ParseUint(os.Getenv("APPPORT"), 10, 16)
		dbPort, _ := strconv.ParseUint(os.Getenv("DBPORT"), 10, 16)

		config = &Config{
			AppName:  os.Getenv("APPNAME"),
			AppEnv:   os.Getenv("APPENV"),
			AppPort:  uint16(appPort),
			GinMode:  os.Getenv("GINMODE"),
			DBHost:   os.Getenv("DBHOST"),
			DBPort:   uint16(dbPort),
			DBName:   os.Getenv("DBNAME"),
			DBUser:   os.Getenv("DBUSER"),
			DBPass:   os.Getenv("DBPASS"),
			Timezone: os.Getenv("TIMEZONE"),
		}
		if config.AppName == "" {
			config.AppName = "Treatment Tracker"
		}
		if config.Timezone == "" {
			config.Timezone = "Asia/Jerusalem"
		}
	})
	return config
}

// Location resolves the configured timezone used for record timestamps.
// Falls back to UTC if the timezone name cannot be resolved.
func Location() *time.Location {
	cfg := LoadConfig()
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("unknown TIMEZONE %q, falling back to UTC: %v", cfg.Timezone, err)
		return time.UTC
	}
	return loc
}

// ConnectMySQL establishes a database connection using the configuration
// values. In the test environment it opens a shared in-memory SQLite database
// instead so tests never touch a real MySQL server.
func ConnectMySQL() (*gorm.DB, error) {
	cfg := LoadConfig()

	if cfg.AppEnv == "test" {
		return gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	}

	// Build the Data Source Name (DSN) using the configuration values.
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}
