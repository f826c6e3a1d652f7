package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("UAP_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("UAP_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("UAP_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/user-admin"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("UAP_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

// GetSeedPath returns the optional TOML seed file consulted at migration
// time for the role catalog and the bootstrap admin account.
func GetSeedPath() string {
	seedPath := os.Getenv("UAP_SEED_FILE")
	if seedPath == "" {
		seedPath = fmt.Sprintf("%s/seed.toml", GetDBFolderPath())
	}
	return seedPath
}

// GetBcryptCost returns the bcrypt cost factor, clamped to the range the
// library accepts.
func GetBcryptCost() int {
	raw := os.Getenv("UAP_BCRYPT_COST")
	if raw == "" {
		return bcrypt.DefaultCost
	}
	cost, err := strconv.Atoi(raw)
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}
