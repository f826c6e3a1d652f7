// Package database manages the sqlite store: connection setup, schema
// migration, and out-of-band seeding of the role catalog and the
// bootstrap admin account.
package database

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path"

	"user-admin/config"
	"user-admin/database/model"
	"user-admin/util/crypto"

	"github.com/pelletier/go-toml/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin"
)

// seedConfig is the shape of the optional TOML seed file. Roles listed
// there are added to the built-in catalog, and the bootstrap admin
// credentials can be overridden before first start.
type seedConfig struct {
	Roles []string `toml:"roles"`
	Admin struct {
		Username string `toml:"username"`
		Password string `toml:"password"`
	} `toml:"admin"`
}

func loadSeed() seedConfig {
	seed := seedConfig{Roles: []string{model.RoleUser, model.RoleAdmin}}
	seed.Admin.Username = defaultAdminUsername
	seed.Admin.Password = defaultAdminPassword

	data, err := os.ReadFile(config.GetSeedPath())
	if err != nil {
		return seed
	}

	var file seedConfig
	if err := toml.Unmarshal(data, &file); err != nil {
		log.Printf("ignoring malformed seed file %s: %v", config.GetSeedPath(), err)
		return seed
	}
	seed.Roles = append(seed.Roles, file.Roles...)
	if file.Admin.Username != "" {
		seed.Admin.Username = file.Admin.Username
	}
	if file.Admin.Password != "" {
		seed.Admin.Password = file.Admin.Password
	}
	return seed
}

func initModels() error {
	models := []any{
		&model.User{},
		&model.Role{},
		&model.Setting{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// initRoles makes sure every seeded role name exists in the catalog.
// Existing rows are never touched; the catalog is append-only.
func initRoles(names []string) error {
	for _, name := range names {
		var role model.Role
		err := db.Where("name = ?", name).First(&role).Error
		if err == nil {
			continue
		}
		if !IsNotFound(err) {
			return err
		}
		if err := db.Create(&model.Role{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

// initAdmin creates the bootstrap admin account when the users table is
// empty, so a fresh installation can be logged into.
func initAdmin(username, password string) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}

	var adminRole model.Role
	if err := db.Where("name = ?", model.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	user := &model.User{
		Username: username,
		Password: hash,
		Roles:    []model.Role{adminRole},
	}
	return db.Create(user).Error
}

func InitDB(dbPath string) error {
	dir := path.Dir(dbPath)
	err := os.MkdirAll(dir, fs.ModePerm)
	if err != nil {
		return err
	}

	var gormLogger logger.Interface

	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}

	dsn := dbPath + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
	db, err = gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if _, err = sqlDB.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return err
	}

	if err := initModels(); err != nil {
		return err
	}

	seed := loadSeed()
	if err := initRoles(seed.Roles); err != nil {
		return err
	}
	return initAdmin(seed.Admin.Username, seed.Admin.Password)
}

func CloseDB() error {
	if db != nil {
		if err := Checkpoint(); err != nil {
			log.Printf("error executing checkpoint: %v", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func Checkpoint() error {
	// Flush the WAL into the main database file
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
