package model

import (
	"os"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/brandlens/photogen/common/config"
	"github.com/brandlens/photogen/common/logger"
)

var DB *gorm.DB

func chooseDB() (*gorm.DB, error) {
	dsn := os.Getenv("SQL_DSN")
	if dsn != "" {
		if strings.HasPrefix(dsn, "postgres://") {
			// Use PostgreSQL
			logger.SysLog("using PostgreSQL as database")
			config.UsingPostgreSQL = true
			return gorm.Open(postgres.New(postgres.Config{
				DSN:                  dsn,
				PreferSimpleProtocol: true, // disables implicit prepared statement usage
			}), &gorm.Config{
				PrepareStmt: true, // precompile SQL
			})
		}
		// Use MySQL
		logger.SysLog("using MySQL as database")
		config.UsingMySQL = true
		return gorm.Open(mysql.Open(dsn), &gorm.Config{
			PrepareStmt: true,
		})
	}
	// Use SQLite
	logger.SysLog("SQL_DSN not set, using SQLite as database")
	config.UsingSQLite = true
	dsn = config.SQLitePath + "?_busy_timeout=3000"
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt: true,
	})
}

func InitDB() (err error) {
	db, err := chooseDB()
	if err != nil {
		logger.FatalLog("failed to initialize database: " + err.Error())
		return err
	}
	DB = db
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(config.SQLMaxIdleConns)
	sqlDB.SetMaxOpenConns(config.SQLMaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Second * time.Duration(config.SQLMaxLifetime))

	if !config.IsMasterNode {
		return nil
	}
	logger.SysLog("database migration started")
	err = db.AutoMigrate(&Token{})
	if err != nil {
		return err
	}
	err = db.AutoMigrate(&Generation{})
	if err != nil {
		return err
	}
	logger.SysLog("database migrated")
	return err
}

func CloseDB() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	err = sqlDB.Close()
	return err
}
