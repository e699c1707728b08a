package configs

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func dialector(env ENV) (gorm.Dialector, string, error) {
	switch env.DBDriver {
	case DriverMySQL, "":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			env.DBUser,
			env.DBPassword,
			env.DBHost,
			env.DBPort,
			env.DBName,
		)
		return mysql.Open(dsn), env.DBHost + ":" + env.DBPort, nil
	case DriverPostgres:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			env.DBHost,
			env.DBUser,
			env.DBPassword,
			env.DBName,
			env.DBPort,
		)
		return postgres.Open(dsn), env.DBHost + ":" + env.DBPort, nil
	case DriverSQLite:
		return sqlite.Open(env.DBPath), env.DBPath, nil
	default:
		return nil, "", fmt.Errorf("unsupported DB_DRIVER %q", env.DBDriver)
	}
}

// OpenConnection opens the configured database, retrying while it comes up.
func OpenConnection(env ENV) (*gorm.DB, error) {
	dial, target, err := dialector(env)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	if !env.IsProduction() {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	maxRetries := env.DBRetries
	if maxRetries <= 0 {
		maxRetries = 1
	}
	retryDelay := 5 * time.Second

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		zap.S().Infof("OpenConnection: connecting to %s database at %s (attempt %d/%d)", env.DBDriver, target, i+1, maxRetries)
		db, err := gorm.Open(dial, gormCfg)
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					zap.S().Infof("OpenConnection: database connection successful")
					return db, nil
				}
			}
			lastErr = pingErr
			zap.S().Warnf("OpenConnection: failed to ping database: %v, retrying in %v", pingErr, retryDelay)
		} else {
			lastErr = err
			zap.S().Warnf("OpenConnection: failed to open gorm connection: %v, retrying in %v", err, retryDelay)
		}

		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to the database after %d retries: %w", maxRetries, lastErr)
}
