package database

import (
	"fmt"
	"time"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/insightloop/insightloop/pkg/config"
)

// NewPostgresDB opens a GORM connection to PostgreSQL with pool limits
// taken from the database config section.
func NewPostgresDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	dsn := cfg.GetDatabaseDSN()

	logMode := gormlogger.Info
	if cfg.Server.Environment == "production" {
		logMode = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MinConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if logger != nil {
		logger.Info("✅ Database connected",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.Name))
	}

	return db, nil
}

// AutoMigrate applies the pending SQL migrations with sql-migrate.
func AutoMigrate(db *gorm.DB, cfg *config.Config, logger *zap.Logger) error {
	migrations := &migrate.FileMigrationSource{
		Dir: cfg.Database.MigrationsDir,
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get db connection during migrate up, error: %v", err)
	}

	n, err := migrate.Exec(sqlDB, "postgres", migrations, migrate.Up)
	if err != nil {
		return fmt.Errorf("failed to apply migration, error: %v", err)
	}

	if logger != nil {
		logger.Info("✅ Migrations applied",
			zap.Int("count", n),
			zap.String("dir", cfg.Database.MigrationsDir))
	}
	return nil
}

// CloseDB closes the underlying connection pool.
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
