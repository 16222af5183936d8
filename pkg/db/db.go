// Package db provides the gorm database connection for the application.
package db

import (
	"strings"

	"github.com/smallbiznis/docbill/internal/config"
	"github.com/smallbiznis/docbill/internal/observability/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Module = fx.Module("db",
	fx.Provide(New),
)

type Params struct {
	fx.In

	Cfg config.Config
	Log *zap.Logger
}

// New opens the database. Postgres is used when DATABASE_URL is set; a
// local sqlite file keeps development runs self-contained. TranslateError
// is enabled so unique violations surface as gorm.ErrDuplicatedKey.
func New(p Params) (*gorm.DB, error) {
	dialector := dialectorFor(p.Cfg.DatabaseURL)

	conn, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	p.Log.Info("database connected",
		zap.String("dialect", Dialect(p.Cfg.DatabaseURL)),
		zap.String("dsn", logger.MaskDSN(p.Cfg.DatabaseURL)),
	)
	return conn, nil
}

// Dialect reports the migration dialect for the configured database.
func Dialect(databaseURL string) string {
	if strings.TrimSpace(databaseURL) == "" {
		return "sqlite3"
	}
	return "postgres"
}

func dialectorFor(databaseURL string) gorm.Dialector {
	if strings.TrimSpace(databaseURL) == "" {
		return sqlite.Open("docbill.db")
	}
	return postgres.Open(databaseURL)
}
