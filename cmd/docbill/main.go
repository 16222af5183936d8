package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/smallbiznis/docbill/internal/branding"
	"github.com/smallbiznis/docbill/internal/clock"
	"github.com/smallbiznis/docbill/internal/config"
	"github.com/smallbiznis/docbill/internal/customer"
	"github.com/smallbiznis/docbill/internal/events"
	"github.com/smallbiznis/docbill/internal/invoice"
	"github.com/smallbiznis/docbill/internal/mailer"
	"github.com/smallbiznis/docbill/internal/migration"
	"github.com/smallbiznis/docbill/internal/observability/logger"
	"github.com/smallbiznis/docbill/internal/proposal"
	"github.com/smallbiznis/docbill/internal/report"
	"github.com/smallbiznis/docbill/internal/seed"
	"github.com/smallbiznis/docbill/internal/server"
	"github.com/smallbiznis/docbill/pkg/db"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		db.Module,
		fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB, db.Dialect(cfg.DatabaseURL)); err != nil {
				return err
			}
			return seed.EnsureDefaultProfile(conn, cfg.LogoPath)
		}),
		clock.Module,
		events.Module,
		customer.Module,
		branding.Module,
		proposal.Module,
		invoice.Module,
		report.Module,
		mailer.Module,
		server.Module,
	)
	app.Run()
}
