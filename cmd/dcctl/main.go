// Package main implements dcctl, the operator CLI for the droneclear
// catalogue service. It talks straight to the database, not the HTTP API,
// so it works while the server is down.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tedstrazimiri/droneclear/internal/config"
	"github.com/tedstrazimiri/droneclear/internal/model/entity"
	"github.com/tedstrazimiri/droneclear/internal/repository"
	"github.com/tedstrazimiri/droneclear/internal/service"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "dcctl",
	Short:   "Operator tooling for the droneclear catalogue database",
	Version: version,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetGoldenCmd)
	rootCmd.AddCommand(seedGuidesCmd)
}

// loadConfigSilent resolves config for commands that never touch the database
func loadConfigSilent() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// env bundles everything a database-backed subcommand needs
type env struct {
	cfg      *config.Config
	logger   *zap.Logger
	services *service.Services
}

func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.DBName, cfg.Database.SSLMode,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&entity.Category{},
		&entity.Component{},
		&entity.DroneModel{},
		&entity.BuildGuide{},
		&entity.BuildGuideStep{},
		&entity.BuildSession{},
		&entity.StepPhoto{},
	); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, nil, cfg, zapLogger)

	return &env{cfg: cfg, logger: zapLogger, services: services}, nil
}
