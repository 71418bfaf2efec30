package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/zulandar/workboard/internal/config"
	"github.com/zulandar/workboard/internal/db"
	"github.com/zulandar/workboard/internal/logging"
	"github.com/zulandar/workboard/internal/store"
)

// app bundles what a command needs after loading config and connecting.
type app struct {
	cfg   *config.Config
	log   *logrus.Logger
	db    *gorm.DB
	store *store.BoardStore
}

// openApp loads config, connects and migrates the schema.
func openApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		db.Close(gormDB)
		return nil, err
	}
	s, err := store.New(store.Opts{DB: gormDB, Logger: log})
	if err != nil {
		db.Close(gormDB)
		return nil, err
	}
	return &app{cfg: cfg, log: log, db: gormDB, store: s}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

func addConfigFlag(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVarP(path, "config", "c", "", "path to Workboard config file (default: environment and built-in defaults)")
}
