package main

import (
	"fmt"
	"os"

	"foodees-api/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "foodees",
	Short: "Foodees food delivery API",
	Long:  "Foodees serves the order lifecycle API for superadmins, restaurants, customers and delivery agents.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// boot loads config, builds the logger and opens the migrated database.
func boot() (config.Config, *logrus.Logger, *gorm.DB, error) {
	cfg := config.Load()
	log := config.NewLogger(cfg.LogLevel)
	db, err := config.InitDB(cfg.DBPath, log)
	if err != nil {
		return cfg, log, nil, err
	}
	return cfg, log, db, nil
}
