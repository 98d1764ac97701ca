package main

import (
	"context"

	"foodees-api/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// foodees migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		// InitDB migrates on open
		_, _, _, err := boot()
		return err
	},
}

var seedWithOrders bool

// foodees seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo accounts, restaurants and menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, db, err := boot()
		if err != nil {
			return err
		}
		return seedDemo(cmd.Context(), store.New(db), log, seedWithOrders)
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedWithOrders, "with-orders", false, "also place sample orders at every stage of the order flow")
}

func seedDemo(ctx context.Context, st *store.Store, log *logrus.Logger, withOrders bool) error {
	report, err := st.Seed(ctx, bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	fields := logrus.Fields{
		"users":       report.Users,
		"restaurants": report.Restaurants,
		"menu_items":  report.MenuItems,
	}
	if withOrders {
		n, err := st.SeedOrders(ctx, store.SampleOrderCount)
		if err != nil {
			return err
		}
		fields["orders"] = n
	}
	log.WithFields(fields).Info("seed complete")
	return nil
}
