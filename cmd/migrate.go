package main

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/SparrowZheyuan18/expert-annotator/config"
	"github.com/SparrowZheyuan18/expert-annotator/internal/store"
)

func migrateCMD() *cobra.Command {
	var direction string
	var steps int
	var cfgPath string

	var migrate = &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			db, err := sql.Open("sqlite3", cfg.Storage.SQLite.Path+"?_journal_mode=WAL&_foreign_keys=on")
			if err != nil {
				return err
			}
			defer db.Close()
			return store.Migrate(db, direction, steps)
		},
	}
	migrate.Flags().StringVar(&direction, "direction", "up", "up or down")
	migrate.Flags().IntVar(&steps, "steps", 0, "number of steps (0 = all)")
	migrate.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return migrate
}
