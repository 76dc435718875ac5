package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, _, err := setup()
			if err != nil {
				return err
			}
			defer db.Close()

			switch args[0] {
			case "up":
				return db.RunMigrations()
			case "down":
				return db.MigrateDown()
			}
			return fmt.Errorf("unknown direction %q", args[0])
		},
	}
}
