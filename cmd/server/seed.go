package main

import (
	"fmt"

	"github.com/nc-news-api/internal/fixtures"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	var (
		file    string
		dataset string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace all rows with a fixture dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(file, dataset)
			if err != nil {
				return err
			}

			_, db, _, err := setup()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.RunMigrations(); err != nil {
				return err
			}
			return db.Seed(cmd.Context(), ds)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML dataset to load instead of an embedded one")
	cmd.Flags().StringVar(&dataset, "dataset", "test", "embedded dataset: test or development")
	return cmd
}

func loadDataset(file, name string) (*fixtures.Dataset, error) {
	if file != "" {
		return fixtures.Load(file)
	}
	switch name {
	case "test":
		return fixtures.Test()
	case "development":
		return fixtures.Development()
	}
	return nil, fmt.Errorf("unknown dataset %q", name)
}
