package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fin-tools/ledger-atlas/pkg/server"
	"github.com/fin-tools/ledger-atlas/pkg/services/consolidate"
	"github.com/fin-tools/ledger-atlas/pkg/services/normalize"
	"github.com/fin-tools/ledger-atlas/pkg/services/rules"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	addr        string
	rulesPath   string
	columnsPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the invoice consolidation web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	rootCmd.Flags().StringVar(&rulesPath, "rules", "config/rules.yaml", "Path to the classification rules file")
	rootCmd.Flags().StringVar(&columnsPath, "columns", "config/columns.yaml", "Path to the column mapping file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	ruleset, err := rules.Load(rulesPath)
	if err != nil {
		return err
	}
	mappings, err := normalize.Load(columnsPath)
	if err != nil {
		return err
	}

	api := server.NewWebAPI(server.Config{
		Addr:            addr,
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Processor: consolidate.NewProcessor(mappings, ruleset),
			Mappings:  mappings,
			Logger:    logger,
		},
	})

	return api.Start()
}
