package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskmaster/todo/cmd/api/commands"
)

// @title Todo API
// @version 1.0
// @description Minimal todo service backed by PostgreSQL

// @license.name MIT

// @host localhost:8080
// @BasePath /

func main() {
	rootCmd := &cobra.Command{
		Use:   "todo",
		Short: "Todo API Server",
		Long:  `Todo is a small HTTP service for creating, listing, updating and deleting todo items.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
