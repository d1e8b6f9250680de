package main

import (
	"log/slog"
	"os"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "fifo",
	Short: "FIFO queue tracker for warehouse buffer cages",
	Long: `fifo tracks cages through the RTS, EHA and SAL buffer lanes,
reserves sequential tracking labels and keeps an audit trail of every change.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
