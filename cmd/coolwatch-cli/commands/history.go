package commands

import (
	"os"
	"strconv"

	"coolwatch-backend/lib/serviceutil"
	"coolwatch-backend/lib/sqliteutil"
	"coolwatch-backend/services/tankmonitor"
	"coolwatch-backend/services/tankmonitor/db"

	"github.com/spf13/cobra"
)

var historyDb *string

func init() {
	historyDb = historyCmd.Flags().String("db", "history.db", "The sqlite history database to read.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history <tank_id> [--db <path/to/history.db>]",
	Short: "Lists the recorded readings of one tank from a history database.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tankId, err := strconv.Atoi(args[0])
		if err != nil {
			serviceutil.Fatal("tank_id must be an integer", err)
		}

		history, err := sqliteutil.OpenDB(db.Schema, *historyDb)
		if err != nil {
			serviceutil.Fatal("failed to open history db", err)
		}
		defer history.Close()

		entries, err := tankmonitor.NewStore(history).History(cmd.Context(), tankId)
		if err != nil {
			serviceutil.Fatal("failed to read history", err)
		}

		tankmonitor.RenderHistory(os.Stdout, entries)
	},
}
