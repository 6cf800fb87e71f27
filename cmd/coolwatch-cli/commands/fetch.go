package commands

import (
	"os"
	"strconv"

	"coolwatch-backend/lib/serviceutil"
	"coolwatch-backend/services/tankmonitor"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <tank_id> <tank_code>",
	Short: "Fetches and reports a single tank without forwarding, useful for debugging extraction.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		tankId, err := strconv.Atoi(args[0])
		if err != nil {
			serviceutil.Fatal("tank_id must be an integer", err)
		}

		cfg := loadConfig()
		client := createClient(cmd.Context(), cfg)

		readings := tankmonitor.Scrape(cmd.Context(), client, []tankmonitor.Tank{
			{TankID: tankId, TankCode: args[1]},
		})
		tankmonitor.RenderReadings(os.Stdout, readings)
	},
}
