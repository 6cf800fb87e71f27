package commands

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"coolwatch-backend/lib/configutil"
	"coolwatch-backend/lib/serviceutil"
	"coolwatch-backend/lib/sqliteutil"
	"coolwatch-backend/services/tankmonitor"
	"coolwatch-backend/services/tankmonitor/db"
	"coolwatch-backend/services/tankupdate"

	"github.com/spf13/cobra"
)

var scrapeTanks *string
var scrapeDb *string

func init() {
	scrapeTanks = scrapeCmd.Flags().String("tanks", "tanks.json", "The tank descriptor list to scrape.")
	scrapeDb = scrapeCmd.Flags().String("db", "", "When set, records readings into a sqlite history database.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--tanks <tanks.json>] [--db <path/to/history.db>]",
	Short: "Scrapes every configured tank, reports the readings and forwards them when an update url is configured.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		tanks, err := configutil.ReadConfig[[]tankmonitor.Tank](*scrapeTanks)
		if err != nil {
			serviceutil.Fatal("failed to read tank list", err)
		}

		slog.Info("scraping using user", "email", cfg.Email, "tanks", len(tanks))
		client := createClient(cmd.Context(), cfg)

		t1 := time.Now()
		readings := tankmonitor.Scrape(cmd.Context(), client, tanks)
		t2 := time.Now()
		slog.Info("scraping time", "seconds", t2.Sub(t1).Seconds())

		fmt.Println("Fetched results:")
		tankmonitor.RenderReadings(os.Stdout, readings)

		if *scrapeDb != "" {
			history, err := sqliteutil.OpenDB(db.Schema, *scrapeDb)
			if err != nil {
				serviceutil.Fatal("failed to open history db", err)
			}
			defer history.Close()

			err = tankmonitor.NewStore(history).Push(cmd.Context(), t2, readings)
			if err != nil {
				serviceutil.Fatal("failed to record history", err)
			}
			slog.Info("recorded readings", "db", *scrapeDb, "count", len(readings))
		}

		if cfg.UpdateUrl == "" {
			slog.Info("no update url configured, skipping forwarding")
			return
		}

		fmt.Println("\nPushing to Base44...")
		updater := tankupdate.NewClient(cfg.UpdateUrl, cfg.WebhookKey)
		tankmonitor.Push(cmd.Context(), updater, readings, os.Stdout)
	},
}
