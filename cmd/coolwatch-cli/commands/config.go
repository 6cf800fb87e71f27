package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"coolwatch-backend/lib/configutil"
	"coolwatch-backend/lib/restyutil"
	"coolwatch-backend/lib/scrapers/icontrol"
	"coolwatch-backend/lib/serviceutil"
	"coolwatch-backend/services/tankupdate"

	"github.com/joho/godotenv"
)

// Config is read from config.json5 and may be overridden per field by
// the PACCOOL_USER, PACCOOL_PASS, BASE44_UPDATE_URL and WEBHOOK_KEY
// environment variables (a .env file is honored).
type Config struct {
	BaseUrl    string `json:"base_url"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	UpdateUrl  string `json:"update_url"`
	WebhookKey string `json:"webhook_key"`
}

func loadConfig() Config {
	godotenv.Load()

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read config", err)
	}

	if v := os.Getenv("PACCOOL_USER"); v != "" {
		cfg.Email = v
	}
	if v := os.Getenv("PACCOOL_PASS"); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv("BASE44_UPDATE_URL"); v != "" {
		cfg.UpdateUrl = v
	}
	if v := os.Getenv("WEBHOOK_KEY"); v != "" {
		cfg.WebhookKey = v
	}

	if cfg.Email == "" || cfg.Password == "" {
		serviceutil.Fatal(
			"missing portal credentials",
			fmt.Errorf("set PACCOOL_USER and PACCOOL_PASS or fill in config.json5"),
		)
	}

	return cfg
}

func createClient(ctx context.Context, cfg Config) *icontrol.Client {
	ctx, cancel := context.WithTimeout(ctx, time.Second*90)
	defer cancel()

	if *verbose {
		icontrol.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/icontrol"))
		tankupdate.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/tankupdate"))
	}

	client, err := icontrol.NewClient(ctx, icontrol.ClientOptions{BaseUrl: cfg.BaseUrl})
	if err != nil {
		serviceutil.Fatal("failed to initialize icontrol client", err)
	}

	err = client.LoginEmailPassword(ctx, cfg.Email, cfg.Password)
	if err != nil {
		serviceutil.Fatal("failed to login to the icontrol portal", err)
	}

	return client
}
