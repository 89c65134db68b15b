package main

import (
	"database/sql"
	"flag"

	"cardcomps-backend/lib/compstore"
	"cardcomps-backend/lib/configutil"
	"cardcomps-backend/lib/platforms/ebay"
	"cardcomps-backend/lib/platforms/pricecharting"
	"cardcomps-backend/lib/telemetry"
	"cardcomps-backend/lib/util/serviceutil"
	"cardcomps-backend/services/comps"

	_ "modernc.org/sqlite"
)

type PricechartingConfig struct {
	BaseUrl  string `json:"base_url"`
	MaxPages int    `json:"max_pages"`
}

type Config struct {
	Port int `json:"port"`
	// path to the sqlite snapshot database, empty disables persistence
	Database      string              `json:"database"`
	Pricecharting PricechartingConfig `json:"pricecharting"`
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	telemetry.InitSlog(*verbose)
	initTelemetry(ctx)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}

	pc, err := pricecharting.NewClient(pricecharting.ClientOptions{
		BaseUrl:  cfg.Pricecharting.BaseUrl,
		MaxPages: cfg.Pricecharting.MaxPages,
	})
	if err != nil {
		serviceutil.Fatal("init pricecharting client", err)
	}

	var store *compstore.Store
	if cfg.Database != "" {
		sqlite, err := sql.Open("sqlite", cfg.Database)
		if err != nil {
			serviceutil.Fatal("open snapshot database", err)
		}
		_, err = sqlite.Exec(compstore.Schema)
		if err != nil {
			serviceutil.Fatal("migrate snapshot database", err)
		}
		s := compstore.NewStore(sqlite)
		store = &s
	}

	var ebayClient *ebay.Client
	if ebayCfg := ebay.ConfigFromEnv(); ebayCfg.ClientId != "" {
		ebayClient = ebay.NewClient(ebayCfg)
	}

	service := comps.NewService(comps.Options{
		Pricecharting: pc,
		Ebay:          ebayClient,
		Store:         store,
	})

	go serviceutil.StartHttpServer(cfg.Port, newRouter(service))
	<-ctx.Done()
}
