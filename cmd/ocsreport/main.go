package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"

	"github.com/teltrip/ocsreport/internal/config"
	"github.com/teltrip/ocsreport/internal/httpclient"
	"github.com/teltrip/ocsreport/internal/logger"
	"github.com/teltrip/ocsreport/internal/ocs"
	"github.com/teltrip/ocsreport/internal/report"
)

func main() {
	var (
		accountID    int64
		rangeStart   string
		listAccounts bool
	)

	flag.Int64Var(&accountID, "account", 0, "Account id to report on (defaults to report.defaultaccountid)")
	flag.StringVar(&rangeStart, "from", "", "Override the aggregation start date (YYYY-MM-DD)")
	flag.BoolVar(&listAccounts, "accounts", false, "List visible accounts instead of building a report")
	flag.Parse()

	// .env is optional; real deployments configure via config.yaml or env vars
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if rangeStart != "" {
		cfg.Report.RangeStart = rangeStart
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "invalid -from date: %v\n", err)
			os.Exit(1)
		}
	}

	log, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	client := ocs.NewClient(
		httpclient.NewDefaultClient(httpclient.ClientConfig{
			Timeout:  cfg.OCS.RequestTimeout,
			RetryMax: cfg.OCS.RetryMax,
		}),
		ocs.ClientConfig{
			BaseURL:           cfg.OCS.BaseURL,
			Token:             cfg.OCS.Token,
			RequestTimeout:    cfg.OCS.RequestTimeout,
			RequestsPerSecond: cfg.OCS.RequestsPerSecond,
		},
		log,
	)
	svc := report.NewService(ocs.NewResolver(client, log), cfg, log)

	ctx := context.Background()
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(os.Stdout)

	if listAccounts {
		accounts, err := svc.ListAccounts(ctx)
		if err != nil {
			log.Fatalf("listing accounts failed: %v", err)
		}
		for _, a := range accounts {
			if err := enc.Encode(a); err != nil {
				log.Fatalf("encoding account: %v", err)
			}
		}
		return
	}

	rows, err := svc.BuildReport(ctx, accountID)
	if err != nil {
		log.Fatalf("report failed: %v", err)
	}
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			log.Fatalf("encoding row: %v", err)
		}
	}
}
