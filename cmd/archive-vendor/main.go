package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/stockfix/maintapi/internal/config"
	"github.com/stockfix/maintapi/internal/metrics"
	"github.com/stockfix/maintapi/internal/service"
	"github.com/stockfix/maintapi/internal/shopify"
)

func main() {
	// Load .env if present
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	vendor := cfg.Maintenance.ArchiveVendor
	if len(os.Args) > 1 {
		vendor = os.Args[1]
	}
	if vendor == "" {
		fmt.Fprintln(os.Stderr, "Usage: archive-vendor <vendor> (or set ARCHIVE_VENDOR)")
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	metrics.Register()

	client := shopify.NewClient(cfg.Shopify, logger)
	svc := service.NewMaintenanceService(client, cfg.Maintenance, logger)

	fmt.Printf("Archiving products for vendor %q...\n", vendor)

	result, err := svc.ArchiveVendorProducts(context.Background(), vendor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Run aborted: %v\n", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))

	if !result.OK {
		os.Exit(2)
	}
}
