package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"fintrack/internal/auth"
	"fintrack/internal/config"
	"fintrack/internal/core"
	"fintrack/internal/export"
	gsheet "fintrack/internal/export/google"
	applog "fintrack/internal/log"
	"fintrack/internal/ledger/sqlite"
	"fintrack/internal/services"
)

func main() {
	_ = godotenv.Load()

	var (
		owner      = flag.String("owner", "", "owner whose report to generate (required)")
		startStr   = flag.String("start", "", "window start, YYYY-MM-DD (required)")
		endStr     = flag.String("end", "", "window end, YYYY-MM-DD (required)")
		categories = flag.String("categories", "", "comma-separated category filter (default: all)")
		tags       = flag.String("tags", "", "comma-separated tag filter (default: none)")
		out        = flag.String("out", export.ReportFilename, "output file, '-' for stdout")
		toSheets   = flag.Bool("sheets", false, "also append the report to Google Sheets")
	)
	flag.Parse()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Component: applog.ComponentExport,
	})
	applog.SetDefault(logger)

	if *owner == "" || *startStr == "" || *endStr == "" {
		flag.Usage()
		os.Exit(2)
	}

	start, err := time.Parse("2006-01-02", *startStr)
	if err != nil {
		logger.Error("Invalid start date", "value", *startStr, "error", err)
		os.Exit(2)
	}
	end, err := time.Parse("2006-01-02", *endStr)
	if err != nil {
		logger.Error("Invalid end date", "value", *endStr, "error", err)
		os.Exit(2)
	}
	// Window is inclusive: stretch the end to the last instant of the day.
	end = end.Add(24*time.Hour - time.Nanosecond)

	store, err := sqlite.NewStore(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize ledger store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	reports := services.NewReportService(store, auth.NewGuard())
	operator := auth.Principal{UserID: "report-export", Roles: []string{auth.RoleAdmin}}

	report, err := reports.Generate(ctx, operator, *owner, start, end, splitCategories(*categories), splitList(*tags))
	if err != nil {
		logger.Error("Report generation failed", "owner", *owner, "error", err)
		os.Exit(1)
	}

	csv := export.ReportCSV(report)
	if *out == "-" {
		fmt.Print(string(csv))
	} else {
		if err := os.WriteFile(*out, csv, 0644); err != nil {
			logger.Error("Failed to write report file", "path", *out, "error", err)
			os.Exit(1)
		}
		logger.Info("Report written", "path", *out, "owner", *owner)
	}

	if *toSheets {
		client, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		if err := client.AppendReport(ctx, *owner, time.Now(), report); err != nil {
			logger.Error("Failed to append report to Google Sheets", "error", err)
			os.Exit(1)
		}
	}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func splitCategories(s string) []core.Category {
	parts := splitList(s)
	if parts == nil {
		return nil
	}
	out := make([]core.Category, len(parts))
	for i, p := range parts {
		out[i] = core.Category(p)
	}
	return out
}
