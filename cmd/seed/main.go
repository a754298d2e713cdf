// Command seed loads programs, payment methods and coupons from JSON files into MongoDB.
//
//	seed -conf config.yml -programs programs.json -methods methods.json [-coupons coupons.json]
package main

import (
	"EnrollHub/internal/config"
	"EnrollHub/internal/database"
	"EnrollHub/internal/lib/logger"
	"EnrollHub/internal/lib/sl"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"
)

func main() {
	configPath := flag.String("conf", "config.yml", "path to config file")
	programsPath := flag.String("programs", "", "JSON array of programs, keyed by \"id\"")
	methodsPath := flag.String("methods", "", "JSON array of payment methods, keyed by \"value\"")
	couponsPath := flag.String("coupons", "", "JSON array of coupons, keyed by \"id\" (optional)")
	flag.Parse()

	if *programsPath == "" || *methodsPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	conf := config.MustLoad(*configPath)
	conf.Mongo.Enabled = true
	lg := logger.SetupLogger("local", "")

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.Error("mongo client", sl.Err(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err = db.Ping(ctx); err != nil {
		lg.Error("mongo unreachable", sl.Err(err))
		os.Exit(1)
	}

	jobs := []struct {
		path   string
		target repository.SeedTarget
	}{
		{*programsPath, repository.ProgramSeed},
		{*methodsPath, repository.PaymentMethodSeed},
		{*couponsPath, repository.CouponSeed},
	}
	for _, job := range jobs {
		if job.path == "" {
			continue
		}
		records, err := readRecords(job.path)
		if err != nil {
			lg.Error("reading seed file", slog.String("path", job.path), sl.Err(err))
			os.Exit(1)
		}
		n, err := db.Seed(ctx, job.target, records)
		if err != nil {
			lg.Error("seeding", slog.String("collection", job.target.Collection), sl.Err(err))
			os.Exit(1)
		}
		lg.With(
			slog.String("collection", job.target.Collection),
			slog.Int("written", n),
			slog.Int("records", len(records)),
		).Info("seeded")
	}
}

func readRecords(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []map[string]any
	if err = json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%s: expected a JSON array of objects: %w", path, err)
	}
	return records, nil
}
