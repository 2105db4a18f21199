package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/claude/liftlog/internal/export"
	"github.com/claude/liftlog/internal/storage/local"
)

func main() {
	dataDir := flag.String("data", "data", "path to the demo-mode data directory")
	format := flag.String("format", "json", "output format: json or csv")
	from := flag.String("from", "", "include workouts on or after this date (YYYY-MM-DD)")
	to := flag.String("to", "", "include workouts on or before this date (YYYY-MM-DD)")
	exercise := flag.String("exercise", "", "include only workouts containing this exercise (substring match)")
	out := flag.String("o", "", "output file (default stdout)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	filter, err := buildFilter(*from, *to, *exercise)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.PrintDefaults()
		os.Exit(1)
	}

	gw, err := local.Open(*dataDir)
	if err != nil {
		log.Error("failed to open storage", "dir", *dataDir, "error", err)
		os.Exit(1)
	}
	defer gw.Close()

	history, err := gw.WorkoutHistory(context.Background(), 0)
	if err != nil {
		log.Error("failed to load history", "error", err)
		os.Exit(1)
	}

	dst := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Error("failed to create output file", "path", *out, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		dst = f
	}

	switch *format {
	case "json":
		err = export.WriteJSON(dst, history, filter)
	case "csv":
		err = export.WriteCSV(dst, history, filter)
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q: want json or csv\n", *format)
		os.Exit(1)
	}
	if err != nil {
		log.Error("export failed", "error", err)
		os.Exit(1)
	}

	log.Info("export complete", "workouts", len(filter.Apply(history)), "format", *format)
}

func buildFilter(from, to, exercise string) (export.Filter, error) {
	var f export.Filter
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return f, fmt.Errorf("invalid -from date %q", from)
		}
		f.From = t
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return f, fmt.Errorf("invalid -to date %q", to)
		}
		f.To = t
	}
	f.Exercise = exercise
	return f, nil
}
