package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/config"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	workWindowRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/workwindow"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

const (
	exitOK          = 0
	exitInvalid     = 2
	exitUnavailable = 3
)

type options struct {
	configPath  string
	date        string
	duration    *int // nil - флаг не задан
	buffer      *int
	granularity *int
	services    string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return exitInvalid
	}

	req, err := buildRequest(opts)
	if err != nil {
		printError(stderr, "%v", err)
		return exitInvalid
	}

	_ = godotenv.Load()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		printError(stderr, "config: %v", err)
		return exitInvalid
	}

	// CLI пишет в лог, только если задан файл, чтобы не смешивать лог с выводом слотов
	log := logger.NewNop()
	if cfg.Logs.File != "" {
		if log, err = logger.New(cfg.Logs.File, cfg.Logs.Level); err != nil {
			printError(stderr, "logger: %v", err)
			return exitInvalid
		}
	}
	defer log.Close()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		printError(stderr, "database: %v", err)
		return exitUnavailable
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	wrappedDB := dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)

	useCase := getAvailableSlotsUC.NewUseCase(
		workWindowRepo.NewRepository(wrappedDB),
		appointmentRepo.NewRepository(wrappedDB),
		catalogRepo.NewRepository(wrappedDB),
		txmanager.NewTransactionManager(wrappedDB),
		nil,
		getAvailableSlotsUC.Defaults{
			DurationMinutes:    cfg.Availability.DefaultDuration,
			BufferMinutes:      cfg.Availability.DefaultBuffer,
			GranularityMinutes: cfg.Availability.DefaultGranularity,
			Window: domain.WorkWindow{
				StartTime: cfg.Availability.WindowStart,
				EndTime:   cfg.Availability.WindowEnd,
			},
		},
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := useCase.Execute(ctx, req)
	if err != nil {
		printError(stderr, "%v", err)
		if errors.Is(err, getAvailableSlotsUC.ErrInvalidInput) {
			return exitInvalid
		}
		return exitUnavailable
	}

	printSlots(stdout, resp)
	return exitOK
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("slots", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	var duration, buffer, granularity int
	fs.StringVar(&opts.configPath, "config", "config.toml", "path to config file")
	fs.StringVar(&opts.date, "date", "", "date YYYY-MM-DD (required)")
	fs.IntVar(&duration, "duration", 0, "appointment duration in minutes (default from config or services)")
	fs.IntVar(&buffer, "buffer", 0, "buffer after appointment in minutes (default from config)")
	fs.IntVar(&granularity, "granularity", 0, "scan step in minutes (default from config)")
	fs.StringVar(&opts.services, "services", "", "comma-separated service ids, e.g. 1,2")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// только явно заданные флаги переопределяют значения по умолчанию
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "duration":
			opts.duration = &duration
		case "buffer":
			opts.buffer = &buffer
		case "granularity":
			opts.granularity = &granularity
		}
	})
	return opts, nil
}

// buildRequest переводит флаги в запрос; не заданные флаги остаются nil
func buildRequest(opts *options) (*getAvailableSlotsUC.Request, error) {
	if opts.date == "" {
		return nil, errors.New("-date is required")
	}
	date, err := time.Parse(domain.DateFormat, opts.date)
	if err != nil {
		return nil, fmt.Errorf("invalid -date %q, expected YYYY-MM-DD", opts.date)
	}

	minutes := []struct {
		name  string
		value *int
	}{
		{"duration", opts.duration},
		{"buffer", opts.buffer},
		{"granularity", opts.granularity},
	}
	for _, m := range minutes {
		if m.value != nil && *m.value < 0 {
			return nil, fmt.Errorf("-%s must not be negative", m.name)
		}
	}

	req := &getAvailableSlotsUC.Request{
		Date:               date,
		DurationMinutes:    opts.duration,
		BufferMinutes:      opts.buffer,
		GranularityMinutes: opts.granularity,
	}

	if strings.TrimSpace(opts.services) != "" {
		for _, part := range strings.Split(opts.services, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid service id %q", part)
			}
			req.ServiceIDs = append(req.ServiceIDs, id)
		}
	}

	return req, nil
}

func printSlots(w io.Writer, resp *getAvailableSlotsUC.Response) {
	header := color.New(color.Bold)
	slot := color.New(color.FgGreen)
	muted := color.New(color.FgHiBlack)

	header.Fprintf(w, "%s  duration=%dm buffer=%dm step=%dm\n",
		resp.Date.Format(domain.DateFormat), resp.DurationMinutes, resp.BufferMinutes, resp.GranularityMinutes)
	if resp.FallbackWindow {
		muted.Fprintln(w, "no work windows configured, default window used")
	}

	if len(resp.Slots) == 0 {
		color.New(color.FgYellow).Fprintln(w, "no available slots")
		return
	}
	for _, s := range resp.Slots {
		slot.Fprintln(w, s)
	}
	muted.Fprintf(w, "%d slots\n", len(resp.Slots))
}

func printError(w io.Writer, format string, v ...interface{}) {
	color.New(color.FgRed).Fprintf(w, "error: "+format+"\n", v...)
}
