// medboard: a hospital ward and supply management simulation.
//
// The operator admits daily arrivals into the waiting room, transfers
// patients to clinical wards, treats them against ward or warehouse stock,
// and keeps the central warehouse supplied, all under daily action and
// withdrawal budgets tied to the hospital's reputation.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/medboard/medboard/internal/config"
	"github.com/medboard/medboard/internal/hospital"
	"github.com/medboard/medboard/internal/journal"
	"github.com/medboard/medboard/internal/roster"
	"github.com/medboard/medboard/internal/services/admissions"
	"github.com/medboard/medboard/internal/services/transfers"
	"github.com/medboard/medboard/internal/services/treatment"
	"github.com/medboard/medboard/internal/services/triage"
	"github.com/medboard/medboard/internal/services/warehouse"
	"github.com/medboard/medboard/internal/tui"
	"github.com/medboard/medboard/internal/util"
)

// Build information (set via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version and exit")
		debugMode   = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("medboard version %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	if err := run(*configPath, *debugMode); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, debugMode bool) error {
	cfg, cfgPath, err := config.Load(configPath, true)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	} else {
		switch cfg.Logging.Level {
		case config.LogLevelDebug:
			logLevel = slog.LevelDebug
		case config.LogLevelWarn:
			logLevel = slog.LevelWarn
		case config.LogLevelError:
			logLevel = slog.LevelError
		}
	}

	// The TUI owns the terminal, so file logging is the default and
	// stderr the fallback.
	var logHandler slog.Handler
	logPath, err := config.EnsureLogDir(cfg)
	if err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	if logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer logFile.Close()

		logHandler = slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: logLevel})
	} else {
		logHandler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	}
	slog.SetDefault(slog.New(logHandler))

	slog.Info("medboard starting",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cfgPath,
	)

	state, err := hospital.NewState(cfg.Topology(), cfg.EnginePolicy())
	if err != nil {
		return fmt.Errorf("building hospital: %w", err)
	}

	if err := seedFromRoster(cfg, state); err != nil {
		return err
	}

	journalPath, err := config.EnsureJournalPath(cfg)
	if err != nil {
		return fmt.Errorf("resolving journal path: %w", err)
	}

	var j *journal.Journal
	if cfg.Journal.Enabled {
		j, err = journal.Open(journalPath, util.NewIDGenerator())
		if err != nil {
			return fmt.Errorf("opening journal: %w", err)
		}
		defer j.Close()
	}

	var gen *roster.ArrivalGenerator
	if cfg.Policy.AutoArrivals {
		gen, err = roster.NewArrivalGenerator(time.Now().UnixNano())
		if err != nil {
			return fmt.Errorf("loading arrival catalog: %w", err)
		}
	}

	svc := tui.Services{
		State:      state,
		Admissions: admissions.NewService(state, j, gen),
		Triage:     triage.NewService(state, j),
		Transfers:  transfers.NewService(state, j),
		Treatment:  treatment.NewService(state, j),
		Warehouse:  warehouse.NewService(state, j),
		Journal:    j,
	}

	slog.Info("hospital ready",
		"wards", len(state.Wards()),
		"waiting", state.WaitingRoom().PatientCount(),
		"day", state.Day,
	)

	return tui.Run(cfg, svc)
}

// seedFromRoster loads the patient and supply CSVs named in the config.
// A roster that cannot be opened or parsed is the one fatal startup
// condition; an empty path skips that part of the seed.
func seedFromRoster(cfg *config.Config, state *hospital.State) error {
	var patients *roster.PatientResult
	if cfg.Roster.Patients != "" {
		var err error
		patients, err = roster.LoadPatients(cfg.Roster.Patients)
		if err != nil {
			return fmt.Errorf("loading patient roster: %w", err)
		}
	}

	var supplies *roster.SupplyResult
	if cfg.Roster.Supplies != "" {
		var err error
		supplies, err = roster.LoadSupplies(cfg.Roster.Supplies)
		if err != nil {
			return fmt.Errorf("loading supply roster: %w", err)
		}
	}

	roster.Seed(state, patients, supplies)
	return nil
}
