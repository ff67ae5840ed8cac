package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/townpages/townpages-cli/internal/adapters/driven/artifact"
	configfile "github.com/townpages/townpages-cli/internal/adapters/driven/config/file"
	"github.com/townpages/townpages-cli/internal/adapters/driven/regionref"
	"github.com/townpages/townpages-cli/internal/adapters/driven/storage/sqlite"
	"github.com/townpages/townpages-cli/internal/connectors/csvfile"
	"github.com/townpages/townpages-cli/internal/connectors/google"
	googlesheets "github.com/townpages/townpages-cli/internal/connectors/google/sheets"
	"github.com/townpages/townpages-cli/internal/core/ports/driven"
	"github.com/townpages/townpages-cli/internal/core/services"
	"github.com/townpages/townpages-cli/internal/logger"
)

// Services are wired lazily: commands that only need config (version,
// config) must work before a source is configured, so the source and
// orchestrator are constructed on first use by a pipeline command.
var (
	initOnce     sync.Once
	initErr      error
	sourceErr    error
	cleanupFuncs []func()
)

// Cleanup releases resources held by wired services.
func Cleanup() {
	for i := len(cleanupFuncs) - 1; i >= 0; i-- {
		cleanupFuncs[i]()
	}
	cleanupFuncs = nil
}

// initServices wires the config store, artifact store, run store and
// region reference. The row source is best-effort: a missing source
// configuration is remembered and surfaced only when a pipeline
// command needs it.
func initServices(ctx context.Context) error {
	initOnce.Do(func() {
		cfg, err := configfile.NewConfigStore("")
		if err != nil {
			initErr = fmt.Errorf("opening config: %w", err)
			return
		}
		configStore = cfg

		artifacts, err := artifact.NewJSONStore(cfg.GetString(configfile.KeyBuildArtifactPath))
		if err != nil {
			initErr = fmt.Errorf("opening artifact store: %w", err)
			return
		}

		regionRef, err := regionref.Load(regionReferencePath(cfg))
		if err != nil {
			initErr = err
			return
		}

		store, err := sqlite.NewStore("")
		if err != nil {
			initErr = fmt.Errorf("opening run store: %w", err)
			return
		}
		cleanupFuncs = append(cleanupFuncs, func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing run store: %v", err)
			}
		})
		runStore = store.RunStore()

		// The orchestrator is wired even when no source is
		// configured: Pages only needs the artifact store.
		source, err := buildSource(ctx, cfg)
		if err != nil {
			sourceErr = err
		} else {
			cleanupFuncs = append(cleanupFuncs, func() {
				if err := source.Close(); err != nil {
					logger.Warn("closing source: %v", err)
				}
			})
			rowSource = source
		}
		buildOrchestrator = services.NewBuildOrchestrator(rowSource, artifacts, regionRef, runStore)
	})
	return initErr
}

// ensureConfig wires enough for commands that only read config.
func ensureConfig(ctx context.Context) error {
	if configStore != nil {
		return nil
	}
	return initServices(ctx)
}

// ensureRuns wires enough for run history commands.
func ensureRuns(ctx context.Context) error {
	if runStore != nil {
		return nil
	}
	return initServices(ctx)
}

// ensurePages wires enough to enumerate an existing artifact; no row
// source is required.
func ensurePages(ctx context.Context) error {
	if buildOrchestrator != nil {
		return nil
	}
	if err := initServices(ctx); err != nil {
		return err
	}
	if buildOrchestrator == nil {
		return fmt.Errorf("build service not configured")
	}
	return nil
}

// ensureBuild wires the full pipeline, including the row source.
func ensureBuild(ctx context.Context) error {
	if buildOrchestrator != nil {
		return nil
	}
	if err := initServices(ctx); err != nil {
		return err
	}
	if rowSource == nil {
		if sourceErr != nil {
			return sourceErr
		}
		return fmt.Errorf("row source not configured")
	}
	return nil
}

// buildSource selects and constructs the row source from config.
func buildSource(ctx context.Context, cfg driven.ConfigStore) (driven.RowSource, error) {
	switch sourceType := cfg.GetString(configfile.KeySourceType); sourceType {
	case "csv", "csv-file":
		path := cfg.GetString(configfile.KeyCSVPath)
		if path == "" {
			return nil, fmt.Errorf("csv source requires %s in %s", configfile.KeyCSVPath, cfg.Path())
		}
		return csvfile.New(path), nil
	case "", "sheets", "google-sheets":
		return buildSheetsSource(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown source type %q", sourceType)
	}
}

func buildSheetsSource(ctx context.Context, cfg driven.ConfigStore) (driven.RowSource, error) {
	sheetsCfg := googlesheets.Config{
		SpreadsheetID:  cfg.GetString(configfile.KeySheetsSpreadsheetID),
		SheetName:      cfg.GetString(configfile.KeySheetsSheetName),
		PageSize:       int64(cfg.GetInt(configfile.KeySheetsPageSize)),
		MaxConcurrency: cfg.GetInt(configfile.KeySheetsMaxConcurrency),
	}
	if sheetsCfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets source requires %s in %s", configfile.KeySheetsSpreadsheetID, cfg.Path())
	}

	if apiKey := cfg.GetString(configfile.KeySheetsAPIKey); apiKey != "" {
		svc, err := google.NewSheetsServiceWithAPIKey(ctx, apiKey)
		if err != nil {
			return nil, fmt.Errorf("creating sheets client: %w", err)
		}
		return googlesheets.New(svc, sheetsCfg), nil
	}

	credsFile := cfg.GetString(configfile.KeySheetsCredentials)
	if credsFile == "" {
		return nil, fmt.Errorf("sheets source requires %s or %s in %s",
			configfile.KeySheetsAPIKey, configfile.KeySheetsCredentials, cfg.Path())
	}
	keyJSON, err := os.ReadFile(credsFile)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}
	ts, err := google.TokenSourceFromServiceAccount(ctx, keyJSON)
	if err != nil {
		return nil, fmt.Errorf("loading service account credentials: %w", err)
	}
	svc, err := google.NewSheetsService(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}
	return googlesheets.New(svc, sheetsCfg), nil
}

// regionReferencePath resolves the curated display-name file location.
func regionReferencePath(cfg driven.ConfigStore) string {
	if path := cfg.GetString(configfile.KeyBuildRegionReference); path != "" {
		return path
	}
	return filepath.Join(filepath.Dir(cfg.Path()), "regions.toml")
}
