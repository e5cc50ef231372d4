package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"li-sourcer/internal/engine"
	"li-sourcer/internal/export"
	"li-sourcer/internal/filtering"
	"li-sourcer/internal/linkedin"
	"li-sourcer/internal/logger"
	"li-sourcer/internal/rawstore"
	"li-sourcer/internal/search"
	"li-sourcer/internal/secrets"
	"li-sourcer/internal/targets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"

	defaultOutputDir = "output"
	defaultRawSubdir = "raw_data"
)

var prompt = promptui.Select{
	Label: "Proceed with fetching?",
	Items: []string{PromptYes, PromptNo},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: collect profile urls, fetch them and derive the screening CSV",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("urls-file", "", "read profile urls from a file instead of scraping search results")
	runCmd.Flags().Bool("resume", false, "skip urls already present in the output CSV")
	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before fetching")
	runCmd.Flags().StringP("exclude-file", "e", "", "special file with urls to exclude. Default is unset.")

	viper.BindPFlag("exclude-file", runCmd.Flags().Lookup("exclude-file"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the li-sourcer", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	lists, err := loadLists(config)
	if err != nil {
		logger.Fatal("loading target lists", zap.Error(err))
	}

	normalizer := buildNormalizer(config, lists)

	outDir, rawDir := outputDirs(config)

	exporter, err := export.New(outDir)
	if err != nil {
		logger.Fatal("preparing output directory", zap.Error(err))
	}

	filename := exporter.Filename(outputFile(config))

	urls, err := collectURLs(ctx, cmd, config, logger)
	if err != nil {
		logger.Fatal("collecting profile urls", zap.Error(err))
	}

	logger.Info("collected profile urls", zap.Int("count", len(urls)))

	urls, err = filtering.Run(ctx, logger, prepareFilters(cmd, exporter, filename, logger), urls)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if len(urls) == 0 {
		logger.Info("exiting", zap.String("reason", "no urls left after filters"))
		return
	}

	logger.Info("urls ready for fetching", zap.Int("count", len(urls)))

	if cmd.Flag("auto-approve").Value.String() == "false" {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if action != PromptYes {
			logger.Info("exiting", zap.String("reason", "got no from prompt"))
			return
		}
	}

	apiKey, err := resolveAPIKey(config)
	if err != nil {
		logger.Fatal(
			"loading rapidapi key",
			zap.Error(err),
			zap.String("hint", "set RAPIDAPI_KEY_FILE environment variable or the 'fetch.api-key-file' key in the configuration file"),
		)
	}

	client := newClient(ctx, config, logger, apiKey)

	store, err := rawstore.New(rawDir)
	if err != nil {
		logger.Fatal("preparing raw capture directory", zap.Error(err))
	}

	var succeeded, failed int

	captures := client.FetchBatch(urls, func(current, total int, capture *rawstore.Capture) {
		if err := store.Save(capture, current); err != nil {
			logger.Warn("saving raw capture", zap.String("url", capture.URL), zap.Error(err))
		}

		if !capture.Success {
			failed++
			logger.Warn("profile fetch failed",
				zap.String("url", capture.URL),
				zap.String("error", capture.Error),
				zap.Int("current", current),
				zap.Int("total", total),
			)
			return
		}

		row := normalizer.Normalize(capture.Profile())
		if err := exporter.Append(row, filename); err != nil {
			logger.Fatal("appending to csv", zap.String("url", capture.URL), zap.Error(err))
		}

		succeeded++
		logger.Info("profile processed",
			zap.String("url", capture.URL),
			zap.String("name", row.Name),
			zap.Int("current", current),
			zap.Int("total", total),
		)
	})

	if err := store.SaveCombined(captures); err != nil {
		logger.Warn("saving combined raw capture file", zap.Error(err))
	}

	logger.Info("finished",
		zap.Int("succeeded", succeeded),
		zap.Int("failed", failed),
		zap.String("csv", filepath.Join(outDir, filename)),
		zap.String("raw_dir", rawDir),
	)
}

// collectURLs returns the profile urls to process, either from a plain
// file or by scraping the configured search results.
func collectURLs(ctx context.Context, cmd *cobra.Command, config *Config, logger *zap.Logger) ([]string, error) {
	urlsFile := cmd.Flag("urls-file").Value.String()
	if urlsFile != "" {
		list, err := targets.FromFile(urlsFile)
		if err != nil {
			return nil, fmt.Errorf("reading urls file: %w", err)
		}

		logger.Info("reading urls from file", zap.String("file", urlsFile), zap.Int("count", list.Len()))
		return list, nil
	}

	if config.Search == nil || strings.TrimSpace(config.Search.URL) == "" {
		return nil, errors.New("no profile source: set search.url in the config or pass --urls-file")
	}

	scraper := search.New(logger, config.Search.Headless)

	return scraper.Collect(ctx, config.Search.URL, config.Search.MaxPages)
}

func prepareFilters(cmd *cobra.Command, exporter *export.Exporter, filename string, logger *zap.Logger) []filtering.Filter {
	steps := []filtering.Filter{
		filtering.NewDedupe(),
		filtering.NewExcludeFile(viper.GetString("exclude-file")),
	}

	if cmd.Flag("resume").Value.String() == "true" {
		processed, err := exporter.ProcessedURLs(filename)
		if err != nil {
			logger.Warn("skipping already-processed filter", zap.Error(err))
		} else {
			steps = append(steps, filtering.NewProcessed(processed))
		}
	}

	return steps
}

func newClient(ctx context.Context, config *Config, logger *zap.Logger, apiKey string) *linkedin.Client {
	client := linkedin.New(ctx, logger, apiKey)

	if config.Fetch == nil {
		return client
	}

	if config.Fetch.MinDelaySeconds > 0 {
		client.MinDelay = time.Duration(config.Fetch.MinDelaySeconds * float64(time.Second))
	}
	if config.Fetch.MaxDelaySeconds > 0 {
		client.MaxDelay = time.Duration(config.Fetch.MaxDelaySeconds * float64(time.Second))
	}
	if config.Fetch.MaxRetries > 0 {
		client.MaxRetries = config.Fetch.MaxRetries
	}

	return client
}

func resolveAPIKey(config *Config) (string, error) {
	if config == nil {
		return "", errors.New("config is required")
	}

	var keyFile, key string
	if config.Fetch != nil {
		keyFile = strings.TrimSpace(config.Fetch.APIKeyFile)
		key = strings.TrimSpace(config.Fetch.APIKey)
	}

	if keyFile == "" {
		keyFile = strings.TrimSpace(viper.GetString("fetch.api-key-file"))
	}

	if keyFile == "" && key == "" {
		return "", errors.New("rapidapi key is not configured")
	}

	return secrets.Load(secrets.Source{
		Name:  "rapidapi key",
		Value: key,
		File:  keyFile,
	})
}

func outputDirs(config *Config) (string, string) {
	outDir := defaultOutputDir
	rawDir := ""

	if config.Output != nil {
		if config.Output.Dir != "" {
			outDir = config.Output.Dir
		}
		rawDir = config.Output.RawDir
	}

	if rawDir == "" {
		rawDir = filepath.Join(outDir, defaultRawSubdir)
	}

	return outDir, rawDir
}

func outputFile(config *Config) string {
	if config.Output == nil {
		return ""
	}

	return config.Output.File
}

// normalizeCaptures turns raw captures into csv rows, skipping failed ones.
func normalizeCaptures(captures []*rawstore.Capture, normalizer *engine.Normalizer, logger *zap.Logger) []*engine.Row {
	rows := make([]*engine.Row, 0, len(captures))
	for _, capture := range captures {
		if !capture.Success {
			logger.Debug("skipping failed capture", zap.String("url", capture.URL), zap.String("error", capture.Error))
			continue
		}

		rows = append(rows, normalizer.Normalize(capture.Profile()))
	}

	return rows
}
