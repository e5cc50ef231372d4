package cmd

import (
	"errors"
	"log"
	"path/filepath"

	"li-sourcer/internal/export"
	"li-sourcer/internal/logger"
	"li-sourcer/internal/rawstore"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var reprocessCmd = &cobra.Command{
	Use:   "reprocess",
	Short: "Rebuild the screening CSV from previously saved raw captures, without network calls",
	Run: func(cmd *cobra.Command, _ []string) {
		reprocess(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reprocessCmd)

	reprocessCmd.Flags().String("raw-dir", "", "directory with per-profile raw capture files")
	reprocessCmd.Flags().String("combined", "", "combined raw capture file")
}

func reprocess(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		logger.Fatal("config is required")
	}

	lists, err := loadLists(config)
	if err != nil {
		logger.Fatal("loading target lists", zap.Error(err))
	}

	normalizer := buildNormalizer(config, lists)

	captures, err := loadCaptures(cmd, config, logger)
	if err != nil {
		logger.Fatal("loading raw captures", zap.Error(err))
	}

	if len(captures) == 0 {
		logger.Info("exiting", zap.String("reason", "no raw captures found"))
		return
	}

	logger.Info("loaded raw captures", zap.Int("count", len(captures)))

	rows := normalizeCaptures(captures, normalizer, logger)

	outDir, _ := outputDirs(config)

	exporter, err := export.New(outDir)
	if err != nil {
		logger.Fatal("preparing output directory", zap.Error(err))
	}

	filename := exporter.Filename(outputFile(config))

	path, err := exporter.WriteAll(rows, filename)
	if err != nil {
		logger.Fatal("writing csv", zap.Error(err))
	}

	logger.Info("finished",
		zap.Int("rows", len(rows)),
		zap.Int("skipped", len(captures)-len(rows)),
		zap.String("csv", path),
	)
}

func loadCaptures(cmd *cobra.Command, config *Config, logger *zap.Logger) ([]*rawstore.Capture, error) {
	combined := cmd.Flag("combined").Value.String()
	if combined != "" {
		return rawstore.LoadCombined(combined)
	}

	rawDir := cmd.Flag("raw-dir").Value.String()
	if rawDir == "" {
		_, rawDir = outputDirs(config)
	}

	if rawDir == "" {
		return nil, errors.New("no raw capture source: pass --raw-dir or --combined, or set output.raw-dir")
	}

	captures, errs := rawstore.LoadDir(rawDir)
	for _, err := range errs {
		logger.Warn("skipping unreadable capture file", zap.Error(err))
	}

	if len(captures) == 0 && len(errs) == 0 {
		logger.Debug("no capture files matched", zap.String("pattern", filepath.Join(rawDir, "profile_*.json")))
	}

	return captures, nil
}
