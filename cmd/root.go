package cmd

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"li-sourcer/internal/engine"
	"li-sourcer/internal/targets"
)

const (
	app = "li-sourcer"
)

type Config struct {
	Search         *SearchConfig `mapstructure:"search"`
	Fetch          *FetchConfig  `mapstructure:"fetch"`
	Lists          *ListsConfig  `mapstructure:"lists"`
	Output         *OutputConfig `mapstructure:"output"`
	MatchThreshold int           `mapstructure:"match-threshold"`
}

type SearchConfig struct {
	URL      string `mapstructure:"url"`
	MaxPages int    `mapstructure:"max-pages"`
	Headless bool   `mapstructure:"headless"`
}

type FetchConfig struct {
	APIKeyFile      string  `mapstructure:"api-key-file"`
	APIKey          string  `mapstructure:"api-key"`
	MinDelaySeconds float64 `mapstructure:"min-delay-seconds"`
	MaxDelaySeconds float64 `mapstructure:"max-delay-seconds"`
	MaxRetries      int     `mapstructure:"max-retries"`
}

type ListsConfig struct {
	Schools   string `mapstructure:"schools"`
	Companies string `mapstructure:"companies"`
	Peers     string `mapstructure:"peers"`
	Retailers string `mapstructure:"retailers"`
}

type OutputConfig struct {
	Dir    string `mapstructure:"dir"`
	File   string `mapstructure:"file"`
	RawDir string `mapstructure:"raw-dir"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "li-sourcer collects professional profiles and derives candidate screening fields into a CSV",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("fetch.api-key-file", "RAPIDAPI_KEY_FILE"); err != nil {
		log.Fatalf("binding RAPIDAPI_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is li-sourcer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Environment first so RAPIDAPI_KEY_FILE from .env is visible to viper.
	_ = godotenv.Load()

	// Config is needed only for the commands that process profiles.
	if runCmd.CalledAs() == "" && reprocessCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

// referenceLists bundles the loaded target lists for a run.
type referenceLists struct {
	schools   targets.List
	companies targets.List
	peers     targets.List
	retailers targets.List
}

func loadLists(config *Config) (*referenceLists, error) {
	if config.Lists == nil {
		return nil, fmt.Errorf("lists section is required (schools, companies, retailers)")
	}

	lists := &referenceLists{}
	required := []struct {
		name string
		path string
		dst  *targets.List
	}{
		{"schools", config.Lists.Schools, &lists.schools},
		{"companies", config.Lists.Companies, &lists.companies},
		{"retailers", config.Lists.Retailers, &lists.retailers},
	}

	for _, item := range required {
		if item.path == "" {
			return nil, fmt.Errorf("lists.%s file is required", item.name)
		}
		list, err := targets.FromFile(item.path)
		if err != nil {
			return nil, fmt.Errorf("loading %s list: %w", item.name, err)
		}
		if list.Len() == 0 {
			return nil, fmt.Errorf("%s list %q is empty", item.name, item.path)
		}
		*item.dst = list
	}

	// The peer list is optional; without it peer tenure simply stays zero.
	if config.Lists.Peers != "" {
		list, err := targets.FromFile(config.Lists.Peers)
		if err != nil {
			return nil, fmt.Errorf("loading peers list: %w", err)
		}
		lists.peers = list
	}

	return lists, nil
}

func buildNormalizer(config *Config, lists *referenceLists) *engine.Normalizer {
	normalizer := engine.NewNormalizer(lists.schools, lists.companies, lists.retailers)
	normalizer.Peers = lists.peers
	if config.MatchThreshold > 0 {
		normalizer.Threshold = config.MatchThreshold
	}
	return normalizer
}
