package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/safetruck/fleetsight/internal/analyzer"
	"github.com/safetruck/fleetsight/internal/factories"
	"github.com/safetruck/fleetsight/internal/loader"
	"github.com/safetruck/fleetsight/internal/models"
	"github.com/safetruck/fleetsight/internal/output"
	"github.com/safetruck/fleetsight/internal/repositories/postgres"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "fleetsight",
	Short: "Scores truck fleet telemetry for reliability",
	Long: `fleetsight ingests noisy trip-summary telemetry from a truck fleet,
drops physically implausible records, scores each vehicle's reliability
and suggests the best vehicles for Day and Night operations.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		if err := runAnalyze(cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Filter implausible trips out of a feed and write the valid rows",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		if err := runClean(cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Emit synthetic trip telemetry for demos and tests",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		if err := runGenerate(cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")

	rootCmd.PersistentFlags().String("input-file", "data/trip_summary.csv", "Trip summary CSV path")
	rootCmd.PersistentFlags().String("input-source", "csv", "Where to read trips from (csv, postgres)")
	rootCmd.PersistentFlags().String("output-type", "console", "Sink for results (console, csv, json, parquet, kafka, postgres)")
	rootCmd.PersistentFlags().String("output-path", "output", "Base path for file outputs")
	rootCmd.PersistentFlags().String("output-folder", "fleetsight", "Folder under the base path")
	rootCmd.PersistentFlags().Bool("show-progress", false, "Show a progress bar while loading")

	rootCmd.Flags().String("period", "Day", "Period to query (Day or Night)")
	rootCmd.Flags().String("from", "", "Start-location search text")
	rootCmd.Flags().String("to", "", "End-location search text")

	generateCmd.Flags().Int("seed", 42, "Random seed for generation")
	generateCmd.Flags().Int("generate-trips", 500, "Number of trips to generate")
	generateCmd.Flags().Int("generate-fleet", 25, "Number of vehicles in the synthetic fleet")
	generateCmd.Flags().Float64("noise-ratio", 0.2, "Share of deliberately corrupted records")

	viper.BindPFlag("input_file", rootCmd.PersistentFlags().Lookup("input-file"))
	viper.BindPFlag("input_source", rootCmd.PersistentFlags().Lookup("input-source"))
	viper.BindPFlag("output_type", rootCmd.PersistentFlags().Lookup("output-type"))
	viper.BindPFlag("output_path", rootCmd.PersistentFlags().Lookup("output-path"))
	viper.BindPFlag("output_folder", rootCmd.PersistentFlags().Lookup("output-folder"))
	viper.BindPFlag("show_progress", rootCmd.PersistentFlags().Lookup("show-progress"))
	viper.BindPFlags(rootCmd.Flags())
	viper.BindPFlag("seed", generateCmd.Flags().Lookup("seed"))
	viper.BindPFlag("generate_trips", generateCmd.Flags().Lookup("generate-trips"))
	viper.BindPFlag("generate_fleet", generateCmd.Flags().Lookup("generate-fleet"))
	viper.BindPFlag("noise_ratio", generateCmd.Flags().Lookup("noise-ratio"))

	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(generateCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func loadTrips(cfg *models.Config) ([]models.Trip, error) {
	switch cfg.InputSource {
	case "", "csv":
		return loader.LoadFile(cfg.InputFile, cfg.ShowProgress)
	case "postgres":
		pool, err := pgxpool.New(context.Background(), cfg.Database.ConnString())
		if err != nil {
			return nil, fmt.Errorf("error connecting to database: %w", err)
		}
		defer pool.Close()

		repo := postgres.NewTripRepository(pool)
		trips, err := repo.GetAll(context.Background())
		if err != nil {
			return nil, err
		}
		for i, t := range trips {
			trips[i] = loader.Derive(t)
		}
		return trips, nil
	default:
		return nil, fmt.Errorf("unsupported input source: %s", cfg.InputSource)
	}
}

func runAnalyze(cfg *models.Config) error {
	trips, err := loadTrips(cfg)
	if err != nil {
		return err
	}

	period := models.Period(viper.GetString("period"))
	if period != models.PeriodDay && period != models.PeriodNight {
		return fmt.Errorf("unknown period %q (want Day or Night)", period)
	}
	from := viper.GetString("from")
	to := viper.GetString("to")

	rows := analyzer.Query(trips, period, from, to)

	for _, p := range []models.Period{models.PeriodDay, models.PeriodNight} {
		suggested := analyzer.TopVehicles(analyzer.Filter(trips, p, from, to))
		if len(suggested) == 0 {
			fmt.Printf("Suggested vehicles (%s): none\n", p)
			continue
		}
		fmt.Printf("Suggested vehicles (%s): %s\n", p, strings.Join(suggested, ", "))
	}
	fmt.Printf("\n%d %s trips:\n\n", len(rows), period)

	dest, err := output.New(cfg)
	if err != nil {
		return err
	}
	defer dest.Close()

	return dest.WriteTrips(rows)
}

func runClean(cfg *models.Config) error {
	trips, err := loadTrips(cfg)
	if err != nil {
		return err
	}

	valid, report := loader.Clean(trips)

	fmt.Printf("Rows: %d total, %d kept, %d removed\n",
		report.Total, report.Kept, report.Total-report.Kept)

	rules := make([]string, 0, len(report.Rejected))
	for rule := range report.Rejected {
		rules = append(rules, rule)
	}
	sort.Strings(rules)
	for _, rule := range rules {
		fmt.Printf("  %-22s %d\n", rule, report.Rejected[rule])
	}

	dest, err := output.New(cfg)
	if err != nil {
		return err
	}
	defer dest.Close()

	return dest.WriteTrips(valid)
}

func runGenerate(cfg *models.Config) error {
	factory := factories.NewTripFactory(cfg.Seed, cfg.GenerateFleet, cfg.NoiseRatio)
	trips := factory.CreateTrips(time.Now().AddDate(0, -1, 0), cfg.GenerateTrips)

	for i, t := range trips {
		trips[i] = loader.Derive(t)
	}

	dest, err := output.New(cfg)
	if err != nil {
		return err
	}
	defer dest.Close()

	fmt.Printf("Generated %d trips across %d vehicles\n", len(trips), cfg.GenerateFleet)
	return dest.WriteTrips(trips)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
