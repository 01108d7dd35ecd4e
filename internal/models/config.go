package models

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// CloudStorageConfig selects where parquet exports land when the output
// destination is not local.
type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

// DatabaseConfig holds the Postgres connection settings for the trip
// repository.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// ConnString renders the config as a pgx connection string.
func (d DatabaseConfig) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Config is the runtime configuration. It covers inputs, outputs and
// transports only: the plausibility thresholds and score curves are part
// of the domain model (see constants.go) and deliberately not settable
// here.
type Config struct {
	InputFile   string `mapstructure:"input_file"`
	InputSource string `mapstructure:"input_source"` // "csv" or "postgres"

	OutputType        string `mapstructure:"output_type"` // console, csv, json, parquet, kafka, postgres
	OutputPath        string `mapstructure:"output_path"`
	OutputFolder      string `mapstructure:"output_folder"`
	OutputDestination string `mapstructure:"output_destination"` // "local" or a cloud provider

	KafkaEnabled    bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`
	KafkaTopic      string `mapstructure:"kafka_topic"`

	Database     DatabaseConfig     `mapstructure:"database"`
	CloudStorage CloudStorageConfig `mapstructure:"cloud_storage"`

	// Synthetic data generation (the generate command).
	Seed          int     `mapstructure:"seed"`
	GenerateTrips int     `mapstructure:"generate_trips"`
	GenerateFleet int     `mapstructure:"generate_fleet"`
	NoiseRatio    float64 `mapstructure:"noise_ratio"` // share of deliberately corrupted records

	ShowProgress bool `mapstructure:"show_progress"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	viper.SetDefault("input_source", "csv")
	viper.SetDefault("output_type", "console")
	viper.SetDefault("output_destination", "local")
	viper.SetDefault("kafka_topic", "fleet_trips_clean")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			dc.DecodeHook,
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}
