package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port                 int
	DatabaseURL          string
	DatabaseType         string
	NamesSource          string
	ParticipantTokenSalt string
	StatsInterval        time.Duration
	S3                   S3Config
}

// S3Config holds settings for reading the names list from an S3-compatible bucket
type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("namepair", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.NamesSource, "names", "", "Names list (file path or s3://bucket/key)")
	fs.DurationVar(&cfg.StatsInterval, "stats-interval", 0, "Interval between stats reports")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.ParticipantTokenSalt, "token-salt", "", "Participant token salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.NamesSource == "" {
		cfg.NamesSource = os.Getenv("NAMES_SOURCE")
		if cfg.NamesSource == "" {
			cfg.NamesSource = "names.txt"
		}
	}

	if cfg.StatsInterval == 0 {
		if s := os.Getenv("STATS_INTERVAL"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return Config{}, errors.New("invalid STATS_INTERVAL env variable")
			}
			cfg.StatsInterval = d
		} else {
			cfg.StatsInterval = 10 * time.Minute
		}
	}
	if cfg.StatsInterval < 0 {
		return Config{}, errors.New("stats interval must be positive")
	}

	cfg.S3 = S3Config{
		Endpoint:        os.Getenv("S3_ENDPOINT"),
		Region:          os.Getenv("S3_REGION"),
		AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
	}

	// Secrets - MUST be provided
	if cfg.ParticipantTokenSalt == "" {
		cfg.ParticipantTokenSalt = os.Getenv("PARTICIPANT_TOKEN_SALT")
	}
	if cfg.ParticipantTokenSalt == "" {
		return Config{}, errors.New("PARTICIPANT_TOKEN_SALT required")
	}

	return cfg, nil
}
