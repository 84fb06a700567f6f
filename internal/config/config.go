package config

import (
	"os"

	flag "github.com/spf13/pflag"
)

const defaultEndpoint = "https://67dd047ae00db03c4069ce49.mockapi.io/Users"

type Config struct {
	Endpoint       Endpoint
	Logger         Logger
	MetricsAddress string
}

// Endpoint is the remote user collection
type Endpoint struct {
	URL string
}

type Logger struct {
	Format string
	Level  string
}

// New parses args with environment variables as fallback values
func New(args []string) (*Config, error) {
	cfg := &Config{}

	flags := flag.NewFlagSet("usersync", flag.ContinueOnError)
	flags.StringVar(&cfg.Endpoint.URL, "endpoint", envOrDefault("USERS_ENDPOINT", defaultEndpoint), "URL of the user collection endpoint")
	flags.StringVar(&cfg.Logger.Format, "log-format", envOrDefault("LOG_FORMAT", "text"), "which log format to use")
	flags.StringVar(&cfg.Logger.Level, "log-level", envOrDefault("LOG_LEVEL", "warning"), "which log level to output")
	flags.StringVar(&cfg.MetricsAddress, "metrics-address", os.Getenv("METRICS_ADDRESS"), "Address to serve Prometheus metrics on, disabled when empty")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
