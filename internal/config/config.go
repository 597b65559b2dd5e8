package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	RPC     RPCConfig     `yaml:"rpc"`
	Jupiter JupiterConfig `yaml:"jupiter"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
	Swagger SwaggerConfig `yaml:"swagger"`
}

// ServerConfig holds the server-specific configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// RPCConfig holds configuration for the Solana RPC client.
type RPCConfig struct {
	// Endpoint may be empty: batch runs then refuse to start until the user
	// supplies one through the settings endpoint (or the RPC_URL env var).
	Endpoint       string `yaml:"endpoint"`
	RateLimit      int    `yaml:"rateLimit"`
	BurstLimit     int    `yaml:"burstLimit"`
	ProbeTimeoutMs int64  `yaml:"probeTimeoutMs"`
}

// JupiterConfig holds the configuration for the Jupiter quote client.
type JupiterConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	SlippageBps          int    `yaml:"slippageBps"`
}

// SearchConfig holds the thresholds and pacing delays of batch searches.
type SearchConfig struct {
	MinTokenAmount        float64 `yaml:"minTokenAmount"`
	MinUSDCValue          float64 `yaml:"minUsdcValue"`
	InterStepDelayMs      int64   `yaml:"interStepDelayMs"`
	InterWalletDelayMs    int64   `yaml:"interWalletDelayMs"`
	NFTInterWalletDelayMs int64   `yaml:"nftInterWalletDelayMs"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
	File  string `yaml:"file"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	applyDefaults(&cfg)

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}

	if cfg.Jupiter.BaseURL == "" {
		cfg.Jupiter.BaseURL = "https://lite-api.jup.ag/swap/v1"
		logrus.Infof("Jupiter.BaseURL not set, defaulting to %s", cfg.Jupiter.BaseURL)
	}
	if cfg.Jupiter.RequestTimeoutMillis == 0 {
		// The quote request carries its own bound so one slow upstream call
		// cannot stall the whole batch.
		cfg.Jupiter.RequestTimeoutMillis = 5000
		logrus.Infof("Jupiter.RequestTimeoutMillis not set, defaulting to %d ms", cfg.Jupiter.RequestTimeoutMillis)
	}
	if cfg.Jupiter.SlippageBps == 0 {
		cfg.Jupiter.SlippageBps = 50
	}

	if cfg.Search.MinTokenAmount == 0 {
		cfg.Search.MinTokenAmount = 0.000001
	}
	if cfg.Search.MinUSDCValue == 0 {
		cfg.Search.MinUSDCValue = 0.01
	}
	if cfg.Search.InterStepDelayMs == 0 {
		cfg.Search.InterStepDelayMs = 500
	}
	if cfg.Search.InterWalletDelayMs == 0 {
		cfg.Search.InterWalletDelayMs = 500
	}
	if cfg.Search.NFTInterWalletDelayMs == 0 {
		cfg.Search.NFTInterWalletDelayMs = 1500
	}

	if cfg.RPC.RateLimit == 0 {
		cfg.RPC.RateLimit = 4
	}
	if cfg.RPC.BurstLimit == 0 {
		cfg.RPC.BurstLimit = 2
	}
	if cfg.RPC.ProbeTimeoutMs == 0 {
		cfg.RPC.ProbeTimeoutMs = 5000
	}
}
