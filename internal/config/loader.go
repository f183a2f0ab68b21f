package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. RANKPREDICT_SERVICE_BASE_URL.
const EnvPrefix = "RANKPREDICT"

// Options controls where Load looks.
type Options struct {
	// ConfigFile is an explicit YAML path. When empty, rankpredict.yaml is
	// searched in the working directory and ./configs.
	ConfigFile string
	// EnvFiles are loaded with godotenv before reading the environment.
	// Missing files are ignored; unparseable ones fail the load.
	EnvFiles []string
}

// Load resolves the configuration. Precedence: environment, config file,
// defaults.
func Load(opts Options) (*Config, error) {
	if err := loadEnvFiles(opts.EnvFiles); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("rankpredict")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.Service.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Service.BaseURL), "/")
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: invalid: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.base_url", DefaultBaseURL)
	v.SetDefault("service.timeout", DefaultTimeout)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("output.format", "text")
	v.SetDefault("metrics.addr", "")
}

func loadEnvFiles(paths []string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		// Existing environment variables win over .env entries.
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("config: load env file %s: %w", path, err)
		}
	}
	return nil
}
