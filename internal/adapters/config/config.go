package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/entitlements-cli/internal/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "ENT"

	defaultConfigName     = "config"
	defaultConfigDir      = ".entitlements"
	defaultRequestTimeout = 30 * time.Second
)

const (
	CacheBackendMemory = "memory"
	CacheBackendFile   = "file"
	CacheBackendRedis  = "redis"

	SecretsBackendChain = "chain"
	SecretsBackendFile  = "file"
)

type Config struct {
	APIService          APIService          `mapstructure:"apiService"`
	EntitlementsService EntitlementsService `mapstructure:"entitlementsService"`
	IdentityService     IdentityService     `mapstructure:"identityService"`
	Cache               Cache               `mapstructure:"cache"`
	Log                 Log                 `mapstructure:"log"`
	Secrets             Secrets             `mapstructure:"secrets"`
}

type APIService struct {
	APIURL         string        `mapstructure:"apiUrl"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout"`
}

// EntitlementsService only has to be present. GraphQLPath, when set, is
// resolved against APIService.APIURL.
type EntitlementsService struct {
	GraphQLPath string `mapstructure:"graphqlPath"`
}

type IdentityService struct {
	Issuer         string   `mapstructure:"issuer"`
	ClientID       string   `mapstructure:"clientId"`
	DeviceCodePath string   `mapstructure:"deviceCodePath"`
	TokenPath      string   `mapstructure:"tokenPath"`
	Scopes         []string `mapstructure:"scopes"`
}

type Cache struct {
	Backend   string        `mapstructure:"backend"`
	Path      string        `mapstructure:"path"`
	RedisURL  string        `mapstructure:"redisUrl"`
	KeyPrefix string        `mapstructure:"keyPrefix"`
	TTL       time.Duration `mapstructure:"ttl"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Secrets selects where session tokens live: "chain" tries pass first and
// falls back to files under Dir, "file" uses Dir only.
type Secrets struct {
	Backend    string `mapstructure:"backend"`
	Dir        string `mapstructure:"dir"`
	PassPrefix string `mapstructure:"passPrefix"`
}

// Endpoint is the GraphQL endpoint of the entitlements service.
func (c Config) Endpoint() (string, error) {
	if c.EntitlementsService.GraphQLPath == "" {
		return c.APIService.APIURL, nil
	}

	base, err := url.Parse(c.APIService.APIURL)
	if err != nil {
		return "", fmt.Errorf("parse apiService.apiUrl: %w", err)
	}
	endpoint, err := base.Parse(c.EntitlementsService.GraphQLPath)
	if err != nil {
		return "", fmt.Errorf("parse entitlementsService.graphqlPath: %w", err)
	}

	return endpoint.String(), nil
}

// Load reads configuration into v. An explicit configFile must exist;
// otherwise config.{toml,yaml,json} is looked up in ~/.entitlements and the
// working directory. Environment variables prefixed with ENT_ and a local
// .env file override file values.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	setDefaults(v, filepath.Join(homeDir, defaultConfigDir))

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(defaultConfigName)
		v.AddConfigPath(filepath.Join(homeDir, defaultConfigDir))
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if !sectionPresent(v, "entitlementsService", "graphqlPath") {
		return Config{}, domain.ErrEntitlementsServiceConfigNotFound
	}
	if !sectionPresent(v, "apiService", "apiUrl", "requestTimeout") {
		return Config{}, fmt.Errorf("apiService section missing: %w", domain.ErrInvalidConfig)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.APIService.RequestTimeout <= 0 {
		cfg.APIService.RequestTimeout = defaultRequestTimeout
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// setDefaults never touches apiService or entitlementsService: a default
// would make a missing section look present.
func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("identityService.deviceCodePath", "/oauth/device/code")
	v.SetDefault("identityService.tokenPath", "/oauth/token")
	v.SetDefault("identityService.scopes", []string{"openid", "offline_access"})

	v.SetDefault("cache.backend", CacheBackendMemory)
	v.SetDefault("cache.path", filepath.Join(configDir, "cache.toml"))
	v.SetDefault("cache.keyPrefix", "entitlements:cache:")
	v.SetDefault("cache.ttl", 0)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetDefault("secrets.backend", SecretsBackendChain)
	v.SetDefault("secrets.dir", filepath.Join(configDir, "secrets"))
	v.SetDefault("secrets.passPrefix", "entitlements")
}

func sectionPresent(v *viper.Viper, section string, keys ...string) bool {
	if v.IsSet(section) {
		return true
	}
	for _, key := range keys {
		if v.IsSet(section + "." + key) {
			return true
		}
	}
	return false
}

func (c Config) validate() error {
	if err := validateHTTPURL(c.APIService.APIURL); err != nil {
		return fmt.Errorf("apiService.apiUrl: %v: %w", err, domain.ErrInvalidConfig)
	}

	switch c.Cache.Backend {
	case CacheBackendMemory, CacheBackendFile:
	case CacheBackendRedis:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("cache.redisUrl is required for the redis backend: %w", domain.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("cache.backend %q: %w", c.Cache.Backend, domain.ErrInvalidConfig)
	}

	switch c.Secrets.Backend {
	case SecretsBackendChain, SecretsBackendFile:
	default:
		return fmt.Errorf("secrets.backend %q: %w", c.Secrets.Backend, domain.ErrInvalidConfig)
	}

	return nil
}

func validateHTTPURL(raw string) error {
	if raw == "" {
		return errors.New("value is empty")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("must use http or https")
	}
	if parsed.Host == "" {
		return errors.New("host is required")
	}

	return nil
}
