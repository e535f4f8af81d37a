package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Cors        CorsConfig        `mapstructure:"cors"`
	Auth        JWTConfig         `mapstructure:"auth"`
	ChatBackend ChatBackendConfig `mapstructure:"chatBackend"`
	Wiki        WikiConfig        `mapstructure:"wiki"`
	Extractor   ExtractorConfig   `mapstructure:"extractor"`
	Strips      StripsConfig      `mapstructure:"strips"`
}

type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// JWTConfig controls bearer token checks. With an empty SecretKey only the
// presence of a bearer token is enforced and verification is left to the
// chat backend.
type JWTConfig struct {
	SecretKey string `mapstructure:"secretKey"`
	Issuer    string `mapstructure:"issuer"`
	Audience  string `mapstructure:"audience"`
}

type ChatBackendConfig struct {
	BaseURL string        `mapstructure:"baseURL"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type WikiConfig struct {
	RestBaseURL       string        `mapstructure:"restBaseURL"`
	ActionBaseURL     string        `mapstructure:"actionBaseURL"`
	UserAgent         string        `mapstructure:"userAgent"`
	StageTimeout      time.Duration `mapstructure:"stageTimeout"`
	ThumbnailWidth    int           `mapstructure:"thumbnailWidth"`
	UpscaleWidth      int           `mapstructure:"upscaleWidth"`
	MaxImages         int           `mapstructure:"maxImages"`
	MaxMediaFiles     int           `mapstructure:"maxMediaFiles"`
	RequestsPerSecond float64       `mapstructure:"requestsPerSecond"`
	Burst             int           `mapstructure:"burst"`
	CacheTTL          time.Duration `mapstructure:"cacheTTL"`
}

type ExtractorWeights struct {
	VerbPhrase  int `mapstructure:"verbPhrase"`
	Preposition int `mapstructure:"preposition"`
	Bold        int `mapstructure:"bold"`
	List        int `mapstructure:"list"`
	KeyValue    int `mapstructure:"keyValue"`
}

type ExtractorConfig struct {
	MaxResults     int              `mapstructure:"maxResults"`
	Weights        ExtractorWeights `mapstructure:"weights"`
	StopWords      []string         `mapstructure:"stopWords"`
	LabelStopWords []string         `mapstructure:"labelStopWords"`
}

type StripsConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	MaxConcurrent int           `mapstructure:"maxConcurrent"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")
	v.AddConfigPath("/usr/local/bin")
	v.AddConfigPath("/usr/local/bin/voyage")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// VOYAGE_WIKI_STAGETIMEOUT overrides wiki.stageTimeout, etc.
	v.SetEnvPrefix("VOYAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Successfully loaded app configs...")
	return config, nil
}

// Default returns the embedded configuration without touching the file
// system or the environment.
func Default() (Config, error) {
	var config Config
	v := viper.New()
	v.SetConfigType("yml")
	if err := v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
		return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return config, nil
}
