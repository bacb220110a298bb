package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar points at an optional YAML file layered under the environment.
const ConfigPathEnvVar = "CONFIG_PATH"

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
	Model    ModelConfig    `koanf:"model"`
	Corpus   CorpusConfig   `koanf:"corpus"`
	Database DatabaseConfig `koanf:"database"`
	Session  SessionConfig  `koanf:"session"`
	AWS      AWSConfig      `koanf:"aws"`
}

type ServerConfig struct {
	Host           string   `koanf:"host"`
	Port           int      `koanf:"port" validate:"min=1,max=65535"`
	Mode           string   `koanf:"mode" validate:"oneof=debug release test"`
	CORSOrigins    []string `koanf:"cors_origins"`
	MaxUploadBytes int64    `koanf:"max_upload_bytes" validate:"min=1"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

type ModelConfig struct {
	Backend string        `koanf:"backend" validate:"oneof=tfserving rekognition"`
	URL     string        `koanf:"url"`
	Name    string        `koanf:"name"`
	Timeout time.Duration `koanf:"timeout"`
	// Labels is the comma separated class list; index i of the model output is label i.
	Labels              string  `koanf:"labels" validate:"required"`
	ProjectArn          string  `koanf:"project_arn"`
	ProjectVersionArn   string  `koanf:"project_version_arn"`
	ConfidenceThreshold float64 `koanf:"confidence_threshold" validate:"gte=0,lte=100"`
	InputHeight         int     `koanf:"input_height" validate:"min=1"`
	InputWidth          int     `koanf:"input_width" validate:"min=1"`
}

type CorpusConfig struct {
	Driver     string `koanf:"driver" validate:"oneof=file sqlite postgres s3"`
	Dir        string `koanf:"dir"`
	SQLitePath string `koanf:"sqlite_path"`
	S3Bucket   string `koanf:"s3_bucket"`
	S3Prefix   string `koanf:"s3_prefix"`
}

type DatabaseConfig struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode"`
}

type SessionConfig struct {
	// Secret signs diet session tokens. Empty means a random per-process secret.
	Secret string        `koanf:"secret"`
	TTL    time.Duration `koanf:"ttl" validate:"gt=0"`
}

type AWSConfig struct {
	Region   string `koanf:"region"`
	S3Region string `koanf:"s3_region"`
}

// DefaultLabels is the class order the reference model was trained with.
const DefaultLabels = "Bawang Bombai,Daging Ayam,Daging Sapi,Daun Bawang,Kubis Merah,Telur,Terong,Timun,Tomat,Wortel"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           3000,
			Mode:           "release",
			CORSOrigins:    []string{"*"},
			MaxUploadBytes: 10 << 20,
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Model: ModelConfig{
			Backend:             "tfserving",
			URL:                 "http://localhost:8501",
			Name:                "ingredients",
			Timeout:             30 * time.Second,
			Labels:              DefaultLabels,
			ConfidenceThreshold: 99.0,
			InputHeight:         150,
			InputWidth:          150,
		},
		Corpus: CorpusConfig{
			Driver:     "file",
			Dir:        "data",
			SQLitePath: "data/corpus.db",
			S3Prefix:   "corpus/",
		},
		Database: DatabaseConfig{Host: "localhost", Port: "5432", SSLMode: "disable"},
		Session:  SessionConfig{TTL: 24 * time.Hour},
	}
}

var envMappings = map[string]string{
	"host":                      "server.host",
	"port":                      "server.port",
	"gin_mode":                  "server.mode",
	"cors_origins":              "server.cors_origins",
	"max_upload_bytes":          "server.max_upload_bytes",
	"log_level":                 "logging.level",
	"log_format":                "logging.format",
	"model_backend":             "model.backend",
	"model_url":                 "model.url",
	"model_name":                "model.name",
	"model_timeout":             "model.timeout",
	"model_labels":              "model.labels",
	"model_project_arn":         "model.project_arn",
	"model_project_version_arn": "model.project_version_arn",
	"confidence_threshold":      "model.confidence_threshold",
	"corpus_driver":             "corpus.driver",
	"corpus_dir":                "corpus.dir",
	"corpus_sqlite_path":        "corpus.sqlite_path",
	"s3_bucket":                 "corpus.s3_bucket",
	"corpus_s3_prefix":          "corpus.s3_prefix",
	"db_host":                   "database.host",
	"db_port":                   "database.port",
	"db_user":                   "database.user",
	"db_password":               "database.password",
	"db_name":                   "database.name",
	"db_sslmode":                "database.sslmode",
	"session_secret":            "session.secret",
	"session_ttl":               "session.ttl",
	"aws_region":                "aws.region",
	"s3_region":                 "aws.s3_region",
}

// envTransform maps known environment variables onto config paths and drops the rest.
func envTransform(key string) string {
	return envMappings[strings.ToLower(key)]
}

// sliceConfigPaths arrive from the environment as comma separated strings.
var sliceConfigPaths = []string{"server.cors_origins"}

func splitSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		str, ok := k.Get(path).(string)
		if !ok || str == "" {
			continue
		}
		var parts []string
		for _, p := range strings.Split(str, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// Load layers defaults, an optional YAML file and the environment (after .env), then validates.
func Load() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	if err := splitSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	switch c.Model.Backend {
	case "tfserving":
		if c.Model.URL == "" || c.Model.Name == "" {
			return errors.New("MODEL_URL and MODEL_NAME are required for the tfserving backend")
		}
	case "rekognition":
		if c.Model.ProjectVersionArn == "" {
			return errors.New("MODEL_PROJECT_VERSION_ARN is required for the rekognition backend")
		}
	}
	if c.Corpus.Driver == "s3" && c.Corpus.S3Bucket == "" {
		return errors.New("S3_BUCKET is required for the s3 corpus driver")
	}
	if len(c.Model.LabelList()) == 0 {
		return errors.New("MODEL_LABELS must name at least one class")
	}
	return nil
}

// LabelList splits Labels on commas, trimming blanks.
func (m ModelConfig) LabelList() []string {
	var out []string
	for _, l := range strings.Split(m.Labels, ",") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// Addr is the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// S3RegionOrDefault falls back to AWS_REGION like the upload client always did.
func (a AWSConfig) S3RegionOrDefault() string {
	if a.S3Region != "" {
		return a.S3Region
	}
	return a.Region
}
