package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/PabloGalante/dinacharya/internal/domain"
)

type LLMBackend string

const (
	LLMMock   LLMBackend = "mock"
	LLMVertex LLMBackend = "vertex"
	LLMGemini LLMBackend = "gemini"
)

type Config struct {
	Port string

	LogLevel  string
	LogFormat string // "json" or "console"

	LLM          LLMBackend
	GCPProjectID string
	GCPLocation  string
	ModelName    string
	GeminiAPIKey string

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	MaxBodyBytes   int64

	TuningFile string
	Tuning     domain.Tuning
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getIntEnv(key string, def int64) (int64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}

func getFloatEnv(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", key, v)
	}
	return f, nil
}

// Load reads all env vars, overlays the tuning file if any, and validates.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnv("DINACHARYA_PORT", "8000"),

		LogLevel:  getEnv("DINACHARYA_LOG_LEVEL", "info"),
		LogFormat: getEnv("DINACHARYA_LOG_FORMAT", "json"),

		LLM:          LLMBackend(strings.ToLower(getEnv("DINACHARYA_LLM", string(LLMMock)))),
		GCPProjectID: getEnv("DINACHARYA_GCP_PROJECT", ""),
		GCPLocation:  getEnv("DINACHARYA_GCP_LOCATION", "us-central1"),
		ModelName:    getEnv("DINACHARYA_MODEL_NAME", "gemini-2.5-flash"),
		GeminiAPIKey: getEnv("DINACHARYA_GEMINI_API_KEY", ""),

		CORSOrigins: splitList(getEnv("DINACHARYA_CORS_ORIGINS", "*")),

		TuningFile: getEnv("DINACHARYA_TUNING_FILE", ""),
	}

	var err error
	if cfg.RateLimitRPS, err = getFloatEnv("DINACHARYA_RATE_LIMIT_RPS", 5); err != nil {
		return nil, err
	}
	burst, err := getIntEnv("DINACHARYA_RATE_LIMIT_BURST", 10)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitBurst = int(burst)
	if cfg.MaxBodyBytes, err = getIntEnv("DINACHARYA_MAX_BODY_BYTES", 1<<20); err != nil {
		return nil, err
	}

	// Legacy switch kept for local runs: force the mock even when a backend is set.
	if getBoolEnv("DINACHARYA_USE_MOCK_LLM", false) {
		cfg.LLM = LLMMock
	}

	if err := cfg.LoadTuning(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTuning sets cfg.Tuning from the defaults and cfg.TuningFile.
func (c *Config) LoadTuning() error {
	if c.TuningFile == "" {
		c.Tuning = domain.DefaultTuning()
		return nil
	}
	f, err := os.Open(c.TuningFile)
	if err != nil {
		return fmt.Errorf("open tuning file: %w", err)
	}
	defer f.Close()
	t, err := ParseTuning(f)
	if err != nil {
		return fmt.Errorf("tuning file %s: %w", c.TuningFile, err)
	}
	c.Tuning = t
	return nil
}

// ParseTuning decodes YAML over domain.DefaultTuning. Unknown keys are
// rejected; map sections replace single keys and leave others at default.
func ParseTuning(r io.Reader) (domain.Tuning, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.Tuning{}, err
	}
	t := domain.DefaultTuning()
	if len(bytes.TrimSpace(data)) == 0 {
		return t, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return domain.Tuning{}, fmt.Errorf("yaml decode: %w", err)
	}
	if err := t.Validate(); err != nil {
		return domain.Tuning{}, err
	}
	return t, nil
}

// Validate checks cross-field requirements.
func (c *Config) Validate() error {
	switch c.LLM {
	case LLMMock:
	case LLMVertex:
		if c.GCPProjectID == "" {
			return fmt.Errorf("DINACHARYA_GCP_PROJECT must be set for the vertex backend")
		}
	case LLMGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("DINACHARYA_GEMINI_API_KEY must be set for the gemini backend")
		}
	default:
		return fmt.Errorf("DINACHARYA_LLM: unknown backend %q", c.LLM)
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit values must be >= 0")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("DINACHARYA_MAX_BODY_BYTES must be > 0")
	}
	return c.Tuning.Validate()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
