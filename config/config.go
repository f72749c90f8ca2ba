// Package config loads service configuration from the environment,
// with an optional YAML file overlay.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Upload    UploadConfig    `yaml:"upload"`
	Extract   ExtractConfig   `yaml:"extract"`
	OCR       OCRConfig       `yaml:"ocr"`
	Chunk     ChunkConfig     `yaml:"chunk"`
	Summarize SummarizeConfig `yaml:"summarize"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"8080" yaml:"port"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," yaml:"corsOrigins"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"120s" yaml:"requestTimeout"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s" yaml:"shutdownTimeout"`
}

type UploadConfig struct {
	MaxBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"10485760" yaml:"maxBytes"`
}

type ExtractConfig struct {
	// Backend selects the text extraction engine: pdftext or pdfcpu.
	Backend      string `env:"EXTRACTOR_BACKEND" envDefault:"pdftext" yaml:"backend"`
	PageLimit    int    `env:"PAGE_LIMIT" envDefault:"50" yaml:"pageLimit"`
	MinTextChars int    `env:"MIN_TEXT_CHARS" envDefault:"10" yaml:"minTextChars"`
	PageWorkers  int    `env:"PAGE_WORKERS" envDefault:"4" yaml:"pageWorkers"`
}

type OCRConfig struct {
	// Backend selects the recognizer used when a scanned document yields
	// no extractable text: tesseract, textract, or off.
	Backend   string    `env:"OCR_BACKEND" envDefault:"off" yaml:"backend"`
	Languages []string  `env:"OCR_LANGUAGES" envDefault:"eng" envSeparator:"," yaml:"languages"`
	DPI       int       `env:"OCR_DPI" envDefault:"150" yaml:"dpi"`
	AWS       AWSConfig `yaml:"aws"`
}

type AWSConfig struct {
	Region          string `env:"AWS_REGION" envDefault:"us-east-1" yaml:"region"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" yaml:"accessKeyId"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" yaml:"secretAccessKey"`
}

type ChunkConfig struct {
	Size int `env:"CHUNK_SIZE" envDefault:"30000" yaml:"size"`
}

type SummarizeConfig struct {
	Provider       string        `env:"LLM_PROVIDER" envDefault:"openai" yaml:"provider"`
	WordLimit      int           `env:"WORD_LIMIT" envDefault:"2000" yaml:"wordLimit"`
	Concurrency    int           `env:"SUMMARIZE_CONCURRENCY" envDefault:"1" yaml:"concurrency"`
	MaxAttempts    int           `env:"RETRY_MAX_ATTEMPTS" envDefault:"3" yaml:"maxAttempts"`
	RetryBaseDelay time.Duration `env:"RETRY_BASE_DELAY" envDefault:"2s" yaml:"retryBaseDelay"`
	RetryMaxDelay  time.Duration `env:"RETRY_MAX_DELAY" envDefault:"5s" yaml:"retryMaxDelay"`

	OpenAI    OpenAIConfig    `envPrefix:"OPENAI_" yaml:"openai"`
	Anthropic AnthropicConfig `envPrefix:"ANTHROPIC_" yaml:"anthropic"`
	Gemini    GeminiConfig    `envPrefix:"GEMINI_" yaml:"gemini"`
	Ollama    OllamaConfig    `envPrefix:"OLLAMA_" yaml:"ollama"`
}

type OpenAIConfig struct {
	APIKey string `env:"API_KEY" yaml:"apiKey"`
	Model  string `env:"MODEL" envDefault:"gpt-4o-mini" yaml:"model"`
}

type AnthropicConfig struct {
	APIKey string `env:"API_KEY" yaml:"apiKey"`
	Model  string `env:"MODEL" envDefault:"claude-sonnet-4-20250514" yaml:"model"`
}

type GeminiConfig struct {
	APIKey string `env:"API_KEY" yaml:"apiKey"`
	Model  string `env:"MODEL" envDefault:"gemini-2.0-flash" yaml:"model"`
}

type OllamaConfig struct {
	Endpoint string `env:"ENDPOINT" envDefault:"http://localhost:11434" yaml:"endpoint"`
	Model    string `env:"MODEL" envDefault:"llama3.2" yaml:"model"`
}

type LogConfig struct {
	Level    string `env:"LOG_LEVEL" envDefault:"info" yaml:"level"`
	Encoding string `env:"LOG_ENCODING" envDefault:"json" yaml:"encoding"`
	File     string `env:"LOG_FILE" yaml:"file"`
}

// Load reads .env if present, parses the environment, and applies the
// YAML overlay named by CONFIG_FILE. File values take precedence over
// environment values for the keys they set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enum fields and numeric bounds.
func (c *Config) Validate() error {
	switch c.Extract.Backend {
	case "pdftext", "pdfcpu":
	default:
		return fmt.Errorf("unknown extractor backend %q", c.Extract.Backend)
	}

	switch c.OCR.Backend {
	case "tesseract", "textract", "off":
	default:
		return fmt.Errorf("unknown ocr backend %q", c.OCR.Backend)
	}

	switch c.Summarize.Provider {
	case "openai", "anthropic", "gemini", "ollama":
	default:
		return fmt.Errorf("unknown llm provider %q", c.Summarize.Provider)
	}

	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload max bytes must be positive, got %d", c.Upload.MaxBytes)
	}
	if c.Chunk.Size <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.Chunk.Size)
	}
	if c.Summarize.MaxAttempts < 1 {
		return fmt.Errorf("retry max attempts must be at least 1, got %d", c.Summarize.MaxAttempts)
	}
	if c.Summarize.WordLimit <= 0 {
		return fmt.Errorf("word limit must be positive, got %d", c.Summarize.WordLimit)
	}
	return nil
}

// Address returns the listen address for the HTTP server.
func (c *Config) Address() string {
	return ":" + c.Server.Port
}
