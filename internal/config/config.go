package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultListenAddr = "0.0.0.0:3000"
	DefaultUploadDir  = "uploads"
	DefaultMetaDSN    = "memory://"
	DefaultNaming     = "key"
)

type Config struct {
	ListenAddr     string       `yaml:"listen_addr" json:"listen_addr"`
	UploadDir      string       `yaml:"upload_dir" json:"upload_dir"`
	MetaDSN        string       `yaml:"meta_dsn" json:"-"`
	Naming         string       `yaml:"naming" json:"naming"`
	MaxUploadBytes int64        `yaml:"max_upload_bytes" json:"max_upload_bytes"`
	GC             GCConfig     `yaml:"gc" json:"gc"`
	Tamper         TamperConfig `yaml:"tamper" json:"tamper"`
}

// GCConfig: фоновая очистка каталога загрузок. Нулевые значения выключают GC.
type GCConfig struct {
	TTLHours           int  `yaml:"ttl_hours" json:"ttl_hours"`
	IntervalMin        int  `yaml:"interval_min" json:"interval_min"`
	RemoveUnregistered bool `yaml:"remove_unregistered" json:"remove_unregistered"`
}

// TamperConfig включает имитацию порчи загружаемых файлов. Только для тестовых стендов.
type TamperConfig struct {
	Probability float64 `yaml:"probability" json:"probability"`
	Payload     string  `yaml:"payload" json:"payload"`
}

func (g GCConfig) TTL() time.Duration      { return time.Duration(g.TTLHours) * time.Hour }
func (g GCConfig) Interval() time.Duration { return time.Duration(g.IntervalMin) * time.Minute }

// Default возвращает конфигурацию, с которой сервис стартует без файла.
func Default() *Config {
	return &Config{
		ListenAddr: DefaultListenAddr,
		UploadDir:  DefaultUploadDir,
		MetaDSN:    DefaultMetaDSN,
		Naming:     DefaultNaming,
	}
}

// Load читает YAML-конфигурацию из CONFIG_PATH, применяет ENV-переопределения и возвращает актуальную структуру.
// Отсутствующий файл не ошибка, используются значения по умолчанию.
func Load() (*Config, error) {
	return LoadFile(getenv("CONFIG_PATH", "./config.yaml"))
}

// LoadFile делает то же, что Load, но с явным путём до файла.
func LoadFile(path string) (*Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err = yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	if err = c.applyEnv(); err != nil {
		return nil, err
	}
	if err = c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ENV override
func (c *Config) applyEnv() error {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		c.UploadDir = v
	}
	if v := os.Getenv("META_DSN"); v != "" {
		c.MetaDSN = v
	}
	if v := os.Getenv("NAMING"); v != "" {
		c.Naming = v
	}

	var err error
	if c.MaxUploadBytes, err = envInt64("MAX_UPLOAD_BYTES", c.MaxUploadBytes); err != nil {
		return err
	}
	ttl, err := envInt64("GC_TTL_HOURS", int64(c.GC.TTLHours))
	if err != nil {
		return err
	}
	every, err := envInt64("GC_INTERVAL_MIN", int64(c.GC.IntervalMin))
	if err != nil {
		return err
	}
	c.GC.TTLHours, c.GC.IntervalMin = int(ttl), int(every)

	return nil
}

// Validate проверяет согласованность значений.
func (c *Config) Validate() error {
	c.Naming = strings.ToLower(strings.TrimSpace(c.Naming))
	if c.Naming != "key" && c.Naming != "name" {
		return fmt.Errorf("naming must be \"key\" or \"name\", got %q", c.Naming)
	}
	if strings.TrimSpace(c.UploadDir) == "" {
		return fmt.Errorf("upload_dir is not configured")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("max_upload_bytes must be >= 0")
	}
	if c.Tamper.Probability < 0 || c.Tamper.Probability > 1 {
		return fmt.Errorf("tamper.probability must be within [0, 1]")
	}
	return nil
}

func envInt64(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}
