package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Pg             Pg       `yaml:"pg"`
	ListenAddr     string   `yaml:"listen_addr"`
	LogLevel       string   `yaml:"log_level"`
	LogJSON        bool     `yaml:"log_json"`
	JwtTTL         Duration `yaml:"jwt_ttl"`
	SecureCookies  bool     `yaml:"secure_cookies"`
	MediaRootPath  string   `yaml:"media_root_path"`
	MaxImageBytes  int64    `yaml:"max_image_bytes"`
	GeocodeBaseURL string   `yaml:"geocode_base_url"`
	StaticMapURL   string   `yaml:"static_map_url"`
	GeoTimeout     Duration `yaml:"geo_timeout"` // per external request, never retried
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Duration lets yaml carry durations in the "24h" / "5s" form.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return time.Duration(c.Public.JwtTTL)
}

func (c *Config) GeoTimeout() time.Duration {
	return time.Duration(c.Public.GeoTimeout)
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder,
// panicking on any problem. Missing optional fields fall back to defaults.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Public.ListenAddr == "" {
		c.Public.ListenAddr = ":8080"
	}
	if c.Public.LogLevel == "" {
		c.Public.LogLevel = "info"
	}
	if c.Public.JwtTTL == 0 {
		c.Public.JwtTTL = Duration(24 * time.Hour)
	}
	if c.Public.MediaRootPath == "" {
		c.Public.MediaRootPath = "media"
	}
	if c.Public.MaxImageBytes == 0 {
		c.Public.MaxImageBytes = 5 << 20
	}
	if c.Public.GeoTimeout == 0 {
		c.Public.GeoTimeout = Duration(5 * time.Second)
	}
}
