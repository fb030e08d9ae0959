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
	Pg       Pg            `yaml:"pg"`
	JwtTTL   time.Duration `yaml:"jwt_ttl"`
	LogLevel string        `yaml:"log_level"`
	LogJSON  bool          `yaml:"log_json"`

	// MaxUploadSize caps one multipart request body, bytes.
	MaxUploadSize         int64    `yaml:"max_upload_size"`
	AllowedImageMimeTypes []string `yaml:"allowed_image_mime_types"`

	Media Media `yaml:"media"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Media struct {
	MaxWidth         int     `yaml:"max_width"`
	MaxHeight        int     `yaml:"max_height"`
	WatermarkPath    string  `yaml:"watermark_path"`
	WatermarkOpacity float64 `yaml:"watermark_opacity"`
	WatermarkCorner  string  `yaml:"watermark_corner"`
	WatermarkMarginX int     `yaml:"watermark_margin_x"`
	WatermarkMarginY int     `yaml:"watermark_margin_y"`

	// UploadWorkers bounds concurrent transform+upload pipelines per request.
	UploadWorkers int `yaml:"upload_workers"`

	SweepInterval  time.Duration `yaml:"sweep_interval"`
	SweepSafetyAge time.Duration `yaml:"sweep_safety_age"`
}

type Private struct {
	JwtKey            string     `yaml:"jwt_key"`
	AdminName         string     `yaml:"admin_name"`
	AdminPasswordHash string     `yaml:"admin_password_hash"`
	Cloudinary        Cloudinary `yaml:"cloudinary"`
}

type Cloudinary struct {
	CloudName string `yaml:"cloud_name"`
	ApiKey    string `yaml:"api_key"`
	ApiSecret string `yaml:"api_secret"`
	// BaseURL overrides the API endpoint, used by tests.
	BaseURL string `yaml:"base_url"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return cfg
}

// applyEnvOverrides lets deployment supply secrets outside the config files.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CLOUDINARY_NAME"); v != "" {
		c.Private.Cloudinary.CloudName = v
	}
	if v := os.Getenv("CLOUDINARY_API_KEY"); v != "" {
		c.Private.Cloudinary.ApiKey = v
	}
	if v := os.Getenv("CLOUDINARY_API_SECRET"); v != "" {
		c.Private.Cloudinary.ApiSecret = v
	}
	if v := os.Getenv("PG_PASSWORD"); v != "" {
		c.Public.Pg.Password = v
	}
	if v := os.Getenv("JWT_KEY"); v != "" {
		c.Private.JwtKey = v
	}
}

func (c *Config) applyDefaults() {
	if c.Public.MaxUploadSize == 0 {
		c.Public.MaxUploadSize = 32 << 20
	}
	if len(c.Public.AllowedImageMimeTypes) == 0 {
		c.Public.AllowedImageMimeTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	}
	if c.Public.Media.MaxWidth == 0 {
		c.Public.Media.MaxWidth = 900
	}
	if c.Public.Media.MaxHeight == 0 {
		c.Public.Media.MaxHeight = 600
	}
	if c.Public.Media.UploadWorkers == 0 {
		c.Public.Media.UploadWorkers = 4
	}
}
