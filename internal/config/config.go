package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type CaptchaConfig struct {
	Length        int    `yaml:"length"`
	TTL           string `yaml:"ttl"`
	SweepInterval string `yaml:"sweep_interval"`
}

type EmailCodeConfig struct {
	Length        int    `yaml:"length"`
	TTL           string `yaml:"ttl"`
	SweepInterval string `yaml:"sweep_interval"`
	Subject       string `yaml:"subject"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
	FromEmail  string `yaml:"from_email"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	Captcha   CaptchaConfig   `yaml:"captcha"`
	EmailCode EmailCodeConfig `yaml:"email_code"`
	Twilio    TwilioConfig    `yaml:"twilio"`
}

type Config struct {
	Port               string
	GinMode            string
	DSN                string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	JWTSecret          string
	JWTIssuer          string
	AccessTTL          time.Duration
	RefreshTTL         time.Duration
	CaptchaLength      int
	CaptchaTTL         time.Duration
	CaptchaSweep       time.Duration
	EmailCodeLength    int
	EmailCodeTTL       time.Duration
	EmailCodeSweep     time.Duration
	EmailCodeSubject   string
	TwilioSID          string
	TwilioToken        string
	TwilioFrom         string
	EmailFrom          string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml, with CONFIG_PATH as an override.
func Load() (*Config, error) {
	path := env("CONFIG_PATH", "config/config.yml")
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}
	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}
	capTTL, err := time.ParseDuration(configFile.Captcha.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid captcha TTL: %w", err)
	}
	capSweep, err := time.ParseDuration(configFile.Captcha.SweepInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid captcha sweep interval: %w", err)
	}
	codeTTL, err := time.ParseDuration(configFile.EmailCode.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid email code TTL: %w", err)
	}
	codeSweep, err := time.ParseDuration(configFile.EmailCode.SweepInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid email code sweep interval: %w", err)
	}

	return &Config{
		Port:             fmt.Sprintf("%d", configFile.App.Port),
		GinMode:          configFile.App.GinMode,
		DSN:              configFile.Database.DSN,
		RedisAddr:        configFile.Redis.Addr,
		RedisPassword:    configFile.Redis.Password,
		RedisDB:          configFile.Redis.DB,
		JWTSecret:        configFile.JWT.Secret,
		JWTIssuer:        configFile.JWT.Issuer,
		AccessTTL:        accTTL,
		RefreshTTL:       refTTL,
		CaptchaLength:    configFile.Captcha.Length,
		CaptchaTTL:       capTTL,
		CaptchaSweep:     capSweep,
		EmailCodeLength:  configFile.EmailCode.Length,
		EmailCodeTTL:     codeTTL,
		EmailCodeSweep:   codeSweep,
		EmailCodeSubject: configFile.EmailCode.Subject,
		TwilioSID:        configFile.Twilio.AccountSID,
		TwilioToken:      configFile.Twilio.AuthToken,
		TwilioFrom:       configFile.Twilio.FromNumber,
		EmailFrom:        configFile.Twilio.FromEmail,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}
	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}
	return &config, nil
}
