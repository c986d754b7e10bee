package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/khanghh/cas-signup/internal/signup"
	"github.com/khanghh/cas-signup/params"
	"github.com/spf13/viper"
)

const (
	DefaultAppName      = "CAS Sign Up"
	DefaultListenAddr   = ":3000"
	DefaultCookieName   = "signup_session"
	DefaultCookieMaxAge = 24 * time.Hour
	DefaultAuthBaseURL  = "http://localhost:8080"
	EnvPrefix           = "SIGNUP"
)

type SessionConfig struct {
	SessionMaxAge  time.Duration `yaml:"sessionMaxAge"`
	CookieName     string        `yaml:"cookieName"`
	CookieHttpOnly bool          `yaml:"cookieHttpOnly"`
	CookieSecure   bool          `yaml:"cookieSecure"`
}

type AuthAPIConfig struct {
	BaseURL string        `yaml:"baseURL"`
	Timeout time.Duration `yaml:"timeout"`
}

type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	Debug        bool            `yaml:"debug"`
	AppName      string          `yaml:"appName"`
	ListenAddr   string          `yaml:"listenAddr"`
	TemplateDir  string          `yaml:"templateDir"`
	RedisURL     string          `yaml:"redisURL"`
	FormStateTTL time.Duration   `yaml:"formStateTTL"`
	Session      SessionConfig   `yaml:"session"`
	AuthAPI      AuthAPIConfig   `yaml:"authAPI"`
	Tracing      TracingConfig   `yaml:"tracing"`
	Messages     signup.Messages `yaml:"messages"`
}

func (c *Config) Sanitize() error {
	if c.AppName == "" {
		c.AppName = DefaultAppName
	}
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.FormStateTTL == 0 {
		c.FormStateTTL = params.DefaultFormStateTTL
	}
	if c.Session.SessionMaxAge == 0 {
		c.Session.SessionMaxAge = DefaultCookieMaxAge
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = DefaultCookieName
	}
	if c.AuthAPI.BaseURL == "" {
		c.AuthAPI.BaseURL = DefaultAuthBaseURL
	}
	if c.AuthAPI.Timeout == 0 {
		c.AuthAPI.Timeout = params.DefaultAuthTimeout
	}
	c.Messages = c.Messages.Merge(signup.DefaultMessages)
	return nil
}

// LoadConfig reads the YAML config file. Values from a .env file or the
// environment (SIGNUP_LISTENADDR, SIGNUP_AUTHAPI_BASEURL, ...) take precedence.
func LoadConfig(filename string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(filename)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"debug", "listenAddr", "redisURL", "authAPI.baseURL", "authAPI.timeout"} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Sanitize(); err != nil {
		return nil, err
	}
	return &config, nil
}
