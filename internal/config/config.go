package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Path string
	}
	App struct {
		Name        string
		FrontendURL string
	}
	Auth struct {
		JWTSecret     string
		Issuer        string
		TokenTTLHours int
	}
	Admin struct {
		Enabled  bool
		Email    string
		Password string
	}
	PasswordReset struct {
		TokenExpiryHours int
		CleanupCron      string
	}
	Mail struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	_ = godotenv.Load() // optional .env

	v := viper.New()
	v.SetEnvPrefix("MYGAMES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("database.path", "data/mygames.db")
	v.SetDefault("app.name", "My Games")
	v.SetDefault("app.frontendurl", "http://localhost:3000")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.issuer", "My Games API")
	v.SetDefault("auth.tokenttlhours", 2)
	v.SetDefault("admin.enabled", false)
	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("passwordreset.tokenexpiryhours", 24)
	v.SetDefault("passwordreset.cleanupcron", "@hourly")
	v.SetDefault("mail.host", "")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.from", "")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}
