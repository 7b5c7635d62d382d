package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime settings for the client.
type Config struct {
	AppName string
	Env     string // DEV (local; default), TEST, QA, PROD
	Debug   bool
	Build   string

	// API is the ERP backend this client talks to.
	API struct {
		BaseURL string
		Timeout time.Duration
	}

	// SessionFile is the durable storage location of the current session record.
	SessionFile string
	// LocationFile keeps the app's current path between invocations.
	LocationFile string

	RollbarToken string

	SendgridApiKey   string
	DefaultFromEmail mail.Address
}

func (c *Config) IsProd() bool {
	return c.Env == "PROD"
}

// NewConfig loads settings from defaults, an optional .env file and the environment.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("appName", "Shule")
	v.SetDefault("debug", true)
	v.SetDefault("apiBaseUrl", "http://localhost:5000")
	v.SetDefault("apiTimeout", 30*time.Second)
	v.SetDefault("sessionFile", defaultStatePath("session.json"))
	v.SetDefault("locationFile", defaultStatePath("location"))
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("defaultFromEmail", "noreply@shule.app")
	v.SetDefault("build", "dev")

	env := os.Getenv("ENV")
	if env == "" {
		env = "DEV"
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.SetEnvPrefix("SHULE")
	v.AutomaticEnv()

	conf := &Config{
		AppName:      v.GetString("appName"),
		Env:          env,
		Debug:        v.GetBool("debug"),
		Build:        v.GetString("build"),
		SessionFile:  v.GetString("sessionFile"),
		LocationFile: v.GetString("locationFile"),
		RollbarToken: v.GetString("rollbarToken"),
	}
	conf.API.BaseURL = v.GetString("apiBaseUrl")
	conf.API.Timeout = v.GetDuration("apiTimeout")
	conf.SendgridApiKey = v.GetString("sendgridApiKey")
	conf.DefaultFromEmail = mail.Address{Name: conf.AppName, Address: v.GetString("defaultFromEmail")}
	return conf
}

// defaultStatePath resolves a state file under the user config dir,
// falling back to the working directory when it cannot be determined.
func defaultStatePath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return name
	}
	return filepath.Join(dir, "shule", name)
}

func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	return wd
}
