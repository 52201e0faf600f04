package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port            string
	IndexFile       string
	MaxUploadMemory int64
	LogDevelopment  bool

	// credentials.json next to the binary wins over everything else
	LocalCredentialsFile string
	// GOOGLE_CREDENTIALS payload is written here when no local file exists
	InlineCredentials     string
	InlineCredentialsPath string
	// GOOGLE_APPLICATION_CREDENTIALS
	CredentialsFile string
}

// Load reads the environment, with an optional .env file layered underneath.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "5000")
	v.SetDefault("INDEX_FILE", filepath.Join("web", "index.html"))
	v.SetDefault("MAX_UPLOAD_MEMORY", 32<<20)
	v.SetDefault("LOG_DEVELOPMENT", false)
	v.SetDefault("LOCAL_CREDENTIALS_FILE", "credentials.json")
	v.SetDefault("INLINE_CREDENTIALS_PATH", filepath.Join(os.TempDir(), "credentials.json"))

	return Config{
		Port:                  v.GetString("PORT"),
		IndexFile:             v.GetString("INDEX_FILE"),
		MaxUploadMemory:       v.GetInt64("MAX_UPLOAD_MEMORY"),
		LogDevelopment:        v.GetBool("LOG_DEVELOPMENT"),
		LocalCredentialsFile:  v.GetString("LOCAL_CREDENTIALS_FILE"),
		InlineCredentials:     v.GetString("GOOGLE_CREDENTIALS"),
		InlineCredentialsPath: v.GetString("INLINE_CREDENTIALS_PATH"),
		CredentialsFile:       v.GetString("GOOGLE_APPLICATION_CREDENTIALS"),
	}
}

func (c Config) Addr() string {
	return "0.0.0.0:" + c.Port
}
