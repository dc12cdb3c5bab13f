package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Name is used for the config file, the env prefix and the service name.
const Name = "visitor-cli"

// Settings are the recognized options, each with a hard-coded fallback.
type Settings struct {
	APIURL        string
	CompanyName   string
	CompanyLogo   string
	Timeout       time.Duration
	Listen        string
	SessionSecret string
	PageSize      int
}

// SetDefaults registers fallbacks on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api_url", "http://localhost:8000")
	v.SetDefault("company_name", "Visitor Management")
	v.SetDefault("company_logo", "/static/logo.svg")
	v.SetDefault("timeout", "15s")
	v.SetDefault("listen", ":8080")
	v.SetDefault("session_secret", "")
	v.SetDefault("page_size", 10)
}

// InitConfig reads the config file, a .env file and VISITOR_* environment variables.
func InitConfig(cfgFile string) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	v := viper.GetViper()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".visitor-cli" (without extension).
		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName("." + Name)
	}

	SetDefaults(v)
	v.SetEnvPrefix("VISITOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile != "" {
			fmt.Printf("Warning: could not read config %s: %v\n", cfgFile, err)
		}
	}
}

// Load returns the typed settings held by v.
func Load(v *viper.Viper) Settings {
	s := Settings{
		APIURL:        strings.TrimRight(v.GetString("api_url"), "/"),
		CompanyName:   v.GetString("company_name"),
		CompanyLogo:   v.GetString("company_logo"),
		Timeout:       v.GetDuration("timeout"),
		Listen:        v.GetString("listen"),
		SessionSecret: v.GetString("session_secret"),
		PageSize:      v.GetInt("page_size"),
	}
	if s.Timeout <= 0 {
		s.Timeout = 15 * time.Second
	}
	if s.PageSize <= 0 {
		s.PageSize = 10
	}
	return s
}

// Persist sets values on v and writes them to v's config file, creating
// .visitor-cli.yaml in the home directory when no file was loaded. The file
// keeps its existing keys; settings that only came from flags, .env or the
// environment are never written.
func Persist(v *viper.Viper, values map[string]any) error {
	path := v.ConfigFileUsed()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("locate home directory: %w", err)
		}
		path = filepath.Join(home, "."+Name+".yaml")
	}

	file := viper.New()
	file.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		file.SetConfigType("yaml")
	}
	if err := file.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read config: %w", err)
	}

	for key, value := range values {
		file.Set(key, value)
		v.Set(key, value)
	}
	if err := file.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
