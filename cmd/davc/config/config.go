package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	envPrefix = "DAVC"
)

var validate = validator.New()

type Config struct {
	BaseURI   string `mapstructure:"base_uri" validate:"required,url"`
	User      string `mapstructure:"user"`
	Password  string `mapstructure:"password"`
	Timeout   int64  `mapstructure:"timeout" validate:"gte=0"`
	UserAgent string `mapstructure:"user_agent"`
	Thread    int    `mapstructure:"thread" validate:"gte=1,lte=64"`
	Raw       bool   `mapstructure:"raw"`
	LogLevel  string `mapstructure:"log_level" validate:"oneof=debug info warn panic fatal"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_uri", "")
	v.SetDefault("user", "")
	v.SetDefault("password", "")
	v.SetDefault("timeout", 600)
	v.SetDefault("user_agent", "davc/1.0")
	v.SetDefault("thread", 4)
	v.SetDefault("raw", true)
	v.SetDefault("log_level", "info")
}

// Load reads the json config at f, or davc_config.json from the default
// locations when f is empty. DAVC_* env vars override the file, e.g.
// DAVC_BASE_URI or DAVC_LOG_LEVEL.
func Load(f string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if len(f) > 0 {
		v.SetConfigFile(f)
	} else {
		v.SetConfigName("davc_config")
		v.SetConfigType("json")
		v.AddConfigPath("/etc/davc")
		v.AddConfigPath("$HOME/.config/davc")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, fmt.Errorf("read config failed, err:%w", err)
		}
	}
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("decode config failed, err:%w", err)
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	if err := validate.Struct(c); err != nil {
		return nil, formatValidationError(err)
	}
	return c, nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		return fmt.Errorf("invalid config, field:%s, tag:%s, value:%v", e.Namespace(), e.Tag(), e.Value())
	}
	return fmt.Errorf("invalid config, err:%w", err)
}
