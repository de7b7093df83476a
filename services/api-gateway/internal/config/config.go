package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Port           string `mapstructure:"PORT" validate:"required"`
	ProgressSvcUrl string `mapstructure:"PROGRESS_SVC_URL" validate:"required"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	AccessSecret   string `mapstructure:"ACCESS_SECRET" validate:"required,min=16"`
	LogMode        string `mapstructure:"LOG_MODE"`
}

func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", ":8080")
	v.SetDefault("PROGRESS_SVC_URL", "localhost:50054")
	v.SetDefault("LOG_MODE", "dev")

	// ВАЖНО: Явно биндим
	v.BindEnv("ALLOWED_ORIGINS")
	v.BindEnv("REDIS_ADDR")
	v.BindEnv("ACCESS_SECRET")

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	err = validator.New().Struct(config)
	return
}
