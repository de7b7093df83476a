package config

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	DBHost     string `mapstructure:"DB_HOST" validate:"required"`
	DBPort     string `mapstructure:"DB_PORT" validate:"required"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME" validate:"required"`
	GRPCPort   string `mapstructure:"GRPC_PORT" validate:"required"`
	RedisAddr  string `mapstructure:"REDIS_ADDR"`
	LogMode    string `mapstructure:"LOG_MODE"`

	// Цели по часам для compliance
	TechTarget    int `mapstructure:"COMPLIANCE_TECH_TARGET" validate:"gte=0"`
	NonTechTarget int `mapstructure:"COMPLIANCE_NON_TECH_TARGET" validate:"gte=0"`

	ComplianceCacheTTL time.Duration `mapstructure:"COMPLIANCE_CACHE_TTL" validate:"gte=0"`
	EnrollmentDueDays  int           `mapstructure:"ENROLLMENT_DUE_DAYS" validate:"gte=0"`
}

func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "learnplatform")
	v.SetDefault("GRPC_PORT", ":50054")
	v.SetDefault("LOG_MODE", "dev")
	v.SetDefault("COMPLIANCE_TECH_TARGET", 50)
	v.SetDefault("COMPLIANCE_NON_TECH_TARGET", 15)
	v.SetDefault("COMPLIANCE_CACHE_TTL", 10*time.Minute)
	v.SetDefault("ENROLLMENT_DUE_DAYS", 30)

	// Явно биндим, иначе Unmarshal не увидит переменные окружения без app.env
	v.BindEnv("DB_USER")
	v.BindEnv("DB_PASSWORD")
	v.BindEnv("REDIS_ADDR")

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
