package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Game     GameConfig     `mapstructure:"game"`
}

type ServerConfig struct {
	HTTPAddress string `mapstructure:"http_address"`
	RPCAddress  string `mapstructure:"rpc_address"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GameConfig holds the gameplay tuning knobs. Zero values are replaced by the
// defaults registered in LoadConfig, so an empty game section is valid.
type GameConfig struct {
	StreetsFile      string        `mapstructure:"streets_file"`
	SessionTTL       time.Duration `mapstructure:"session_ttl"`
	StartTimeout     time.Duration `mapstructure:"start_timeout"`
	AutoAdvanceDelay time.Duration `mapstructure:"auto_advance_delay"`
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("game.streets_file", "streets.json")
	viper.SetDefault("game.session_ttl", time.Hour)
	viper.SetDefault("game.start_timeout", 3*time.Second)
	viper.SetDefault("game.auto_advance_delay", time.Second)

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
