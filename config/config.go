package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database   DatabaseConfigs
	ApiServer  ServerConfigs
	Auth       AuthConfigs
	Session    SessionConfigs
	Redis      RedisConfigs
	Invest     InvestConfigs
	Tournament TournamentConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string

	// LogLevel is one of silent, error, warn, info.
	LogLevel string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string

	DefaultLimit int
	MaxLimit     int

	AllowCORS []string
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type SessionConfigs struct {
	Secret string
	Name   string
}

type RedisConfigs struct {
	Addr string

	// StatusTTL bounds how long a presence record lives without a refresh
	// before the user is reported as offline.
	StatusTTL time.Duration
}

type InvestConfigs struct {
	// Return rates are whole percents assigned once at creation.
	MinReturnRate int
	MaxReturnRate int
}

type TournamentConfigs struct {
	MaxPlayersLimit int
}
