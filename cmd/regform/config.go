package main

import (
	"github.com/dmitrymomot/regform/modules/account"
	"github.com/dmitrymomot/regform/modules/registration"
	"github.com/dmitrymomot/regform/pkg/clientip"
	"github.com/dmitrymomot/regform/pkg/httpserver"
	"github.com/dmitrymomot/regform/pkg/pg"
	"github.com/dmitrymomot/regform/pkg/ratelimiter"
	"github.com/dmitrymomot/regform/pkg/redis"
)

type appConfig struct {
	AppName  string `env:"APP_NAME" envDefault:"regform"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"`
}

type settings struct {
	App          appConfig
	HTTP         httpserver.Config
	ClientIP     clientip.Config
	Registration registration.Config
	Account      account.Config
	RateLimit    ratelimiter.Config
	Postgres     pg.Config
	Redis        redis.Config
}
