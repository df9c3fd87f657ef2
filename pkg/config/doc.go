// Package config loads typed configuration structs from environment
// variables.
//
// A .env file in the working directory is read once, on first use, with
// github.com/joho/godotenv; variables already present in the environment win.
// Structs are parsed with github.com/caarlos0/env/v11 tags and cached per
// type, so every package can call Load for its own config struct:
//
//	type Config struct {
//		SuccessURL string `env:"REGISTRATION_SUCCESS_URL" envDefault:"/register/success"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
package config
