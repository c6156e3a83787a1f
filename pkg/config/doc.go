// Package config loads engine configuration from the environment and,
// optionally, from a YAML file.
//
// Load populates any struct annotated with `env` tags (parsed by
// github.com/caarlos0/env) after loading a `.env` file from the working
// directory if one exists (github.com/joho/godotenv). LoadFile reads a YAML
// document into the same struct for deployments that configure the engine
// from a file instead of the environment.
//
// # Usage
//
//	type Config struct {
//		UsersFile string `env:"OTP_USERS_FILE" yaml:"users_file"`
//		MaxOffset int    `env:"OTP_MAX_OFFSET" envDefault:"4" yaml:"max_offset"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// MustLoad panics on failure for configuration the process cannot start
// without.
package config
