// Package config loads typed configuration from environment variables.
//
// It combines github.com/joho/godotenv for .env files with
// github.com/caarlos0/env/v11 for struct tags. Each configuration type is
// parsed once and cached; Reload and Reset exist for tests and hot paths
// that need a fresh read.
//
//	if err := config.LoadEnv(".env", ".env.local"); err != nil {
//	    return err
//	}
//	var cfg session.Config
//	config.MustLoad(&cfg)
//
// Variables already present in the process environment take precedence over
// file values, and later files override earlier ones.
//
// # Usage
//
// Describe the configuration with env tags. Fields marked notEmpty reject
// variables that are set to an empty string:
//
//	type ServerConfig struct {
//	    Addr    string        `env:"HTTP_ADDR" envDefault:":8080"`
//	    Secret  string        `env:"SESSION_SECRET,required,notEmpty"`
//	    Timeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"5s"`
//	}
//
//	var srv ServerConfig
//	if err := config.Load(&srv); err != nil {
//	    log.Fatal(err)
//	}
//
// A second Load of the same type is served from the cache, even if the
// environment changed in between. Use Reload to parse again.
//
// # Error Handling
//
//   - ErrLoadingEnvFile - a named .env file is missing or unreadable
//   - ErrParsingConfig  - env.Parse rejected the environment
//   - ErrNilPointer     - Load was given a nil pointer
//
// # Testing
//
// Reset clears the cache. Tests that use t.Setenv should call it first so a
// value cached by an earlier test does not leak in.
package config
