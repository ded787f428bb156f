// Package config loads typed configuration from the process environment.
//
// Values are read with github.com/caarlos0/env/v11 using struct tags. A
// `.env` file in the working directory is loaded once through
// github.com/joho/godotenv before the first parse; variables already present
// in the environment win over the file.
//
// Every configuration type is parsed at most once. Subsequent calls to Load
// with the same type return the cached copy, so services can call Load from
// their constructors without coordinating:
//
//	var cfg auth.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Reset drops the cache and is intended for tests that mutate the
// environment between cases.
package config
