// Package config provides the defaults of the qtsim command line, read from
// QTSIM_* environment variables and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env holds the settings that the command line flags fall back to.
type Env struct {
	State           string `env:"QTSIM_STATE" envDefault:"PLUS"`
	BellType        string `env:"QTSIM_BELL" envDefault:"PSI_MINUS"`
	ChannelDelay    int64  `env:"QTSIM_DELAY" envDefault:"500"`
	StartTime       int64  `env:"QTSIM_START" envDefault:"200"`
	CorrectionDelay int64  `env:"QTSIM_CORRECTION_DELAY" envDefault:"0"`

	Runs    int    `env:"QTSIM_RUNS" envDefault:"1000"`
	Workers int    `env:"QTSIM_WORKERS" envDefault:"0"`
	Seed    uint64 `env:"QTSIM_SEED" envDefault:"1"`

	DBPath      string `env:"QTSIM_DB"`
	MonitorPort int    `env:"QTSIM_PORT" envDefault:"0"`
}

// Load reads the given dotenv files into the process environment and then
// parses Env. Without files, .env in the working directory is tried. Missing
// files are skipped. Variables already set take precedence over the files.
func Load(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	return Parse()
}

// Parse reads Env from the environment variables only.
func Parse() (Env, error) {
	var e Env

	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}

	return e, nil
}
