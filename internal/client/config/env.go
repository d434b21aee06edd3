package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/scapegis/scapegis-cli/internal/flagx"
)

// parseEnv loads a dotenv file into the process environment and then reads
// the SCAPEGIS_* variables into cfg. The file is the one given with
// -env-file, or ./.env when present. Variables already set in the
// environment win over the file. Unset variables keep the current value.
func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlag(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else {
		_ = godotenv.Load()
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}
