package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/scapegis/scapegis-cli/internal/flagx"
)

// parseEnv loads the dotenv file given with -env-file (or ./.env when it
// exists) and reads the DEVSERVER_* variables into config.
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlag(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else {
		_ = godotenv.Load()
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		panic(err)
	}
}
