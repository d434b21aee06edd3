package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/scapegis/scapegis-cli/internal/flagx"
	"github.com/scapegis/scapegis-cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Intervals use timex.Duration so they can be written as "3s" or as
// integer nanoseconds.
type JsonConfig struct {
	APIBaseURL             string         `json:"api_base_url"`
	DBPath                 string         `json:"db_path"`
	OnlineCheckInterval    timex.Duration `json:"online_check_interval"`
	RequestTimeout         timex.Duration `json:"request_timeout"`
	VerifyThrottle         timex.Duration `json:"verify_throttle"`
	MagicLinkRedirectDelay timex.Duration `json:"magic_link_redirect_delay"`
	Env                    string         `json:"env"`
	GoogleClientID         string         `json:"google_client_id"`
	GoogleClientSecret     string         `json:"google_client_secret"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Keys missing from the file leave the current value alone.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.DBPath, jc.DBPath)
	setString(&cfg.Env, jc.Env)
	setString(&cfg.GoogleClientID, jc.GoogleClientID)
	setString(&cfg.GoogleClientSecret, jc.GoogleClientSecret)
	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setDuration(&cfg.VerifyThrottle, jc.VerifyThrottle)
	setDuration(&cfg.MagicLinkRedirectDelay, jc.MagicLinkRedirectDelay)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = time.Duration(v.Duration)
	}
}
