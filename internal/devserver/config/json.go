package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/scapegis/scapegis-cli/internal/flagx"
	"github.com/scapegis/scapegis-cli/internal/timex"
)

// JsonConfig is the JSON shape of Config. Durations use timex.Duration so
// both "10m" and integer nanoseconds are accepted.
type JsonConfig struct {
	Addr           string         `json:"addr"`
	BasePath       string         `json:"base_path"`
	JWTSecret      string         `json:"jwt_secret"`
	AccessTTL      timex.Duration `json:"access_ttl"`
	RefreshTTL     timex.Duration `json:"refresh_ttl"`
	CodeTTL        timex.Duration `json:"code_ttl"`
	LinkTTL        timex.Duration `json:"link_ttl"`
	SendInterval   timex.Duration `json:"send_interval"`
	SendBurst      int            `json:"send_burst"`
	AdminDomain    string         `json:"admin_domain"`
	LinkBaseURL    string         `json:"link_base_url"`
	GoogleClientID string         `json:"google_client_id"`
	Env            string         `json:"env"`
}

// parseJson loads the file named by -c or -config into config. Keys absent
// from the file keep their current value. Panics if the file cannot be read
// or parsed.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	for dst, v := range map[*string]string{
		&config.Addr:           c.Addr,
		&config.BasePath:       c.BasePath,
		&config.JWTSecret:      c.JWTSecret,
		&config.AdminDomain:    c.AdminDomain,
		&config.LinkBaseURL:    c.LinkBaseURL,
		&config.GoogleClientID: c.GoogleClientID,
		&config.Env:            c.Env,
	} {
		if v != "" {
			*dst = v
		}
	}

	for dst, v := range map[*time.Duration]timex.Duration{
		&config.AccessTTL:    c.AccessTTL,
		&config.RefreshTTL:   c.RefreshTTL,
		&config.CodeTTL:      c.CodeTTL,
		&config.LinkTTL:      c.LinkTTL,
		&config.SendInterval: c.SendInterval,
	} {
		if v.Duration != 0 {
			*dst = v.Duration
		}
	}

	if c.SendBurst > 0 {
		config.SendBurst = c.SendBurst
	}
}
