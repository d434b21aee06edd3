package config

import (
	"flag"
	"os"
	"time"

	"github.com/scapegis/scapegis-cli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-m string   admin email domain
//	-e string   environment: local, dev or prod
//
// Duration flags are accepted as integers in minutes.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-t", "-r", "-m", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.JWTSecret, "s", config.JWTSecret, "secret key")

	accessTTL := fs.Int("t", int(config.AccessTTL.Minutes()), "access token validity (in minutes)")
	refreshTTL := fs.Int("r", int(config.RefreshTTL.Minutes()), "refresh token validity (in minutes)")

	fs.StringVar(&config.AdminDomain, "m", config.AdminDomain, "admin email domain")
	fs.StringVar(&config.Env, "e", config.Env, "environment (local, dev, prod)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTTL = time.Duration(*accessTTL) * time.Minute
	config.RefreshTTL = time.Duration(*refreshTTL) * time.Minute
}
