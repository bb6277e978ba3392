package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/carvingsite/internal/flagx"
)

// parseFlags overlays the short command-line flags:
//
//	-a string   HTTP listen address (":8080")
//	-n string   database driver (postgres|sqlite)
//	-d string   database DSN
//	-s string   JWT HMAC secret
//	-t int      token validity, minutes
//	-u string   admin username
//	-i string   local images root
//	-l string   log level
//
// Only these flags are considered; -c and -env-file are handled earlier.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-n", "-d", "-s", "-t", "-u", "-i", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to listen on")
	fs.StringVar(&config.DatabaseDriver, "n", config.DatabaseDriver, "database driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "JWT secret key")
	tokenMinutes := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	fs.StringVar(&config.AdminUsername, "u", config.AdminUsername, "admin username")
	fs.StringVar(&config.ImagesRoot, "i", config.ImagesRoot, "images root directory")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if isSet(fs, "t") {
		config.TokenValidityDuration = time.Duration(*tokenMinutes) * time.Minute
	}
	return nil
}

func isSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
