package config

import (
	"flag"

	"github.com/dmitrijs2005/tokenvote/internal/flagx"
)

// parseFlags overlays Config with command-line flags. Only the flags defined
// here are picked out of args, so -c/-config and test flags pass through.
//
// Supported flags:
//
//	-a string            gRPC bind address (e.g. ":50051")
//	-driver string       database driver: sqlite or pgx
//	-d string            database DSN (file path for sqlite)
//	-busy duration       exclusive scope busy timeout
//	-admin string        admin shared secret
//	-s string            session signing secret
//	-rate-max int        requests allowed per window
//	-rate-window dur     rate limit window
//	-length int          token length
//	-batch int           default token batch size
//	-priv string         Ed25519 private key path
//	-pub string          Ed25519 public key path
//	-u, -p string        S3 user / password
//	-b, -g, -e string    S3 bucket / region / base endpoint
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "driver", config.DatabaseDriver, "database driver (sqlite|pgx)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.DurationVar(&config.BusyTimeout, "busy", config.BusyTimeout, "busy timeout for the vote transaction")

	fs.StringVar(&config.AdminSecret, "admin", config.AdminSecret, "admin secret")
	fs.StringVar(&config.SessionSecret, "s", config.SessionSecret, "session secret key")

	fs.IntVar(&config.RateLimit.MaxRequests, "rate-max", config.RateLimit.MaxRequests, "max requests per window")
	fs.DurationVar(&config.RateLimit.Window, "rate-window", config.RateLimit.Window, "rate limit window")

	fs.IntVar(&config.TokenLength, "length", config.TokenLength, "token length")
	fs.IntVar(&config.TokenBatchSize, "batch", config.TokenBatchSize, "default token batch size")

	fs.StringVar(&config.PrivateKeyPath, "priv", config.PrivateKeyPath, "private key path")
	fs.StringVar(&config.PublicKeyPath, "pub", config.PublicKeyPath, "public key path")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket for export archive")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	return flagx.ParseKnown(fs, args)
}
