// Package config resolves the bridge's runtime configuration from CLI flags
// and environment variables, with flags always taking priority.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every tunable the bridge needs to start.
type Config struct {
	HTTPBind      string
	HTTPPort      int
	PollTimeout   time.Duration
	JobTimeout    time.Duration
	ClientID      string
	LivenessWindow time.Duration
	Quiet         bool
	LogLevel      string
	Metrics       bool
	SweepInterval time.Duration
	EnvFile       string
}

// Defaults mirror spec.md §6's published defaults exactly.
const (
	DefaultHTTPBind       = ""
	DefaultHTTPPort       = 28650
	DefaultPollTimeout    = 5 * time.Second
	DefaultJobTimeout     = 30 * time.Second
	DefaultClientID       = "studio"
	DefaultLivenessWindow = 15 * time.Second
	DefaultLogLevel       = "info"
	DefaultSweepInterval  = time.Minute
	DefaultEnvFile        = ".env"
)

// Parse builds a Config from CLI args, layering environment variables
// underneath explicit flags. An .env file (if present) is loaded first so
// its values behave exactly like variables set in the process environment.
func Parse(args []string) (*Config, error) {
	fs := flag.NewFlagSet("studio-bridge", flag.ContinueOnError)

	envFile := fs.String("env-file", DefaultEnvFile, "path to an optional .env file loaded before flag parsing")

	// Pre-scan for --env-file so it can be loaded before flags that might
	// reference env-derived defaults are evaluated.
	prelim := flag.NewFlagSet("studio-bridge-pre", flag.ContinueOnError)
	prelim.SetOutput(new(discardWriter))
	prelimEnvFile := prelim.String("env-file", DefaultEnvFile, "")
	// Hand prelim only the --env-file arguments: a FlagSet stops at the first
	// flag it does not know, which would hide an --env-file given later.
	var envArgs []string
	for i, a := range args {
		name, _, hasValue := strings.Cut(a, "=")
		if name != "-env-file" && name != "--env-file" {
			continue
		}
		envArgs = append(envArgs, a)
		if !hasValue && i+1 < len(args) {
			envArgs = append(envArgs, args[i+1])
		}
	}
	_ = prelim.Parse(envArgs)
	if *prelimEnvFile != "" {
		_ = godotenv.Load(*prelimEnvFile) // silently ignore if absent
	}

	httpBind := fs.String("http-bind", envOr("STUDIO_BRIDGE_HTTP_BIND", DefaultHTTPBind), "address to bind the HTTP long-poll server to")
	httpPort := fs.Int("http-port", envOrInt("STUDIO_BRIDGE_HTTP_PORT", DefaultHTTPPort), "port for the HTTP long-poll server")
	pollTimeout := fs.Int("poll-timeout", envOrInt("STUDIO_BRIDGE_POLL_TIMEOUT", int(DefaultPollTimeout.Seconds())), "seconds a /poll request may hang before returning job:null")
	jobTimeout := fs.Int("job-timeout", envOrInt("STUDIO_BRIDGE_JOB_TIMEOUT", int(DefaultJobTimeout.Seconds())), "seconds the dispatcher waits for a matching /result")
	quiet := fs.Bool("quiet", envOrBool("STUDIO_BRIDGE_QUIET", false), "suppress per-request HTTP access logging")
	logLevel := fs.String("log-level", envOr("STUDIO_BRIDGE_LOG_LEVEL", DefaultLogLevel), "debug|info|warn|error")
	metrics := fs.Bool("metrics", true, "expose GET /metrics in Prometheus exposition format")
	sweepInterval := fs.Duration("sweep-interval", DefaultSweepInterval, "interval between orphaned-result sweeps; 0 disables the sweeper")
	versionFlag := fs.Bool("version", false, "print version information and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *versionFlag {
		return nil, ErrVersionRequested
	}

	return &Config{
		HTTPBind:       *httpBind,
		HTTPPort:       *httpPort,
		PollTimeout:    time.Duration(*pollTimeout) * time.Second,
		JobTimeout:     time.Duration(*jobTimeout) * time.Second,
		ClientID:       DefaultClientID,
		LivenessWindow: DefaultLivenessWindow,
		Quiet:          *quiet,
		LogLevel:       *logLevel,
		Metrics:        *metrics,
		SweepInterval:  *sweepInterval,
		EnvFile:        *envFile,
	}, nil
}

// ErrVersionRequested signals the caller should print version info and exit 0.
var ErrVersionRequested = fmt.Errorf("version requested")

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envOrBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
