// Command httppo-server starts a static-file HTTP server over the current
// working directory. It is thin wiring: flag parsing and process exit
// codes only, no hard engineering of its own.
package main

import (
	"flag"
	"os"
	"runtime"

	httppo "github.com/atmatm9182/httppo-go"
	"github.com/atmatm9182/httppo-go/log"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("httppo-server", flag.ContinueOnError)

	var port int
	var threads int
	var logFormat string
	fs.IntVar(&port, "p", 6969, "listening port")
	fs.IntVar(&port, "port", 6969, "listening port")
	fs.IntVar(&threads, "t", runtime.NumCPU(), "worker thread count")
	fs.IntVar(&threads, "threads", runtime.NumCPU(), "worker thread count")
	fs.StringVar(&logFormat, "log-format", "text", `log output format: "text" (colorized, for a terminal) or "json"`)

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	if port < 1 || port > 65535 {
		log.Error().Msgf("invalid port: %d", port)
		return 1
	}
	if threads < 1 {
		log.Error().Msg("threads must be at least 1")
		return 1
	}
	if threads > runtime.NumCPU() {
		threads = runtime.NumCPU()
	}

	var logger *log.Logger
	switch logFormat {
	case "text":
		logger = log.NewConsoleLogger(log.InfoLevel)
	case "json":
		logger = log.NewJSONLogger(os.Stdout, log.InfoLevel)
	default:
		log.Error().Msgf("invalid -log-format: %s", logFormat)
		return 1
	}

	srv := httppo.New(httppo.Config{
		Port:    port,
		Threads: threads,
		Logger:  logger,
	})

	if err := srv.ListenAndServe(); err != nil {
		logger.Error().Err(err).Msg("server exited")
		return 1
	}
	return 0
}
