// skalegasminer demo CLI - runs the external-gas mining engine standalone,
// exposing it over the REST API and pprof/telemetry ambient stack.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cryptopia/skalegasminer/internal/api"
	"github.com/cryptopia/skalegasminer/internal/config"
	"github.com/cryptopia/skalegasminer/internal/logging"
	"github.com/cryptopia/skalegasminer/internal/mining"
	"github.com/cryptopia/skalegasminer/internal/profiling"
	"github.com/cryptopia/skalegasminer/internal/telemetry"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	fromAddress := flag.String("from-address", "", "Account address to mine gas for")
	amount := flag.Uint64("amount", 0, "Minimum external gas to accept")
	nonce := flag.Uint64("nonce", 0, "Nonce mixed into the search")
	difficulty := flag.Uint("difficulty", 0, "Difficulty divisor; overrides engine.default_difficulty")
	maxThreads := flag.Uint("max-threads", 0, "Worker cap; 0 falls back to engine.default_max_threads (0 there uses all cores)")
	serveOnly := flag.Bool("serve", false, "Start the API/profiling/telemetry servers without mining immediately")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("skalegasminer v%s (built %s)\n", version, buildTime)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logging.Infof("skalegasminer v%s starting", version)

	session := mining.Instance()

	var apiServer *api.Server
	var pprofServer *profiling.Server
	var telemetryAgent *telemetry.Agent

	if cfg.Profiling.Enabled {
		pprofServer = profiling.NewServer(&cfg.Profiling)
		if err := pprofServer.Start(); err != nil {
			logging.Errorf("failed to start pprof server: %v", err)
		}
	}

	if cfg.Telemetry.Enabled {
		telemetryAgent = telemetry.NewAgent(&cfg.Telemetry)
		if err := telemetryAgent.Start(); err != nil {
			logging.Errorf("failed to start telemetry agent: %v", err)
		}
	}

	if cfg.API.Enabled {
		apiServer = api.NewServer(cfg, session)
		if err := apiServer.Start(); err != nil {
			logging.Fatalf("failed to start API server: %v", err)
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if !*serveOnly {
		if *fromAddress == "" || *amount == 0 {
			logging.Fatal("from-address and amount are required unless -serve is set")
		}

		diff := uint32(*difficulty)
		if diff == 0 {
			diff = uint32(cfg.Engine.DefaultDifficulty)
		}
		threads := uint32(*maxThreads)
		if threads == 0 {
			threads = cfg.Engine.DefaultMaxThreads
		}

		in := mining.Inputs{
			Amount:      *amount,
			FromAddress: *fromAddress,
			Nonce:       *nonce,
			Difficulty:  diff,
			MaxThreads:  threads,
		}

		if telemetryAgent != nil {
			telemetryAgent.RecordSessionStarted(in.FromAddress, in.Difficulty, in.MaxThreads)
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			session.Mine(in,
				mining.RateSinkFunc(func(hashRate uint64) {
					logging.Infof("hash rate: %d/s", hashRate)
					if telemetryAgent != nil {
						telemetryAgent.RecordHashRate(hashRate)
					}
				}),
				mining.ResultSinkFunc(func(success bool, candidate string, errMsg string) {
					if success {
						logging.Infof("found candidate: %s", candidate)
					} else {
						logging.Warnf("mining ended without a result: %s", errMsg)
					}
					if telemetryAgent != nil {
						telemetryAgent.RecordSessionEnded(success, errMsg)
					}
				}),
			)
		}()

		select {
		case <-done:
		case <-sigChan:
			logging.Info("shutting down...")
			session.Stop()
			<-done
		}
	} else {
		logging.Info("skalegasminer started in serve-only mode. Press Ctrl+C to stop.")
		<-sigChan
		logging.Info("shutting down...")
		session.Stop()
	}

	if apiServer != nil {
		apiServer.Stop()
	}
	if pprofServer != nil {
		pprofServer.Stop()
	}
	if telemetryAgent != nil {
		telemetryAgent.Stop()
	}

	logging.Info("skalegasminer stopped")
}
