// Package telemetry provides New Relic APM integration for observing the
// mining engine from the demo harness: session starts/stops, hash-rate
// samples, and terminal results.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/cryptopia/skalegasminer/internal/config"
	"github.com/cryptopia/skalegasminer/internal/logging"
)

// Agent wraps New Relic APM functionality.
type Agent struct {
	cfg *config.TelemetryConfig
	app *newrelic.Application
	mu  sync.RWMutex
}

// NewAgent creates a new telemetry agent.
func NewAgent(cfg *config.TelemetryConfig) *Agent {
	return &Agent{cfg: cfg}
}

// Start initializes the New Relic agent.
func (a *Agent) Start() error {
	if !a.cfg.Enabled {
		logging.Info("telemetry disabled")
		return nil
	}

	if a.cfg.LicenseKey == "" {
		logging.Warn("telemetry license key not configured, disabling APM")
		return nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(a.cfg.AppName),
		newrelic.ConfigLicense(a.cfg.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(true),
		newrelic.ConfigAppLogForwardingEnabled(true),
	)
	if err != nil {
		return err
	}

	if err := app.WaitForConnection(5 * time.Second); err != nil {
		logging.Warnf("telemetry connection timeout: %v (will retry in background)", err)
	}

	a.mu.Lock()
	a.app = app
	a.mu.Unlock()

	logging.Infof("telemetry enabled for app: %s", a.cfg.AppName)
	return nil
}

// Stop shuts down the agent.
func (a *Agent) Stop() {
	a.mu.RLock()
	app := a.app
	a.mu.RUnlock()

	if app != nil {
		logging.Info("shutting down telemetry agent")
		app.Shutdown(10 * time.Second)
	}
}

// Application returns the underlying New Relic application, for Gin
// middleware.
func (a *Agent) Application() *newrelic.Application {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.app
}

// IsEnabled reports whether Start created an APM application. It is true
// even when the initial connection wait in Start timed out.
func (a *Agent) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.app != nil
}

// StartTransaction starts a New Relic transaction.
func (a *Agent) StartTransaction(name string) *newrelic.Transaction {
	a.mu.RLock()
	app := a.app
	a.mu.RUnlock()

	if app == nil {
		return nil
	}
	return app.StartTransaction(name)
}

// RecordCustomEvent records a custom event.
func (a *Agent) RecordCustomEvent(eventType string, params map[string]interface{}) {
	a.mu.RLock()
	app := a.app
	a.mu.RUnlock()

	if app != nil {
		app.RecordCustomEvent(eventType, params)
	}
}

// RecordCustomMetric records a custom metric.
func (a *Agent) RecordCustomMetric(name string, value float64) {
	a.mu.RLock()
	app := a.app
	a.mu.RUnlock()

	if app != nil {
		app.RecordCustomMetric(name, value)
	}
}

// NoticeError records an error against a transaction.
func (a *Agent) NoticeError(txn *newrelic.Transaction, err error) {
	if txn != nil && err != nil {
		txn.NoticeError(err)
	}
}

// NewContext attaches a transaction to a context.
func (a *Agent) NewContext(ctx context.Context, txn *newrelic.Transaction) context.Context {
	if txn == nil {
		return ctx
	}
	return newrelic.NewContext(ctx, txn)
}

// FromContext retrieves a transaction from a context.
func (a *Agent) FromContext(ctx context.Context) *newrelic.Transaction {
	return newrelic.FromContext(ctx)
}

// RecordSessionStarted records the start of a mining session.
func (a *Agent) RecordSessionStarted(fromAddress string, difficulty uint32, maxThreads uint32) {
	a.RecordCustomEvent("MiningSessionStarted", map[string]interface{}{
		"fromAddress": fromAddress,
		"difficulty":  difficulty,
		"maxThreads":  maxThreads,
	})
}

// RecordSessionEnded records the terminal outcome of a mining session.
func (a *Agent) RecordSessionEnded(success bool, errMsg string) {
	status := "success"
	if !success {
		status = "failed"
	}
	a.RecordCustomEvent("MiningSessionEnded", map[string]interface{}{
		"status": status,
		"error":  errMsg,
	})
}

// RecordHashRate updates the current hash-rate gauge.
func (a *Agent) RecordHashRate(hashesPerSecond uint64) {
	a.RecordCustomMetric("Custom/Mining/HashRate", float64(hashesPerSecond))
}
