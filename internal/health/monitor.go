package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// probeTimeout bounds a single reachability probe.
const probeTimeout = 30 * time.Second

// ProbeFunc performs one reachability check against an upstream. A nil
// return marks the upstream healthy.
type ProbeFunc func(ctx context.Context) error

// Monitor periodically probes an upstream and feeds the outcome into a
// Registry, keeping health data fresh between caller traffic.
type Monitor struct {
	scheduler *gocron.Scheduler
	registry  *Registry
	upstream  string
	interval  time.Duration
	probe     ProbeFunc
	logger    *slog.Logger
}

// NewMonitor creates a Monitor for one upstream. logger may be nil.
func NewMonitor(registry *Registry, upstream string, interval time.Duration, probe ProbeFunc, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		scheduler: gocron.NewScheduler(time.UTC),
		registry:  registry,
		upstream:  upstream,
		interval:  interval,
		probe:     probe,
		logger:    logger.With("component", "health-monitor"),
	}
}

// Start schedules the periodic probe, running the first one right away. An
// interval of zero or less disables monitoring entirely.
func (m *Monitor) Start() error {
	if m.interval <= 0 {
		m.logger.Info("probe interval not set; upstream monitoring disabled")
		return nil
	}

	minutes := int(m.interval.Minutes())
	if minutes <= 0 {
		minutes = 1
	}

	_, err := m.scheduler.Every(minutes).Minutes().StartImmediately().Do(m.runProbe)
	if err != nil {
		return err
	}

	m.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future probes.
func (m *Monitor) Stop() {
	if m.scheduler != nil {
		m.scheduler.Stop()
	}
}

func (m *Monitor) runProbe() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	err := m.probe(ctx)
	m.registry.Record(m.upstream, err)
	if err != nil {
		m.logger.Warn("upstream probe failed", "upstream", m.upstream, "error", err)
		return
	}
	m.logger.Debug("upstream probe succeeded", "upstream", m.upstream)
}
