package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const pingTimeout = 5 * time.Second

// Pinger checks that a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status is the last observed state of the store
type Status struct {
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Monitor pings the store on a cron schedule and remembers the result
type Monitor struct {
	pinger   Pinger
	log      *logrus.Logger
	schedule string
	cron     *cron.Cron

	mu   sync.RWMutex
	last Status
}

// NewMonitor creates a monitor. The status is "unknown" until the first check.
func NewMonitor(pinger Pinger, schedule string, log *logrus.Logger) *Monitor {
	return &Monitor{
		pinger:   pinger,
		log:      log,
		schedule: schedule,
		cron:     cron.New(),
		last:     Status{Status: "unknown"},
	}
}

// Start runs one check immediately and then schedules the rest
func (m *Monitor) Start() error {
	if _, err := m.cron.AddFunc(m.schedule, m.Check); err != nil {
		return err
	}
	m.Check()
	m.cron.Start()
	m.log.Infof("Health monitor started with schedule %q", m.schedule)
	return nil
}

// Stop halts the scheduler and waits for a running check to finish
func (m *Monitor) Stop() {
	<-m.cron.Stop().Done()
}

// Check pings the store once and records the outcome
func (m *Monitor) Check() {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	st := Status{Status: "ok", CheckedAt: time.Now().UTC()}
	if err := m.pinger.Ping(ctx); err != nil {
		st.Status = "unavailable"
		st.Error = err.Error()
		m.log.Warnf("Store health check failed: %v", err)
	}

	m.mu.Lock()
	m.last = st
	m.mu.Unlock()
}

// Last returns the most recent status
func (m *Monitor) Last() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

// ServeHTTP writes the last status, with 503 unless the store was reachable
func (m *Monitor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	st := m.Last()
	code := http.StatusOK
	if st.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(st)
}
