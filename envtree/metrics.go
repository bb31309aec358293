package envtree

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/presbrey/envtree/dotenv"
)

// metrics counts loads and per-key merge outcomes. A nil *metrics records nothing.
type metrics struct {
	filesLoaded prometheus.Counter
	loadErrors  prometheus.Counter
	keys        *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}

	return &metrics{
		filesLoaded: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "envtree_files_loaded_total",
			Help: "Total number of env files loaded",
		})),
		loadErrors: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "envtree_load_errors_total",
			Help: "Total number of env files that failed to load",
		})),
		keys: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "envtree_keys_total",
				Help: "Total number of env file variables by merge action",
			},
			[]string{"action"},
		)),
	}
}

// register adds c to reg, reusing an identical collector that several
// loaders sharing one registry have already registered
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (m *metrics) observe(res dotenv.Result) {
	if m == nil {
		return
	}
	if res.Err != nil {
		m.loadErrors.Inc()
		return
	}

	m.filesLoaded.Inc()
	for _, change := range res.Changes {
		m.keys.WithLabelValues(change.Action.String()).Inc()
	}
}
