package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// register регистрирует коллектор; при повторной регистрации возвращает уже существующий.
func register[T prometheus.Collector](registerer prometheus.Registerer, name string, collector T) T {
	if err := registerer.Register(collector); err != nil {
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			existing, ok := alreadyRegistered.ExistingCollector.(T)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", name))
			}
			return existing
		}
		panic(fmt.Sprintf("register collector %q: %v", name, err))
	}
	return collector
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	return register[prometheus.Counter](registerer, opts.Name, prometheus.NewCounter(opts))
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	return register(registerer, opts.Name, prometheus.NewCounterVec(opts, labels))
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	return register[prometheus.Histogram](registerer, opts.Name, prometheus.NewHistogram(opts))
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	return register(registerer, opts.Name, prometheus.NewHistogramVec(opts, labels))
}
