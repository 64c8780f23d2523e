package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

//Register tries to register or reregister metric to prometheus default registry
func Register(m prometheus.Collector) error {
	err := prometheus.Register(m)
	if err != nil {
		prometheus.Unregister(m)
		err = prometheus.Register(m)
	}
	return err
}

//RegisterAll registers all collectors, stops on the first failure
func RegisterAll(ms ...prometheus.Collector) error {
	for i, m := range ms {
		if err := Register(m); err != nil {
			return errors.Wrapf(err, "can't register metric %d", i)
		}
	}
	return nil
}
