package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func newCounter() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{Namespace: "test", Name: "olia_total", Help: "test"})
}

func TestRegister_Twice(t *testing.T) {
	assert.Nil(t, Register(newCounter()))
	assert.Nil(t, Register(newCounter()))
}

func TestRegisterAll(t *testing.T) {
	c := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "test", Name: "vec_total", Help: "test"},
		[]string{"status"})
	assert.Nil(t, RegisterAll(newCounter(), c))
}
