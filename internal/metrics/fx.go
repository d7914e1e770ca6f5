package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Module installs the prometheus-backed recorder on the default registry.
var Module = fx.Module("metrics",
	fx.Invoke(func() error {
		rec, err := newRecorder(prometheus.DefaultRegisterer)
		if err != nil {
			return err
		}
		setRecorder(rec)
		return nil
	}),
)
