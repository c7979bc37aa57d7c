// Package prometrics expone los contadores Prometheus de la aplicación.
package prometrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contadores de negocio. Se incrementan en la capa HTTP después
// de cada operación exitosa.
type Metrics struct {
	MovementsRecorded *prometheus.CounterVec
	SalesCompleted    prometheus.Counter
}

// New registra los contadores en el registry por defecto.
func New(namespace string) *Metrics {
	return &Metrics{
		MovementsRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stock",
			Name:      "movements_recorded_total",
			Help:      "Movimientos de stock registrados, por tipo (entry/exit).",
		}, []string{"kind"}),
		SalesCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sales",
			Name:      "completed_total",
			Help:      "Ventas completadas.",
		}),
	}
}
