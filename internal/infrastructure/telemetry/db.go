package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/gorm"
)

// TraceDatabase registers the otelgorm plugin so every query runs inside a
// span. Query variables are excluded from span attributes; amounts, GSTINs
// and buyer details must not leak into the trace backend.
func TraceDatabase(db *gorm.DB) error {
	return db.Use(otelgorm.NewPlugin(
		otelgorm.WithDBName("gemsuite"),
		otelgorm.WithoutQueryVariables(),
	))
}
