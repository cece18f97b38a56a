package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TraceDB registers the otelgorm plugin so every query runs inside a child
// span of the request. Query parameters are never recorded; the statement
// text alone is enough to follow a slow confirmation across its row locks.
func (p *Provider) TraceDB(db *gorm.DB) error {
	if !p.cfg.Enabled || !p.cfg.DBTraceEnabled {
		p.log.Debug("Database tracing disabled")
		return nil
	}
	plugin := otelgorm.NewPlugin(
		otelgorm.WithDBName(p.cfg.ServiceName),
		otelgorm.WithoutQueryVariables(),
	)
	if err := db.Use(plugin); err != nil {
		return err
	}
	p.log.Info("Database tracing enabled", zap.String("plugin", "otelgorm"))
	return nil
}
