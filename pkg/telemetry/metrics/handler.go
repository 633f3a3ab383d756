package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves the collector's registry in Prometheus exposition
// format. Watch mode mounts it at the configured metrics path, so
// everything recorded through the collector becomes scrapeable:
//
//	mux.Handle(cfg.Path, collector.Handler())
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		// A failing collector degrades the scrape instead of failing it.
		// Collection time is bounded by the server's own timeouts.
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
