package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	links          *prom.CounterVec
	pages          *prom.CounterVec
	renderDuration prom.Histogram
	buildDuration  prom.Histogram
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		links: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "wikilink",
			Name:      "links_total",
			Help:      "Resolved wiki links by whether the target page exists",
		}, []string{"exists"}),
		pages: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "wikilink",
			Name:      "pages_total",
			Help:      "Pages processed by outcome",
		}, []string{"outcome"}),
		renderDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "wikilink",
			Name:      "page_render_duration_seconds",
			Help:      "Duration of rendering a single page",
			Buckets:   prom.DefBuckets,
		}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "wikilink",
			Name:      "build_duration_seconds",
			Help:      "Duration of a full site build",
			Buckets:   prom.DefBuckets,
		}),
	}
	reg.MustRegister(pr.links, pr.pages, pr.renderDuration, pr.buildDuration)
	return pr
}

func (p *PrometheusRecorder) IncLink(exists bool) {
	p.links.WithLabelValues(strconv.FormatBool(exists)).Inc()
}

func (p *PrometheusRecorder) IncPage(outcome PageOutcome) {
	p.pages.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveRenderDuration(d time.Duration) {
	p.renderDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}
