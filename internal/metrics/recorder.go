package metrics

import "time"

// Recorder defines observability hooks for page rendering.
type Recorder interface {
	// IncLink counts one resolved wiki link.
	IncLink(exists bool)
	// IncPage counts one page by outcome (rendered, failed).
	IncPage(outcome PageOutcome)
	// ObserveRenderDuration records the time spent rendering one page.
	ObserveRenderDuration(d time.Duration)
	// ObserveBuildDuration records the time spent on a full site build.
	ObserveBuildDuration(d time.Duration)
}

// PageOutcome labels the result of rendering a page.
type PageOutcome string

const (
	PageRendered PageOutcome = "rendered"
	PageFailed   PageOutcome = "failed"
)

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) IncLink(bool)                        {}
func (NoopRecorder) IncPage(PageOutcome)                 {}
func (NoopRecorder) ObserveRenderDuration(time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)  {}
