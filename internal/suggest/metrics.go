package suggest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// stageCounter records which pipeline stage produced each result, since the
// fallback chain is otherwise invisible to callers of the plain list.
var stageCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "annotator_suggestion_stage_total",
	Help: "Suggestion pipeline results by producing stage.",
}, []string{"stage"})
