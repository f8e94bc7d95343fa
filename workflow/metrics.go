package workflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric outcome constants.
const (
	outcomeAllowed         = "allowed"
	outcomeDenied          = "denied"
	outcomeApplied         = "applied"
	outcomeRejected        = "rejected"
	outcomeNotFound        = "not_found"
	outcomeUnexpectedState = "unexpected_state"
	outcomeInvalidEntity   = "invalid_entity"
)

// Metric definitions with appropriate labels.
var (
	// canTotal tracks Can calls by workflow, transition, and outcome.
	canTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workflow_can_total",
		Help: "Total number of transition queries by workflow, transition, and outcome",
	}, []string{"workflow", "transition", "outcome"})

	// applyTotal tracks Apply calls by workflow, transition, and outcome.
	applyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workflow_apply_total",
		Help: "Total number of transition applications by workflow, transition, and outcome",
	}, []string{"workflow", "transition", "outcome"})

	// transitionsRegisteredTotal tracks accepted (first-wins) registrations.
	transitionsRegisteredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workflow_transitions_registered_total",
		Help: "Total number of transitions registered by workflow",
	}, []string{"workflow"})
)

// Helper functions for label sanitization.
func sanitizeWorkflow(name string) string {
	if name == "" {
		return "unnamed"
	}

	return name
}

// sanitizeTransition keeps caller-supplied names out of the label set
// unless they are registered.
func sanitizeTransition(name, outcome string) string {
	if outcome == outcomeNotFound {
		return "unknown"
	}

	return name
}
