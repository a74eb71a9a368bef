package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ModerationDecisions counts approve/reject outcomes per source.
	ModerationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "unyield_moderation_decisions_total",
		Help: "Moderation decisions by source, action and outcome.",
	}, []string{"source", "action", "outcome"})

	// ReviewDecisions counts appeal and report review outcomes.
	ReviewDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "unyield_review_decisions_total",
		Help: "Appeal and report review decisions.",
	}, []string{"workflow", "action"})

	// ChallengeCompletions counts evaluations that crossed a target.
	ChallengeCompletions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "unyield_challenge_completions_total",
		Help: "Challenge completions detected during evaluation.",
	})

	// QueueDepth tracks the merged pending submission count at last read.
	QueueDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "unyield_moderation_queue_depth",
		Help: "Pending submissions per source at the last queue read.",
	}, []string{"source"})
)
