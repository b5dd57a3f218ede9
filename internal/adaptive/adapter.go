package adaptive

import (
	"fmt"

	"github.com/abhisek/quizly/internal/models"
)

// Policy holds the difficulty-adaptation thresholds. These are tunables,
// surfaced through configuration rather than baked in.
type Policy struct {
	// MinAnswers is how many answers must be recorded before difficulty is
	// reconsidered at all.
	MinAnswers int

	// StepUpAccuracy is the exclusive lower bound for stepping up a tier.
	StepUpAccuracy float64

	// StepDownAccuracy is the exclusive upper bound for stepping down a tier.
	StepDownAccuracy float64
}

// DefaultPolicy returns the stock thresholds: reconsider from the 5th answer,
// step up above 70% accuracy, step down below 50%.
func DefaultPolicy() Policy {
	return Policy{
		MinAnswers:       5,
		StepUpAccuracy:   0.7,
		StepDownAccuracy: 0.5,
	}
}

// Validate checks the policy for internally consistent values.
func (p Policy) Validate() error {
	if p.MinAnswers < 1 {
		return fmt.Errorf("min answers must be at least 1, got %d", p.MinAnswers)
	}
	if p.StepUpAccuracy <= 0 || p.StepUpAccuracy > 1 {
		return fmt.Errorf("step-up accuracy must be in (0, 1], got %g", p.StepUpAccuracy)
	}
	if p.StepDownAccuracy < 0 || p.StepDownAccuracy >= 1 {
		return fmt.Errorf("step-down accuracy must be in [0, 1), got %g", p.StepDownAccuracy)
	}
	if p.StepDownAccuracy >= p.StepUpAccuracy {
		return fmt.Errorf("step-down accuracy %g must be below step-up accuracy %g",
			p.StepDownAccuracy, p.StepUpAccuracy)
	}
	return nil
}

// NextDifficulty maps the session's counters onto the next tier.
//
// Difficulty is only reconsidered once total reaches the policy minimum.
// Above the step-up accuracy the tier moves up one step (capped at hard),
// below the step-down accuracy it moves down one step (capped at easy),
// otherwise it is unchanged. The decision is recomputed on every answer once
// the minimum is reached, so accuracy hovering between the two thresholds'
// neighborhoods can oscillate the tier. That is accepted behavior.
func NextDifficulty(current models.Difficulty, total, correct int, p Policy) models.Difficulty {
	if total < p.MinAnswers || total == 0 {
		return current
	}

	accuracy := float64(correct) / float64(total)

	switch {
	case accuracy > p.StepUpAccuracy:
		return current.StepUp()
	case accuracy < p.StepDownAccuracy:
		return current.StepDown()
	default:
		return current
	}
}
