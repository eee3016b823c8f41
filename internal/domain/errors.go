package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for a missing opportunity or an empty selection pool.
	ErrNotFound = errors.New("not found")
	// ErrCapabilityUnavailable wraps script, speech and overlay provider failures.
	ErrCapabilityUnavailable = errors.New("capability unavailable")
	// ErrEmptyContent means a provider answered but produced nothing usable.
	ErrEmptyContent = errors.New("empty content")
	// ErrCompositionFatal means no video could be composed at all.
	ErrCompositionFatal = errors.New("composition failed")
	// ErrPersistence wraps store write failures.
	ErrPersistence = errors.New("persistence failed")
	// ErrDuplicate means another opportunity already owns the product url.
	ErrDuplicate = errors.New("duplicate product url")
	// ErrInvalidTrigger is a driver-level misconfiguration (unknown platform, bad count).
	ErrInvalidTrigger = errors.New("invalid trigger")
)

// Stage names one step of the single-item pipeline.
type Stage string

const (
	StageSelect   Stage = "select"
	StageScript   Stage = "script"
	StageAudio    Stage = "audio"
	StageVisuals  Stage = "visuals"
	StageCompose  Stage = "compose"
	StagePersist  Stage = "persist"
	StageMarkUsed Stage = "mark_used"
)

// StageError reports the step at which an item was aborted.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// FailedStage extracts the aborted stage from err, if any.
func FailedStage(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}
