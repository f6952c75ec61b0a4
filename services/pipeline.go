package services

import (
	"errors"
	"strings"

	"caterflow-backend/models"
)

var ErrInvalidStatus = errors.New("status must be one of lead, tasting, proposal, sold")

// SetStatus moves a record to any stage, forward or backward.
func SetStatus(c *models.Customer, status models.PipelineStatus) error {
	if !status.Valid() || status == "" {
		return ErrInvalidStatus
	}
	c.Status = status
	return nil
}

type StepState struct {
	Step    models.PipelineStatus `json:"step"`
	Label   string                `json:"label"`
	Past    bool                  `json:"past"`
	Current bool                  `json:"current"`
}

// StepLabel is the display label of a stage; a sold record shows as booked.
func StepLabel(s models.PipelineStatus) string {
	s = s.Normalize()
	if s == models.StatusSold {
		return "BOOKED"
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// StepStates describes the progress indicator. Past is display only and gates nothing.
func StepStates(current models.PipelineStatus) []StepState {
	idx := current.Index()
	states := make([]StepState, 0, len(models.PipelineSteps))
	for i, step := range models.PipelineSteps {
		states = append(states, StepState{
			Step:    step,
			Label:   StepLabel(step),
			Past:    idx > i,
			Current: idx == i,
		})
	}
	return states
}
