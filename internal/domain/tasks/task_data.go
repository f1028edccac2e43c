package tasks

import (
	"fmt"

	"github.com/andrescamacho/hive-go/internal/domain/shared"
)

// TaskData is the persisted form of a task tree
type TaskData struct {
	Kind      Kind        `json:"kind"`
	Direction string      `json:"direction,omitempty"`
	Target    string      `json:"target,omitempty"`
	SourceID  string      `json:"source_id,omitempty"`
	Inner     *TaskData   `json:"inner,omitempty"`
	Steps     []*TaskData `json:"steps,omitempty"`
}

func (t *Move) ToData() *TaskData {
	return &TaskData{Kind: KindMove, Direction: t.Direction.String()}
}

func (t *Tow) ToData() *TaskData {
	return &TaskData{Kind: KindTow, Target: t.Target, Direction: t.Direction.String()}
}

func (t *Harvest) ToData() *TaskData {
	return &TaskData{Kind: KindHarvest, SourceID: t.SourceID}
}

func (t *Continuous) ToData() *TaskData {
	return &TaskData{Kind: KindContinuous, Inner: t.Inner.ToData()}
}

func (t *Perpetual) ToData() *TaskData {
	return &TaskData{Kind: KindPerpetual, Inner: t.Inner.ToData()}
}

func (t *MultiStep) ToData() *TaskData {
	steps := make([]*TaskData, len(t.Steps))
	for i, step := range t.Steps {
		steps[i] = step.ToData()
	}
	return &TaskData{Kind: KindMultiStep, Steps: steps}
}

// FromData rebuilds a task tree from its persisted form
func FromData(data *TaskData) (Task, error) {
	if data == nil {
		return nil, shared.NewValidationError("task", "cannot be nil")
	}

	switch data.Kind {
	case KindMove:
		dir, err := shared.ParseDirection(data.Direction)
		if err != nil {
			return nil, err
		}
		return NewMove(dir), nil

	case KindTow:
		if data.Target == "" {
			return nil, shared.NewValidationError("target", "tow requires a target worker")
		}
		dir, err := shared.ParseDirection(data.Direction)
		if err != nil {
			return nil, err
		}
		return NewTow(data.Target, dir), nil

	case KindHarvest:
		if data.SourceID == "" {
			return nil, shared.NewValidationError("source_id", "harvest requires a source")
		}
		return NewHarvest(data.SourceID), nil

	case KindContinuous, KindPerpetual:
		inner, err := FromData(data.Inner)
		if err != nil {
			return nil, fmt.Errorf("%s inner task: %w", data.Kind, err)
		}
		if data.Kind == KindContinuous {
			return NewContinuous(inner), nil
		}
		return NewPerpetual(inner), nil

	case KindMultiStep:
		steps := make([]Task, 0, len(data.Steps))
		for i, stepData := range data.Steps {
			step, err := FromData(stepData)
			if err != nil {
				return nil, fmt.Errorf("multi-step entry %d: %w", i, err)
			}
			steps = append(steps, step)
		}
		return NewMultiStep(steps...), nil
	}

	return nil, shared.NewValidationError("kind", fmt.Sprintf("unknown task kind %q", data.Kind))
}
