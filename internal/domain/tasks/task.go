package tasks

import (
	"fmt"

	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/domain/world"
)

// Status is the tri-state progress signal a task reports after one step
type Status int

const (
	StatusComplete Status = iota
	StatusProgressMade
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusComplete:
		return "COMPLETE"
	case StatusProgressMade:
		return "PROGRESS_MADE"
	case StatusFailed:
		return "FAILED"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Outcome is the result of stepping a task once
type Outcome struct {
	Status Status
	Code   shared.ReturnCode // set when Status is StatusFailed
}

func Complete() Outcome     { return Outcome{Status: StatusComplete} }
func ProgressMade() Outcome { return Outcome{Status: StatusProgressMade} }
func Failed(code shared.ReturnCode) Outcome {
	return Outcome{Status: StatusFailed, Code: code}
}

func (o Outcome) String() string {
	if o.Status == StatusFailed {
		return fmt.Sprintf("%s(%s)", o.Status, o.Code)
	}
	return o.Status.String()
}

// Kind tags a task variant
type Kind string

const (
	KindMove       Kind = "MOVE"
	KindTow        Kind = "TOW"
	KindHarvest    Kind = "HARVEST"
	KindContinuous Kind = "CONTINUOUS"
	KindPerpetual  Kind = "PERPETUAL"
	KindMultiStep  Kind = "MULTI_STEP"
)

// Task is a composable behaviour bound to one worker. Step advances it by
// exactly one tick's worth of orders.
type Task interface {
	Kind() Kind
	Step(snapshot world.Snapshot, worker world.Worker) Outcome
	ToData() *TaskData
}

// Move steps the worker once in a fixed direction
type Move struct {
	Direction shared.Direction
}

func NewMove(direction shared.Direction) *Move {
	return &Move{Direction: direction}
}

func (t *Move) Kind() Kind { return KindMove }

func (t *Move) Step(_ world.Snapshot, worker world.Worker) Outcome {
	return completeOnOK(worker.Move(t.Direction))
}

// Tow pulls the named worker one step in a fixed direction
type Tow struct {
	Target    string
	Direction shared.Direction
}

func NewTow(target string, direction shared.Direction) *Tow {
	return &Tow{Target: target, Direction: direction}
}

func (t *Tow) Kind() Kind { return KindTow }

func (t *Tow) Step(snapshot world.Snapshot, worker world.Worker) Outcome {
	towed, ok := snapshot.Worker(t.Target)
	if !ok {
		return Failed(shared.InvalidTarget)
	}

	pull, follow := worker.Pull(towed), towed.MovePulledBy(worker)
	switch {
	case pull.IsOK() && follow.IsOK():
		return completeOnOK(worker.Move(t.Direction))
	case !pull.IsOK():
		return Failed(pull)
	case !follow.IsOK():
		return Failed(follow)
	}
	panic(fmt.Sprintf("tow link in impossible state: pull=%s follow=%s", pull, follow))
}

// Harvest issues a single harvest order against a resource node
type Harvest struct {
	SourceID string
}

func NewHarvest(sourceID string) *Harvest {
	return &Harvest{SourceID: sourceID}
}

func (t *Harvest) Kind() Kind { return KindHarvest }

func (t *Harvest) Step(snapshot world.Snapshot, worker world.Worker) Outcome {
	source, ok := snapshot.Source(t.SourceID)
	if !ok {
		return Failed(shared.InvalidTarget)
	}
	return completeOnOK(worker.Harvest(source))
}

// Continuous re-arms its inner task every tick and never completes on its own
type Continuous struct {
	Inner Task
}

// NewContinuous panics on a nil inner task; decoded trees are checked by FromData
func NewContinuous(inner Task) *Continuous {
	mustHaveInner(KindContinuous, inner)
	return &Continuous{Inner: inner}
}

func (t *Continuous) Kind() Kind { return KindContinuous }

func (t *Continuous) Step(snapshot world.Snapshot, worker world.Worker) Outcome {
	out := t.Inner.Step(snapshot, worker)
	if out.Status == StatusComplete {
		return ProgressMade()
	}
	return out
}

// Perpetual runs its inner task for effect only and always reports progress,
// so it is never evicted while its worker lives.
type Perpetual struct {
	Inner Task
}

// NewPerpetual panics on a nil inner task; decoded trees are checked by FromData
func NewPerpetual(inner Task) *Perpetual {
	mustHaveInner(KindPerpetual, inner)
	return &Perpetual{Inner: inner}
}

func mustHaveInner(kind Kind, inner Task) {
	if inner == nil {
		panic(fmt.Sprintf("%s task built without an inner task", kind))
	}
}

func (t *Perpetual) Kind() Kind { return KindPerpetual }

func (t *Perpetual) Step(snapshot world.Snapshot, worker world.Worker) Outcome {
	t.Inner.Step(snapshot, worker)
	return ProgressMade()
}

// MultiStep runs a queue of tasks front to back. Completed steps are dropped.
type MultiStep struct {
	Steps []Task
}

func NewMultiStep(steps ...Task) *MultiStep {
	queue := make([]Task, len(steps))
	copy(queue, steps)
	return &MultiStep{Steps: queue}
}

func (t *MultiStep) Kind() Kind { return KindMultiStep }

// Remaining returns how many steps are still queued
func (t *MultiStep) Remaining() int { return len(t.Steps) }

func (t *MultiStep) Step(snapshot world.Snapshot, worker world.Worker) Outcome {
	if len(t.Steps) == 0 {
		return Complete()
	}

	out := t.Steps[0].Step(snapshot, worker)
	if out.Status != StatusComplete {
		return out
	}

	t.Steps[0] = nil
	t.Steps = t.Steps[1:]
	if len(t.Steps) == 0 {
		return Complete()
	}
	return ProgressMade()
}

func completeOnOK(code shared.ReturnCode) Outcome {
	if code.IsOK() {
		return Complete()
	}
	return Failed(code)
}
