package tasks

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/domain/world"
)

// Registry maps worker names to the task each worker is committed to.
// A worker with an entry is busy and must not be repurposed by the allocator.
type Registry struct {
	tasks map[string]Task
}

// SweepReport summarises one registry sweep
type SweepReport struct {
	Stepped   int
	Completed []string                     // evicted because the task finished
	Orphaned  []string                     // evicted because the worker is gone
	Failed    map[string]shared.ReturnCode // kept, retried next tick
}

// Evicted returns how many entries the sweep removed
func (r SweepReport) Evicted() int {
	return len(r.Completed) + len(r.Orphaned)
}

func NewRegistry() *Registry {
	return &Registry{tasks: make(map[string]Task)}
}

// Add binds task to workerName, replacing any previous entry
func (r *Registry) Add(workerName string, task Task) {
	r.tasks[workerName] = task
}

// Has reports whether the worker is committed to a task
func (r *Registry) Has(workerName string) bool {
	_, ok := r.tasks[workerName]
	return ok
}

// Get returns the task bound to workerName
func (r *Registry) Get(workerName string) (Task, bool) {
	task, ok := r.tasks[workerName]
	return task, ok
}

// Remove drops the entry for workerName; this is how a task is cancelled
func (r *Registry) Remove(workerName string) bool {
	if _, ok := r.tasks[workerName]; !ok {
		return false
	}
	delete(r.tasks, workerName)
	return true
}

func (r *Registry) Len() int {
	return len(r.tasks)
}

// WorkerNames returns the registered worker names in sorted order
func (r *Registry) WorkerNames() []string {
	names := make([]string, 0, len(r.tasks))
	for name := range r.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run steps every registered task once. Entries whose task completes or whose
// worker is absent from the snapshot are evicted; failures keep the entry.
func (r *Registry) Run(snapshot world.Snapshot) SweepReport {
	report := SweepReport{Failed: make(map[string]shared.ReturnCode)}

	for _, name := range r.WorkerNames() {
		worker, ok := snapshot.Worker(name)
		if !ok {
			report.Orphaned = append(report.Orphaned, name)
			continue
		}

		report.Stepped++
		out := r.tasks[name].Step(snapshot, worker)
		switch out.Status {
		case StatusComplete:
			report.Completed = append(report.Completed, name)
		case StatusFailed:
			report.Failed[name] = out.Code
		}
	}

	for _, name := range report.Completed {
		delete(r.tasks, name)
	}
	for _, name := range report.Orphaned {
		delete(r.tasks, name)
	}

	return report
}

// ToData converts the registry to its persisted form
func (r *Registry) ToData() map[string]*TaskData {
	data := make(map[string]*TaskData, len(r.tasks))
	for name, task := range r.tasks {
		data[name] = task.ToData()
	}
	return data
}

// RegistryFromData rebuilds a registry from its persisted form
func RegistryFromData(data map[string]*TaskData) (*Registry, error) {
	r := NewRegistry()
	for name, taskData := range data {
		task, err := FromData(taskData)
		if err != nil {
			return nil, fmt.Errorf("task for %s: %w", name, err)
		}
		r.Add(name, task)
	}
	return r, nil
}
