package sim

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/domain/world"
)

const (
	// SpawnTimePerPart is how many ticks each body part adds to spawning
	SpawnTimePerPart = 3

	// RoomEnergyRegen is the energy every room gains per tick
	RoomEnergyRegen = 1

	// DefaultWorkerLifetime is how many ticks a worker lives after spawning
	DefaultWorkerLifetime = 1500
)

type roomState struct {
	name      string
	energy    int
	capacity  int
	spawnIDs  []string
	sourceIDs []string
}

type spawnState struct {
	id            string
	pos           shared.Position
	spawningUntil shared.Tick
}

type sourceState struct {
	id       string
	pos      shared.Position
	energy   int
	capacity int
}

type workerState struct {
	name          string
	pos           shared.Position
	body          []shared.Part
	carried       int
	spawningUntil shared.Tick
	diesAt        shared.Tick
}

func (w *workerState) capacity() int {
	return shared.CountParts(w.body, shared.PartCarry) * shared.CarryCapacity
}

func (w *workerState) has(part shared.Part) bool {
	return shared.CountParts(w.body, part) > 0
}

type pileState struct {
	id     string
	pos    shared.Position
	amount int
}

// Host is a deterministic in-memory world. Orders issued through its
// handles are validated immediately and take effect on Commit.
type Host struct {
	tick     shared.Tick
	lifetime int

	rooms   map[string]*roomState
	spawns  map[string]*spawnState
	sources map[string]*sourceState
	workers map[string]*workerState
	piles   map[shared.Position]*pileState

	nextPileID int
	orders     orderBook
}

func newHost(tick shared.Tick, lifetime int) *Host {
	if lifetime <= 0 {
		lifetime = DefaultWorkerLifetime
	}
	return &Host{
		tick:     tick,
		lifetime: lifetime,
		rooms:    make(map[string]*roomState),
		spawns:   make(map[string]*spawnState),
		sources:  make(map[string]*sourceState),
		workers:  make(map[string]*workerState),
		piles:    make(map[shared.Position]*pileState),
		orders:   newOrderBook(),
	}
}

// Snapshot returns the host itself; handles stay valid until Commit
func (h *Host) Snapshot() world.Snapshot { return h }

// Commit applies every queued order and advances the tick
func (h *Host) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.resolve()
	h.orders = newOrderBook()
	return nil
}

func (h *Host) Time() shared.Tick { return h.tick }

func (h *Host) Worker(name string) (world.Worker, bool) {
	if w, ok := h.workers[name]; ok {
		return &workerHandle{host: h, state: w}, true
	}
	return nil, false
}

func (h *Host) Facility(id string) (world.Facility, bool) {
	if s, ok := h.spawns[id]; ok {
		return &spawnHandle{host: h, state: s}, true
	}
	return nil, false
}

func (h *Host) Source(id string) (world.Source, bool) {
	if s, ok := h.sources[id]; ok {
		return &sourceHandle{state: s}, true
	}
	return nil, false
}

func (h *Host) Room(name string) (world.Room, bool) {
	if r, ok := h.rooms[name]; ok {
		return &roomHandle{state: r}, true
	}
	return nil, false
}

func (h *Host) Rooms() []string {
	names := make([]string, 0, len(h.rooms))
	for name := range h.rooms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (h *Host) DroppedEnergyAt(pos shared.Position) (world.Resource, bool) {
	if p, ok := h.piles[pos]; ok {
		return &pileHandle{state: p}, true
	}
	return nil, false
}

// WorkerNames lists live workers in sorted order
func (h *Host) WorkerNames() []string {
	names := make([]string, 0, len(h.workers))
	for name := range h.workers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stats is a summary of the world for status output
type Stats struct {
	Tick          shared.Tick
	Workers       int
	RoomEnergy    map[string]int
	DroppedEnergy int
	CarriedEnergy int
}

func (h *Host) Stats() Stats {
	stats := Stats{Tick: h.tick, Workers: len(h.workers), RoomEnergy: make(map[string]int, len(h.rooms))}
	for name, r := range h.rooms {
		stats.RoomEnergy[name] = r.energy
	}
	for _, p := range h.piles {
		stats.DroppedEnergy += p.amount
	}
	for _, w := range h.workers {
		stats.CarriedEnergy += w.carried
	}
	return stats
}

func (h *Host) String() string {
	return fmt.Sprintf("sim(tick=%d rooms=%d workers=%d)", h.tick, len(h.rooms), len(h.workers))
}

func (h *Host) nameTaken(name string) bool {
	if _, ok := h.workers[name]; ok {
		return true
	}
	for _, order := range h.orders.spawns {
		if order.name == name {
			return true
		}
	}
	return false
}

func (h *Host) dropEnergy(pos shared.Position, amount int) {
	if amount <= 0 {
		return
	}
	if p, ok := h.piles[pos]; ok {
		p.amount += amount
		return
	}
	h.nextPileID++
	h.piles[pos] = &pileState{id: fmt.Sprintf("energy-%d", h.nextPileID), pos: pos, amount: amount}
}
