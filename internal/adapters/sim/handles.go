package sim

import (
	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/domain/world"
)

// HarvestPerWorkPart is the energy a WORK part extracts per tick
const HarvestPerWorkPart = 2

type roomHandle struct{ state *roomState }

func (r *roomHandle) Name() string                 { return r.state.name }
func (r *roomHandle) EnergyAvailable() int         { return r.state.energy }
func (r *roomHandle) EnergyCapacityAvailable() int { return r.state.capacity }
func (r *roomHandle) FacilityIDs() []string        { return append([]string(nil), r.state.spawnIDs...) }
func (r *roomHandle) ExtensionIDs() []string       { return nil }
func (r *roomHandle) SourceIDs() []string          { return append([]string(nil), r.state.sourceIDs...) }

type sourceHandle struct{ state *sourceState }

func (s *sourceHandle) ID() string           { return s.state.id }
func (s *sourceHandle) Pos() shared.Position { return s.state.pos }

type pileHandle struct{ state *pileState }

func (p *pileHandle) ID() string           { return p.state.id }
func (p *pileHandle) Pos() shared.Position { return p.state.pos }
func (p *pileHandle) Amount() int          { return p.state.amount }

type spawnHandle struct {
	host  *Host
	state *spawnState
}

func (s *spawnHandle) ID() string           { return s.state.id }
func (s *spawnHandle) Pos() shared.Position { return s.state.pos }
func (s *spawnHandle) RoomName() string     { return s.state.pos.Room }

func (s *spawnHandle) Spawning() bool {
	if s.host.tick < s.state.spawningUntil {
		return true
	}
	_, queued := s.host.orders.spawns[s.state.id]
	return queued
}

func (s *spawnHandle) SpawnWorker(body []shared.Part, name string) shared.ReturnCode {
	if s.Spawning() {
		return shared.Busy
	}
	if name == "" || len(body) == 0 || len(body) > 50 {
		return shared.InvalidArgs
	}
	if s.host.nameTaken(name) {
		return shared.NameExists
	}
	room := s.host.rooms[s.state.pos.Room]
	cost := shared.BodyCost(body)
	if room == nil || cost > room.energy {
		return shared.NotEnough
	}
	room.energy -= cost
	s.host.orders.spawns[s.state.id] = spawnOrder{
		spawnID: s.state.id,
		name:    name,
		body:    append([]shared.Part(nil), body...),
	}
	return shared.OK
}

type workerHandle struct {
	host  *Host
	state *workerState
}

func (w *workerHandle) Name() string         { return w.state.name }
func (w *workerHandle) Pos() shared.Position { return w.state.pos }
func (w *workerHandle) Spawning() bool       { return w.host.tick < w.state.spawningUntil }
func (w *workerHandle) CarriedEnergy() int   { return w.state.carried }
func (w *workerHandle) FreeCapacity() int    { return w.state.capacity() - w.state.carried }

func (w *workerHandle) Move(direction shared.Direction) shared.ReturnCode {
	if w.Spawning() {
		return shared.Busy
	}
	if !direction.IsValid() {
		return shared.InvalidArgs
	}
	if !w.state.has(shared.PartMove) {
		return shared.NoBodypart
	}
	w.host.orders.moves[w.state.name] = w.state.pos.Step(direction)
	return shared.OK
}

func (w *workerHandle) MoveTo(target shared.Position) shared.ReturnCode {
	if w.Spawning() {
		return shared.Busy
	}
	if target.Room != w.state.pos.Room {
		return shared.NoPath
	}
	if !w.state.has(shared.PartMove) {
		return shared.NoBodypart
	}
	direction, ok := w.state.pos.DirectionTo(target)
	if !ok {
		return shared.OK
	}
	w.host.orders.moves[w.state.name] = w.state.pos.Step(direction)
	return shared.OK
}

func (w *workerHandle) Harvest(source world.Source) shared.ReturnCode {
	if w.Spawning() {
		return shared.Busy
	}
	state, ok := w.host.sources[source.ID()]
	if !ok {
		return shared.InvalidTarget
	}
	if !w.state.has(shared.PartWork) {
		return shared.NoBodypart
	}
	if !w.state.pos.IsNearTo(state.pos) {
		return shared.NotInRange
	}
	if state.energy <= 0 {
		return shared.NotEnough
	}
	w.host.orders.harvests[w.state.name] = state.id
	return shared.OK
}

func (w *workerHandle) Pull(target world.Worker) shared.ReturnCode {
	if w.Spawning() {
		return shared.Busy
	}
	other, ok := w.host.workers[target.Name()]
	if !ok || other == w.state {
		return shared.InvalidTarget
	}
	if !w.state.pos.IsNearTo(other.pos) {
		return shared.NotInRange
	}
	w.host.orders.pulls[w.state.name] = other.name
	return shared.OK
}

func (w *workerHandle) MovePulledBy(puller world.Worker) shared.ReturnCode {
	if w.Spawning() {
		return shared.Busy
	}
	other, ok := w.host.workers[puller.Name()]
	if !ok || other == w.state {
		return shared.InvalidTarget
	}
	if !w.state.pos.IsNearTo(other.pos) {
		return shared.NotInRange
	}
	w.host.orders.follows[w.state.name] = other.name
	return shared.OK
}

func (w *workerHandle) TransferToFacility(target world.Facility, amount int) shared.ReturnCode {
	if w.Spawning() {
		return shared.Busy
	}
	spawn, ok := w.host.spawns[target.ID()]
	if !ok {
		return shared.InvalidTarget
	}
	if !w.state.pos.IsNearTo(spawn.pos) {
		return shared.NotInRange
	}
	if w.state.carried <= 0 {
		return shared.NotEnough
	}
	if amount > w.state.carried {
		return shared.NotEnough
	}
	room := w.host.rooms[spawn.pos.Room]
	if room == nil || room.energy >= room.capacity {
		return shared.Full
	}
	w.host.orders.transfers = append(w.host.orders.transfers, transferOrder{
		from:    w.state.name,
		spawnID: spawn.id,
		amount:  amount,
	})
	return shared.OK
}

func (w *workerHandle) TransferToWorker(target world.Worker, amount int) shared.ReturnCode {
	if w.Spawning() {
		return shared.Busy
	}
	other, ok := w.host.workers[target.Name()]
	if !ok || other == w.state {
		return shared.InvalidTarget
	}
	if !w.state.pos.IsNearTo(other.pos) {
		return shared.NotInRange
	}
	if w.state.carried <= 0 || amount > w.state.carried {
		return shared.NotEnough
	}
	if other.capacity()-other.carried <= 0 {
		return shared.Full
	}
	w.host.orders.transfers = append(w.host.orders.transfers, transferOrder{
		from:   w.state.name,
		to:     other.name,
		amount: amount,
	})
	return shared.OK
}

func (w *workerHandle) Pickup(resource world.Resource) shared.ReturnCode {
	if w.Spawning() {
		return shared.Busy
	}
	pile, ok := w.host.piles[resource.Pos()]
	if !ok || pile.id != resource.ID() {
		return shared.InvalidTarget
	}
	if !w.state.has(shared.PartCarry) {
		return shared.NoBodypart
	}
	if !w.state.pos.IsNearTo(pile.pos) {
		return shared.NotInRange
	}
	if w.FreeCapacity() <= 0 {
		return shared.Full
	}
	w.host.orders.pickups[w.state.name] = pile.pos
	return shared.OK
}
