package sim

import (
	"sort"

	"github.com/andrescamacho/hive-go/internal/domain/shared"
)

// SourceRegenTicks is how often a source refills to capacity
const SourceRegenTicks = 300

type spawnOrder struct {
	spawnID string
	name    string
	body    []shared.Part
}

type transferOrder struct {
	from    string
	to      string
	spawnID string
	amount  int
}

// orderBook holds the accepted orders of the current tick, keyed by worker
// name so a repeated order in the same tick replaces the previous one.
type orderBook struct {
	moves     map[string]shared.Position
	pulls     map[string]string
	follows   map[string]string
	harvests  map[string]string
	pickups   map[string]shared.Position
	transfers []transferOrder
	spawns    map[string]spawnOrder
}

func newOrderBook() orderBook {
	return orderBook{
		moves:    make(map[string]shared.Position),
		pulls:    make(map[string]string),
		follows:  make(map[string]string),
		harvests: make(map[string]string),
		pickups:  make(map[string]shared.Position),
		spawns:   make(map[string]spawnOrder),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (h *Host) resolve() {
	h.resolveHarvests()
	h.resolvePickups()
	h.resolveTransfers()
	h.resolveMovement()

	next := h.tick + 1
	h.resolveSpawns(next)
	h.resolveDeaths(next)
	h.regenerate(next)
	h.tick = next
}

func (h *Host) resolveHarvests() {
	for _, name := range sortedKeys(h.orders.harvests) {
		w, ok := h.workers[name]
		if !ok {
			continue
		}
		source := h.sources[h.orders.harvests[name]]
		amount := min(HarvestPerWorkPart*shared.CountParts(w.body, shared.PartWork), source.energy)
		source.energy -= amount
		h.dropEnergy(w.pos, amount)
	}
}

func (h *Host) resolvePickups() {
	for _, name := range sortedKeys(h.orders.pickups) {
		w, ok := h.workers[name]
		if !ok {
			continue
		}
		pos := h.orders.pickups[name]
		pile, ok := h.piles[pos]
		if !ok {
			continue
		}
		taken := min(w.capacity()-w.carried, pile.amount)
		w.carried += taken
		pile.amount -= taken
		if pile.amount <= 0 {
			delete(h.piles, pos)
		}
	}
}

func (h *Host) resolveTransfers() {
	for _, order := range h.orders.transfers {
		from, ok := h.workers[order.from]
		if !ok {
			continue
		}
		amount := order.amount
		if amount <= 0 || amount > from.carried {
			amount = from.carried
		}
		if order.spawnID != "" {
			room := h.rooms[h.spawns[order.spawnID].pos.Room]
			amount = min(amount, room.capacity-room.energy)
			room.energy += amount
		} else {
			to, ok := h.workers[order.to]
			if !ok {
				continue
			}
			amount = min(amount, to.capacity()-to.carried)
			to.carried += amount
		}
		from.carried -= amount
	}
}

func (h *Host) linked(a, b string) bool {
	return h.orders.pulls[a] == b || h.orders.pulls[b] == a
}

// resolveMovement applies own steps first, then tow links: a follower takes
// the previous tile of a leader that moved, and a mutual pair swaps tiles.
func (h *Host) resolveMovement() {
	old := make(map[string]shared.Position, len(h.workers))
	next := make(map[string]shared.Position, len(h.workers))
	for name, w := range h.workers {
		old[name] = w.pos
		next[name] = w.pos
	}

	for _, name := range sortedKeys(h.orders.moves) {
		target := h.orders.moves[name]
		if _, ok := old[name]; !ok || !inBounds(target) {
			continue
		}
		next[name] = target
	}

	settled := make(map[string]bool)
	for _, a := range sortedKeys(h.orders.follows) {
		b := h.orders.follows[a]
		if settled[a] || h.orders.follows[b] != a || !h.linked(a, b) {
			continue
		}
		if _, ok := old[b]; !ok {
			continue
		}
		next[a], next[b] = old[b], old[a]
		settled[a], settled[b] = true, true
	}

	for changed := true; changed; {
		changed = false
		for _, follower := range sortedKeys(h.orders.follows) {
			leader := h.orders.follows[follower]
			if settled[follower] || !h.linked(follower, leader) {
				continue
			}
			leaderOld, ok := old[leader]
			if !ok || next[leader] == leaderOld || next[follower] == leaderOld {
				continue
			}
			next[follower] = leaderOld
			changed = true
		}
	}

	for name, pos := range next {
		h.workers[name].pos = pos
	}
}

func (h *Host) resolveSpawns(next shared.Tick) {
	for _, id := range sortedKeys(h.orders.spawns) {
		order := h.orders.spawns[id]
		spawn := h.spawns[id]
		until := next + shared.Tick(SpawnTimePerPart*len(order.body))
		spawn.spawningUntil = until
		h.workers[order.name] = &workerState{
			name:          order.name,
			pos:           spawn.pos,
			body:          order.body,
			spawningUntil: until,
			diesAt:        until + shared.Tick(h.lifetime),
		}
	}
}

func (h *Host) resolveDeaths(next shared.Tick) {
	for name, w := range h.workers {
		if w.diesAt != 0 && next >= w.diesAt {
			h.dropEnergy(w.pos, w.carried)
			delete(h.workers, name)
		}
	}
}

func (h *Host) regenerate(next shared.Tick) {
	for _, r := range h.rooms {
		r.energy = min(r.capacity, r.energy+RoomEnergyRegen)
	}
	if next%SourceRegenTicks == 0 {
		for _, s := range h.sources {
			s.energy = s.capacity
		}
	}
}

func inBounds(pos shared.Position) bool {
	return pos.X >= 0 && pos.X < shared.RoomSize && pos.Y >= 0 && pos.Y < shared.RoomSize
}
