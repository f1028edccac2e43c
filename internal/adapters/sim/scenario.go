package sim

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/hive-go/internal/domain/shared"
)

const (
	// DefaultSpawnEnergy is the starting energy and capacity of a room
	DefaultSpawnEnergy = 300

	// DefaultSourceEnergy is the capacity of a source when the scenario omits it
	DefaultSourceEnergy = 3000

	scenarioSchemaURL = "mem://hive/scenario.schema.json"
)

//go:embed scenario.schema.json
var scenarioSchema string

//go:embed scenarios/default.yaml
var defaultScenario []byte

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// Scenario describes the initial state of a simulated world
type Scenario struct {
	Name           string           `yaml:"name"`
	Tick           uint32           `yaml:"tick"`
	WorkerLifetime int              `yaml:"worker_lifetime"`
	Rooms          []ScenarioRoom   `yaml:"rooms"`
	Workers        []ScenarioWorker `yaml:"workers"`
	Dropped        []ScenarioPile   `yaml:"dropped"`
}

type ScenarioRoom struct {
	Name     string           `yaml:"name"`
	Energy   *int             `yaml:"energy"`
	Capacity *int             `yaml:"capacity"`
	Spawns   []ScenarioSpawn  `yaml:"spawns"`
	Sources  []ScenarioSource `yaml:"sources"`
}

type ScenarioSpawn struct {
	ID string `yaml:"id"`
	X  int    `yaml:"x"`
	Y  int    `yaml:"y"`
}

type ScenarioSource struct {
	ID     string `yaml:"id"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Energy *int   `yaml:"energy"`
}

type ScenarioWorker struct {
	Name    string   `yaml:"name"`
	Room    string   `yaml:"room"`
	X       int      `yaml:"x"`
	Y       int      `yaml:"y"`
	Body    []string `yaml:"body"`
	Carried int      `yaml:"carried"`
}

type ScenarioPile struct {
	Room   string `yaml:"room"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Amount int    `yaml:"amount"`
}

func scenarioValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(scenarioSchemaURL, strings.NewReader(scenarioSchema)); err != nil {
			compileErr = fmt.Errorf("failed to add scenario schema: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(scenarioSchemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("failed to compile scenario schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// ParseScenario decodes a YAML scenario and validates it against the schema
func ParseScenario(data []byte) (*Scenario, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	// The validator expects JSON value types
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to normalise scenario: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return nil, fmt.Errorf("failed to normalise scenario: %w", err)
	}

	schema, err := scenarioValidator()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	return &scenario, nil
}

// LoadScenario reads a scenario file; an empty path selects the built-in default
func LoadScenario(path string) (*Scenario, error) {
	if path == "" {
		return DefaultScenario()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	return ParseScenario(data)
}

// DefaultScenario is a single room with one spawn and two sources
func DefaultScenario() (*Scenario, error) {
	return ParseScenario(defaultScenario)
}

// NewHost builds a simulated world from a scenario
func NewHost(s *Scenario) (*Host, error) {
	h := newHost(shared.Tick(s.Tick), s.WorkerLifetime)

	for _, r := range s.Rooms {
		if _, exists := h.rooms[r.Name]; exists {
			return nil, fmt.Errorf("duplicate room %s", r.Name)
		}
		room := &roomState{
			name:     r.Name,
			energy:   valueOr(r.Energy, DefaultSpawnEnergy),
			capacity: valueOr(r.Capacity, DefaultSpawnEnergy),
		}
		room.energy = min(room.energy, room.capacity)
		for _, sp := range r.Spawns {
			if _, exists := h.spawns[sp.ID]; exists {
				return nil, fmt.Errorf("duplicate spawn %s", sp.ID)
			}
			h.spawns[sp.ID] = &spawnState{id: sp.ID, pos: shared.Position{Room: r.Name, X: sp.X, Y: sp.Y}}
			room.spawnIDs = append(room.spawnIDs, sp.ID)
		}
		for _, src := range r.Sources {
			if _, exists := h.sources[src.ID]; exists {
				return nil, fmt.Errorf("duplicate source %s", src.ID)
			}
			capacity := valueOr(src.Energy, DefaultSourceEnergy)
			h.sources[src.ID] = &sourceState{
				id:       src.ID,
				pos:      shared.Position{Room: r.Name, X: src.X, Y: src.Y},
				energy:   capacity,
				capacity: capacity,
			}
			room.sourceIDs = append(room.sourceIDs, src.ID)
		}
		h.rooms[r.Name] = room
	}

	for _, w := range s.Workers {
		if _, ok := h.rooms[w.Room]; !ok {
			return nil, fmt.Errorf("worker %s placed in unknown room %s", w.Name, w.Room)
		}
		if _, exists := h.workers[w.Name]; exists {
			return nil, fmt.Errorf("duplicate worker %s", w.Name)
		}
		body := make([]shared.Part, 0, len(w.Body))
		for _, token := range w.Body {
			part, err := shared.ParsePart(token)
			if err != nil {
				return nil, fmt.Errorf("worker %s: %w", w.Name, err)
			}
			body = append(body, part)
		}
		state := &workerState{
			name:   w.Name,
			pos:    shared.Position{Room: w.Room, X: w.X, Y: w.Y},
			body:   body,
			diesAt: h.tick + shared.Tick(h.lifetime),
		}
		state.carried = min(w.Carried, state.capacity())
		h.workers[w.Name] = state
	}

	for _, p := range s.Dropped {
		if _, ok := h.rooms[p.Room]; !ok {
			return nil, fmt.Errorf("energy dropped in unknown room %s", p.Room)
		}
		h.dropEnergy(shared.Position{Room: p.Room, X: p.X, Y: p.Y}, p.Amount)
	}

	return h, nil
}

func valueOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
