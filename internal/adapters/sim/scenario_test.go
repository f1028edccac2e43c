package sim_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hive-go/internal/adapters/sim"
	"github.com/andrescamacho/hive-go/internal/domain/shared"
)

func TestDefaultScenario(t *testing.T) {
	scenario, err := sim.DefaultScenario()
	require.NoError(t, err)

	host, err := sim.NewHost(scenario)
	require.NoError(t, err)

	snapshot := host.Snapshot()
	assert.Equal(t, []string{"W1N1"}, snapshot.Rooms())
	assert.Equal(t, shared.Tick(1), snapshot.Time())
	room, ok := snapshot.Room("W1N1")
	require.True(t, ok)
	assert.Equal(t, sim.DefaultSpawnEnergy, room.EnergyAvailable())
	assert.Equal(t, sim.DefaultSpawnEnergy, room.EnergyCapacityAvailable())
	assert.Equal(t, []string{"spawn-w1n1"}, room.FacilityIDs())
	assert.Len(t, room.SourceIDs(), 2)
	assert.Empty(t, host.WorkerNames())
}

func TestLoadScenario_EmptyPathUsesDefault(t *testing.T) {
	scenario, err := sim.LoadScenario("")

	require.NoError(t, err)
	assert.Equal(t, "default", scenario.Name)
}

func TestLoadScenario_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two-rooms.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: two-rooms
rooms:
  - name: W1N1
    spawns: [{id: s1, x: 5, y: 5}]
  - name: E2S3
    energy: 10
    capacity: 550
    spawns: []
    sources: [{id: far, x: 1, y: 1}]
`), 0o644))

	scenario, err := sim.LoadScenario(path)
	require.NoError(t, err)
	host, err := sim.NewHost(scenario)
	require.NoError(t, err)

	snapshot := host.Snapshot()
	assert.Equal(t, []string{"E2S3", "W1N1"}, snapshot.Rooms())
	room, _ := snapshot.Room("E2S3")
	assert.Equal(t, 10, room.EnergyAvailable())
	assert.Equal(t, 550, room.EnergyCapacityAvailable())
	_, ok := snapshot.Source("far")
	assert.True(t, ok)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := sim.LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}

func TestParseScenario_RejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "rooms: [unclosed"},
		{"missing rooms", "name: empty"},
		{"bad room name", "name: x\nrooms: [{name: nowhere, spawns: []}]"},
		{"unknown field", "name: x\ncolour: red\nrooms: [{name: W1N1, spawns: []}]"},
		{"coordinate off grid", "name: x\nrooms: [{name: W1N1, spawns: [{id: s, x: 50, y: 0}]}]"},
		{"unknown body part", "name: x\nrooms: [{name: W1N1, spawns: []}]\nworkers: [{name: w, room: W1N1, x: 1, y: 1, body: [wings]}]"},
		{"empty pile", "name: x\nrooms: [{name: W1N1, spawns: []}]\ndropped: [{room: W1N1, x: 1, y: 1, amount: 0}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sim.ParseScenario([]byte(tt.doc))

			assert.Error(t, err)
		})
	}
}

func TestNewHost_RejectsInconsistentScenario(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"duplicate spawn", "name: x\nrooms: [{name: W1N1, spawns: [{id: s, x: 1, y: 1}, {id: s, x: 2, y: 2}]}]"},
		{"worker in unknown room", "name: x\nrooms: [{name: W1N1, spawns: []}]\nworkers: [{name: w, room: W2N2, x: 1, y: 1, body: [move]}]"},
		{"duplicate worker", "name: x\nrooms: [{name: W1N1, spawns: []}]\nworkers: [{name: w, room: W1N1, x: 1, y: 1, body: [move]}, {name: w, room: W1N1, x: 2, y: 2, body: [move]}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario, err := sim.ParseScenario([]byte(tt.doc))
			require.NoError(t, err)

			_, err = sim.NewHost(scenario)

			assert.Error(t, err)
		})
	}
}
