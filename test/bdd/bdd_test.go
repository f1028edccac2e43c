package bdd

import (
	"testing"

	"github.com/andrescamacho/hive-go/test/bdd/steps"
	"github.com/cucumber/godog"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/domain", "features/adapters"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	// NOTE: the hive context owns the shared world steps ("a worker ... at"),
	// so it is registered before the simulation context
	steps.InitializeHiveScenario(sc)
	steps.InitializeSimulationScenario(sc)
}
