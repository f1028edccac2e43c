package colony

import (
	"github.com/andrescamacho/hive-go/internal/application/common"
	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/domain/world"
)

// RegisterHandlers wires every colony command and query into m
func RegisterHandlers(m common.Mediator, host world.Host, hives *HiveRepository, clock shared.Clock, observers ...TickObserver) error {
	registrations := []error{
		common.RegisterHandler[*RunTickCommand](m, NewRunTickHandler(host, hives, clock, observers...)),
		common.RegisterHandler[*AddTaskCommand](m, NewAddTaskHandler(host, hives)),
		common.RegisterHandler[*CancelTaskCommand](m, NewCancelTaskHandler(host, hives)),
		common.RegisterHandler[*GetMemoryQuery](m, NewGetMemoryHandler(host, hives)),
		common.RegisterHandler[*ResetMemoryCommand](m, NewResetMemoryHandler(hives)),
	}
	for _, err := range registrations {
		if err != nil {
			return err
		}
	}
	return nil
}
