package state

import "github.com/ethform/goevm/core/types"

// JournaledHost adapts a JournaledState plus a fixed Environment into
// the full method set core/vm.Host requires. core/state never imports
// core/vm — this type satisfies that interface structurally, since
// every method signature below uses only core/types names that
// core/vm also aliases, per spec.md §4.11.
type JournaledHost struct {
	*JournaledState
	Env *types.Environment
}

// NewJournaledHost pairs state with env into a ready-to-use Host.
func NewJournaledHost(state *JournaledState, env *types.Environment) *JournaledHost {
	return &JournaledHost{JournaledState: state, Env: env}
}

func (h *JournaledHost) GetEnvironment() *types.Environment { return h.Env }
