package addrspace

import (
	"context"

	"addrspaced/internal/addrspace/status"
)

// RegisterNodes is a passthrough: it validates the request and returns
// the same node ids unchanged. Real OPC UA servers may use registration
// to return a more efficient numeric alias, but address-space
// traversal itself needs nothing beyond validating the request shape.
func (s *Service) RegisterNodes(ctx context.Context, nodesToRegister []NodeId) ([]NodeId, *status.Error) {
	if len(nodesToRegister) == 0 {
		return nil, status.New(status.BadNothingToDo)
	}
	if s.maxNodesPerRegisterNodes > 0 && uint32(len(nodesToRegister)) > s.maxNodesPerRegisterNodes {
		return nil, status.New(status.BadTooManyOperations)
	}
	out := make([]NodeId, len(nodesToRegister))
	copy(out, nodesToRegister)
	return out, nil
}

// UnregisterNodes retires previously registered node ids. Empty input
// returns BadNothingToDo and returns immediately: the original
// ua_services_view.c falls through into the maxNodesPerRegisterNodes
// check even on an empty array (harmless there since the check can
// never trigger on size 0, but still a logic bug); this implementation
// returns as soon as the condition is detected, per spec.md §9's
// redesign decision.
func (s *Service) UnregisterNodes(ctx context.Context, nodesToUnregister []NodeId) *status.Error {
	if len(nodesToUnregister) == 0 {
		return status.New(status.BadNothingToDo)
	}
	if s.maxNodesPerRegisterNodes > 0 && uint32(len(nodesToUnregister)) > s.maxNodesPerRegisterNodes {
		return status.New(status.BadTooManyOperations)
	}
	return nil
}
