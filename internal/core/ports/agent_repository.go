package ports

import (
	"context"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"
)

// AgentRepository defines the persistence contract for delivery agents.
// Lookups only see active agents.
type AgentRepository interface {
	// Add persists a new agent. A duplicate phone yields errs.ErrValueIsInvalid.
	Add(ctx context.Context, aggregate *agent.Agent) error

	// Update persists an agent with the same version check as OrderRepository.Update.
	Update(ctx context.Context, aggregate *agent.Agent) error

	// GetForUpdate retrieves an active agent and locks its row. Missing or
	// deactivated agents yield errs.ErrObjectNotFound.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*agent.Agent, error)

	// PhoneTaken reports whether another agent than except already uses phone.
	PhoneTaken(ctx context.Context, phone kernel.Phone, except *kernel.UUID) (bool, error)
}
