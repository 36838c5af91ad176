package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrListAgentsQueryIsNotConstructed = errors.New(
	"ListAgentsQuery must be created via NewListAgentsQuery constructor",
)

// ListAgentsQuery pages through active delivery agents, optionally filtered by status.
type ListAgentsQuery struct {
	pagination Pagination
	status     *agent.Status

	guard guard.ConstructorGuard
}

func NewListAgentsQuery(page int, size int, status *agent.Status) (ListAgentsQuery, error) {
	pagination, pageErr := NewPagination(page, size)

	var statusErr error
	if status != nil {
		statusErr = status.Validate()
	}

	if err := errors.Join(pageErr, statusErr); err != nil {
		return ListAgentsQuery{}, err
	}

	return ListAgentsQuery{
		pagination: pagination,
		status:     status,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListAgentsQuery) Validate() error {
	return q.guard.Validate(ErrListAgentsQueryIsNotConstructed)
}

func (q ListAgentsQuery) Pagination() Pagination {
	return q.pagination
}

func (q ListAgentsQuery) Status() *agent.Status {
	return q.status
}

// AgentView is the read model of a delivery agent.
type AgentView struct {
	ID                 kernel.UUID
	Name               string
	Phone              string
	Email              *string
	Status             agent.Status
	Latitude           *float64
	Longitude          *float64
	LastLocationUpdate *time.Time
	IsActive           bool
	VehicleType        string
	VehicleNumber      string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type ListAgentsQueryResponse struct {
	Agents []AgentView
	Total  int64
	Page   int
	Size   int
}
