package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const agentColumns = `
	id,
	name,
	phone,
	email,
	status,
	current_latitude,
	current_longitude,
	last_location_update,
	is_active,
	vehicle_type,
	vehicle_number,
	created_at,
	updated_at`

// ListAgentsQueryHandler reads active agents newest first.
type ListAgentsQueryHandler struct {
	db *gorm.DB
}

func NewListAgentsQueryHandler(db *gorm.DB) ListAgentsQueryHandler {
	return ListAgentsQueryHandler{db: db}
}

func (h ListAgentsQueryHandler) Handle(ctx context.Context, query ListAgentsQuery) (ListAgentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListAgentsQueryResponse{}, err
	}

	where := "WHERE is_active = true"
	var args []any
	if status := query.Status(); status != nil {
		where += " AND status = ?"
		args = append(args, int(*status))
	}

	db := h.db.WithContext(ctx)
	pagination := query.Pagination()
	response := ListAgentsQueryResponse{
		Agents: make([]AgentView, 0),
		Page:   pagination.Page(),
		Size:   pagination.Size(),
	}

	if err := db.Raw(`SELECT COUNT(*) FROM delivery_agents `+where, args...).Scan(&response.Total).Error; err != nil {
		return ListAgentsQueryResponse{}, err
	}

	rows, err := db.Raw(`
		SELECT `+agentColumns+`
		FROM delivery_agents
		`+where+`
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, append(args, pagination.Size(), pagination.Offset())...).Rows()
	if err != nil {
		return ListAgentsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		view, scanErr := scanAgentView(rows)
		if scanErr != nil {
			return ListAgentsQueryResponse{}, scanErr
		}
		response.Agents = append(response.Agents, view)
	}

	if err = rows.Err(); err != nil {
		return ListAgentsQueryResponse{}, err
	}

	return response, nil
}

func scanAgentView(rows rowScanner) (AgentView, error) {
	var view AgentView
	var id uuid.UUID
	var status int
	var lastUpdate *time.Time

	err := rows.Scan(
		&id,
		&view.Name,
		&view.Phone,
		&view.Email,
		&status,
		&view.Latitude,
		&view.Longitude,
		&lastUpdate,
		&view.IsActive,
		&view.VehicleType,
		&view.VehicleNumber,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		return AgentView{}, err
	}

	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return AgentView{}, err
	}
	view.Status = agent.Status(status)
	view.LastLocationUpdate = utc(lastUpdate)
	view.CreatedAt = view.CreatedAt.UTC()
	view.UpdatedAt = view.UpdatedAt.UTC()
	return view, nil
}
