// Package agentrepo persists delivery agents.
package agentrepo

import (
	"time"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AgentDTO is the row of the delivery_agents table. Agents are soft-deleted
// through IsActive; the phone stays unique across active and inactive rows.
type AgentDTO struct {
	ID                 uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name               string      `gorm:"type:varchar(100);not null"`
	Phone              string      `gorm:"type:varchar(10);not null;uniqueIndex"`
	Email              *string     `gorm:"type:varchar(255)"`
	Status             int         `gorm:"type:smallint;not null;index"`
	Location           LocationDTO `gorm:"embedded;embeddedPrefix:current_"`
	LastLocationUpdate *time.Time
	IsActive           bool      `gorm:"not null;default:true;index"`
	VehicleType        string    `gorm:"type:varchar(50);not null;default:''"`
	VehicleNumber      string    `gorm:"type:varchar(20);not null;default:''"`
	Version            int64     `gorm:"not null;default:1"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

func (AgentDTO) TableName() string {
	return "delivery_agents"
}

// LocationDTO holds the last reported position. Both columns are NULL until
// the first report.
type LocationDTO struct {
	Latitude  *float64 `gorm:"type:double precision"`
	Longitude *float64 `gorm:"type:double precision"`
}

func fromDomain(a *agent.Agent) AgentDTO {
	var email *string
	if e := a.Email(); e != nil {
		value := e.String()
		email = &value
	}

	var location LocationDTO
	if loc := a.Location(); loc != nil {
		lat, long := loc.Latitude(), loc.Longitude()
		location = LocationDTO{Latitude: &lat, Longitude: &long}
	}

	return AgentDTO{
		ID:                 a.ID().Bytes(),
		Name:               a.Name(),
		Phone:              a.Phone().String(),
		Email:              email,
		Status:             int(a.Status()),
		Location:           location,
		LastLocationUpdate: a.LastLocationUpdate(),
		IsActive:           a.IsActive(),
		VehicleType:        a.Vehicle().Type(),
		VehicleNumber:      a.Vehicle().Number(),
		Version:            a.Version(),
		CreatedAt:          a.CreatedAt(),
		UpdatedAt:          a.UpdatedAt(),
	}
}

// mutableColumns is everything but the id and creation time. A map is used so
// that cleared emails and false flags are written.
func mutableColumns(dto AgentDTO) map[string]any {
	return map[string]any{
		"name":                 dto.Name,
		"phone":                dto.Phone,
		"email":                dto.Email,
		"status":               dto.Status,
		"current_latitude":     dto.Location.Latitude,
		"current_longitude":    dto.Location.Longitude,
		"last_location_update": dto.LastLocationUpdate,
		"is_active":            dto.IsActive,
		"vehicle_type":         dto.VehicleType,
		"vehicle_number":       dto.VehicleNumber,
		"updated_at":           dto.UpdatedAt,
		"version":              dto.Version + 1,
	}
}

func toDomain(dto AgentDTO) (*agent.Agent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	phone, err := kernel.NewPhone(dto.Phone)
	if err != nil {
		return nil, err
	}

	var email *kernel.Email
	if dto.Email != nil {
		e, emailErr := kernel.NewEmail(*dto.Email)
		if emailErr != nil {
			return nil, emailErr
		}
		email = &e
	}

	var location *kernel.GeoLocation
	if dto.Location.Latitude != nil && dto.Location.Longitude != nil {
		loc, locErr := kernel.NewGeoLocation(*dto.Location.Latitude, *dto.Location.Longitude)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	vehicle, err := agent.NewVehicle(dto.VehicleType, dto.VehicleNumber)
	if err != nil {
		return nil, err
	}

	var lastUpdate *time.Time
	if dto.LastLocationUpdate != nil {
		at := dto.LastLocationUpdate.UTC()
		lastUpdate = &at
	}

	return agent.RestoreAgent(agent.State{
		ID:                 id,
		Name:               dto.Name,
		Phone:              phone,
		Email:              email,
		Status:             agent.Status(dto.Status),
		Location:           location,
		LastLocationUpdate: lastUpdate,
		Active:             dto.IsActive,
		Vehicle:            vehicle,
		CreatedAt:          dto.CreatedAt.UTC(),
		UpdatedAt:          dto.UpdatedAt.UTC(),
		Version:            dto.Version,
	})
}
