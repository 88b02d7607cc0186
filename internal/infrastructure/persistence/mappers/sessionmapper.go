package mappers

import (
	"github.com/tasknest/tasknest/internal/domain/user"
	"github.com/tasknest/tasknest/internal/infrastructure/persistence/models"
)

// SessionMapper handles the conversion between Session domain entities and persistence models.
type SessionMapper interface {
	ToModel(entity *user.Session) *models.SessionModel
	ToDomain(model *models.SessionModel) *user.Session
}

type SessionMapperImpl struct{}

func NewSessionMapper() SessionMapper {
	return &SessionMapperImpl{}
}

func (m *SessionMapperImpl) ToModel(entity *user.Session) *models.SessionModel {
	if entity == nil {
		return nil
	}
	return &models.SessionModel{
		ID:               entity.ID,
		UserID:           entity.UserID,
		DeviceID:         entity.DeviceID,
		RefreshTokenHash: entity.RefreshTokenHash,
		IPAddress:        entity.IPAddress,
		UserAgent:        entity.UserAgent,
		ExpiresAt:        entity.ExpiresAt,
		CreatedAt:        entity.CreatedAt,
		UpdatedAt:        entity.UpdatedAt,
	}
}

func (m *SessionMapperImpl) ToDomain(model *models.SessionModel) *user.Session {
	if model == nil {
		return nil
	}
	return &user.Session{
		ID:               model.ID,
		UserID:           model.UserID,
		DeviceID:         model.DeviceID,
		RefreshTokenHash: model.RefreshTokenHash,
		IPAddress:        model.IPAddress,
		UserAgent:        model.UserAgent,
		ExpiresAt:        model.ExpiresAt.UTC(),
		CreatedAt:        model.CreatedAt.UTC(),
		UpdatedAt:        model.UpdatedAt.UTC(),
	}
}
