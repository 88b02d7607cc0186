package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tasknest/tasknest/internal/domain/user"
	"github.com/tasknest/tasknest/internal/infrastructure/persistence/mappers"
	"github.com/tasknest/tasknest/internal/infrastructure/persistence/models"
	"github.com/tasknest/tasknest/internal/shared/biztime"
	"github.com/tasknest/tasknest/internal/shared/db"
	"github.com/tasknest/tasknest/internal/shared/errors"
)

// SessionRepository implements user.SessionRepository on gorm.
type SessionRepository struct {
	db     *gorm.DB
	txMgr  *db.TransactionManager
	mapper mappers.SessionMapper
}

func NewSessionRepository(gdb *gorm.DB) user.SessionRepository {
	return &SessionRepository{
		db:     gdb,
		txMgr:  db.NewTransactionManager(gdb),
		mapper: mappers.NewSessionMapper(),
	}
}

func (r *SessionRepository) Create(ctx context.Context, session *user.Session) error {
	model := r.mapper.ToModel(session)

	// A concurrent login on the same device can win the insert; retry once.
	for attempt := 0; attempt < 2; attempt++ {
		err := r.txMgr.RunInTransaction(ctx, func(ctx context.Context) error {
			tx := db.GetTxFromContext(ctx, r.db)
			if err := tx.Where("user_id = ? AND device_id = ?", model.UserID, model.DeviceID).
				Delete(&models.SessionModel{}).Error; err != nil {
				return fmt.Errorf("failed to replace device session: %w", err)
			}
			if err := tx.Create(model).Error; err != nil {
				return fmt.Errorf("failed to create session: %w", err)
			}
			return nil
		})
		if err == nil {
			return nil
		}
		if !errors.IsDuplicateError(err) {
			return err
		}
	}
	return errors.NewConflictError("session for device is being replaced concurrently")
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*user.Session, error) {
	var model models.SessionModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.NotExpired(biztime.NowUTC())).
		Where("id = ?", sessionID).
		First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("session not found")
		}
		return nil, fmt.Errorf("failed to get session by ID: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *SessionRepository) ListByUserID(ctx context.Context, userID string) ([]*user.Session, error) {
	var sessionModels []models.SessionModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.NotExpired(biztime.NowUTC()), db.OrderedBy("created_at ASC, id ASC")).
		Where("user_id = ?", userID).
		Find(&sessionModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions by user ID: %w", err)
	}

	sessions := make([]*user.Session, len(sessionModels))
	for i := range sessionModels {
		sessions[i] = r.mapper.ToDomain(&sessionModels[i])
	}
	return sessions, nil
}

func (r *SessionRepository) SwapRefreshHash(ctx context.Context, sessionID, oldHash, newHash string, newExpiresAt time.Time) error {
	now := biztime.NowUTC()
	result := db.GetTxFromContext(ctx, r.db).Model(&models.SessionModel{}).
		Scopes(db.NotExpired(now)).
		Where("id = ? AND refresh_token_hash = ?", sessionID, oldHash).
		Updates(map[string]any{
			"refresh_token_hash": newHash,
			"expires_at":         newExpiresAt.UTC(),
			"updated_at":         now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to rotate session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("session not found")
	}
	return nil
}

func (r *SessionRepository) DeleteIfRefreshHash(ctx context.Context, sessionID, hash string) error {
	result := db.GetTxFromContext(ctx, r.db).
		Where("id = ? AND refresh_token_hash = ?", sessionID, hash).
		Delete(&models.SessionModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("session not found")
	}
	return nil
}

func (r *SessionRepository) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", userID).Delete(&models.SessionModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete sessions by user ID: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *SessionRepository) DeleteByUserIDExcept(ctx context.Context, userID, keepSessionID string) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND id <> ?", userID, keepSessionID).
		Delete(&models.SessionModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete other sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).Where("expires_at <= ?", now).Delete(&models.SessionModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
