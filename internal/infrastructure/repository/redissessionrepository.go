package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tasknest/tasknest/internal/domain/user"
	"github.com/tasknest/tasknest/internal/shared/biztime"
	"github.com/tasknest/tasknest/internal/shared/errors"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

const (
	redisSessionKeyPrefix     = "session:"
	redisUserSessionsPrefix   = "user_sessions:"
	redisSessionDevicePrefix  = "session_device:"
	redisSessionScanBatchSize = 100
)

// createSessionScript replaces the device's previous session and stores the new one.
// KEYS: session, user set, device. ARGV: id, expires_at ms, session prefix, field/value pairs...
var createSessionScript = redis.NewScript(`
local old = redis.call('GET', KEYS[3])
if old and old ~= ARGV[1] then
  redis.call('DEL', ARGV[3] .. old)
  redis.call('SREM', KEYS[2], old)
end
redis.call('HSET', KEYS[1], unpack(ARGV, 4))
redis.call('PEXPIREAT', KEYS[1], ARGV[2])
redis.call('SADD', KEYS[2], ARGV[1])
redis.call('SET', KEYS[3], ARGV[1])
redis.call('PEXPIREAT', KEYS[3], ARGV[2])
return 1
`)

// swapRefreshHashScript rotates the hash only while the stored one matches ARGV[1].
var swapRefreshHashScript = redis.NewScript(`
local cur = redis.call('HMGET', KEYS[1], 'refresh_token_hash', 'expires_at', 'user_id', 'device_id')
if not cur[1] or cur[1] ~= ARGV[1] then
  return 0
end
if tonumber(cur[2]) <= tonumber(ARGV[4]) then
  return 0
end
redis.call('HSET', KEYS[1], 'refresh_token_hash', ARGV[2], 'expires_at', ARGV[3], 'updated_at', ARGV[4])
redis.call('PEXPIREAT', KEYS[1], ARGV[3])
redis.call('PEXPIREAT', ARGV[5] .. cur[3] .. ':' .. cur[4], ARGV[3])
return 1
`)

// deleteIfRefreshHashScript removes the session only while the stored hash matches ARGV[1].
var deleteIfRefreshHashScript = redis.NewScript(`
local cur = redis.call('HMGET', KEYS[1], 'refresh_token_hash', 'user_id', 'device_id')
if not cur[1] or cur[1] ~= ARGV[1] then
  return 0
end
redis.call('DEL', KEYS[1])
redis.call('SREM', ARGV[3] .. cur[2], ARGV[2])
local dk = ARGV[4] .. cur[2] .. ':' .. cur[3]
if redis.call('GET', dk) == ARGV[2] then
  redis.call('DEL', dk)
end
return 1
`)

// deleteUserSessionsScript removes every session in the user set except ARGV[1].
var deleteUserSessionsScript = redis.NewScript(`
local n = 0
for _, sid in ipairs(redis.call('SMEMBERS', KEYS[1])) do
  if sid ~= ARGV[1] then
    local sk = ARGV[2] .. sid
    local did = redis.call('HGET', sk, 'device_id')
    if did then
      n = n + redis.call('DEL', sk)
      local dk = ARGV[3] .. did
      if redis.call('GET', dk) == sid then
        redis.call('DEL', dk)
      end
    end
    redis.call('SREM', KEYS[1], sid)
  end
end
return n
`)

// RedisSessionRepository stores each session as a hash with a native TTL, indexed
// by a per-user set and a per-device pointer key.
type RedisSessionRepository struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisSessionRepository(client *redis.Client, logger logger.Interface) user.SessionRepository {
	return &RedisSessionRepository{
		client: client,
		logger: logger,
	}
}

func sessionKey(id string) string {
	return redisSessionKeyPrefix + id
}

func userSessionsKey(userID string) string {
	return redisUserSessionsPrefix + userID
}

func deviceKey(userID, deviceID string) string {
	return redisSessionDevicePrefix + userID + ":" + deviceID
}

func (r *RedisSessionRepository) Create(ctx context.Context, s *user.Session) error {
	args := []interface{}{s.ID, s.ExpiresAt.UnixMilli(), redisSessionKeyPrefix}
	args = append(args, sessionFields(s)...)

	keys := []string{sessionKey(s.ID), userSessionsKey(s.UserID), deviceKey(s.UserID, s.DeviceID)}
	if err := createSessionScript.Run(ctx, r.client, keys, args...).Err(); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *RedisSessionRepository) GetByID(ctx context.Context, sessionID string) (*user.Session, error) {
	values, err := r.client.HGetAll(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session by ID: %w", err)
	}
	if len(values) == 0 {
		return nil, errors.NewNotFoundError("session not found")
	}

	s, err := parseSessionHash(sessionID, values)
	if err != nil {
		return nil, err
	}
	if s.IsExpired() {
		return nil, errors.NewNotFoundError("session not found")
	}
	return s, nil
}

func (r *RedisSessionRepository) ListByUserID(ctx context.Context, userID string) ([]*user.Session, error) {
	ids, err := r.client.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions by user ID: %w", err)
	}
	if len(ids) == 0 {
		return []*user.Session{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, sessionKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to load user sessions: %w", err)
	}

	sessions := make([]*user.Session, 0, len(ids))
	for i, cmd := range cmds {
		values := cmd.Val()
		if len(values) == 0 {
			continue
		}
		s, err := parseSessionHash(ids[i], values)
		if err != nil {
			r.logger.Warnw("skipping unreadable session", "session_id", ids[i], "error", err)
			continue
		}
		if !s.IsExpired() {
			sessions = append(sessions, s)
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	return sessions, nil
}

func (r *RedisSessionRepository) SwapRefreshHash(ctx context.Context, sessionID, oldHash, newHash string, newExpiresAt time.Time) error {
	now := nowMillis()
	swapped, err := swapRefreshHashScript.Run(ctx, r.client,
		[]string{sessionKey(sessionID)},
		oldHash, newHash, newExpiresAt.UnixMilli(), now, redisSessionDevicePrefix,
	).Int()
	if err != nil {
		return fmt.Errorf("failed to rotate session: %w", err)
	}
	if swapped == 0 {
		return errors.NewNotFoundError("session not found")
	}
	return nil
}

func (r *RedisSessionRepository) DeleteIfRefreshHash(ctx context.Context, sessionID, hash string) error {
	deleted, err := deleteIfRefreshHashScript.Run(ctx, r.client,
		[]string{sessionKey(sessionID)},
		hash, sessionID, redisUserSessionsPrefix, redisSessionDevicePrefix,
	).Int()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if deleted == 0 {
		return errors.NewNotFoundError("session not found")
	}
	return nil
}

func (r *RedisSessionRepository) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	return r.deleteUserSessions(ctx, userID, "")
}

func (r *RedisSessionRepository) DeleteByUserIDExcept(ctx context.Context, userID, keepSessionID string) (int64, error) {
	return r.deleteUserSessions(ctx, userID, keepSessionID)
}

func (r *RedisSessionRepository) deleteUserSessions(ctx context.Context, userID, keep string) (int64, error) {
	n, err := deleteUserSessionsScript.Run(ctx, r.client,
		[]string{userSessionsKey(userID)},
		keep, redisSessionKeyPrefix, redisSessionDevicePrefix+userID+":",
	).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return n, nil
}

// DeleteExpired drops index entries whose session hash is gone or past now.
// Redis evicts the hashes themselves through their TTL.
func (r *RedisSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var removed int64
	nowMs := now.UnixMilli()

	iter := r.client.Scan(ctx, 0, redisUserSessionsPrefix+"*", redisSessionScanBatchSize).Iterator()
	for iter.Next(ctx) {
		setKey := iter.Val()
		ids, err := r.client.SMembers(ctx, setKey).Result()
		if err != nil {
			return removed, fmt.Errorf("failed to read %s: %w", setKey, err)
		}

		for _, id := range ids {
			expiresAt, err := r.client.HGet(ctx, sessionKey(id), "expires_at").Int64()
			if err != nil && !stderrors.Is(err, redis.Nil) {
				return removed, fmt.Errorf("failed to read session %s: %w", id, err)
			}
			if err == nil && expiresAt > nowMs {
				continue
			}

			pipe := r.client.TxPipeline()
			pipe.Del(ctx, sessionKey(id))
			pipe.SRem(ctx, setKey, id)
			if _, err := pipe.Exec(ctx); err != nil {
				return removed, fmt.Errorf("failed to purge session %s: %w", id, err)
			}
			removed++
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("failed to scan session index: %w", err)
	}

	return removed, nil
}

func nowMillis() int64 {
	return biztime.NowUTC().UnixMilli()
}

func sessionFields(s *user.Session) []interface{} {
	return []interface{}{
		"user_id", s.UserID,
		"device_id", s.DeviceID,
		"refresh_token_hash", s.RefreshTokenHash,
		"ip_address", s.IPAddress,
		"user_agent", s.UserAgent,
		"expires_at", s.ExpiresAt.UnixMilli(),
		"created_at", s.CreatedAt.UnixMilli(),
		"updated_at", s.UpdatedAt.UnixMilli(),
	}
}

func parseSessionHash(id string, values map[string]string) (*user.Session, error) {
	parse := func(field string) (time.Time, error) {
		ms, err := strconv.ParseInt(values[field], 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid %s on session %s: %w", field, id, err)
		}
		return time.UnixMilli(ms).UTC(), nil
	}

	expiresAt, err := parse("expires_at")
	if err != nil {
		return nil, err
	}
	createdAt, err := parse("created_at")
	if err != nil {
		return nil, err
	}
	updatedAt, err := parse("updated_at")
	if err != nil {
		return nil, err
	}

	return &user.Session{
		ID:               id,
		UserID:           values["user_id"],
		DeviceID:         values["device_id"],
		RefreshTokenHash: values["refresh_token_hash"],
		IPAddress:        values["ip_address"],
		UserAgent:        values["user_agent"],
		ExpiresAt:        expiresAt,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}, nil
}
