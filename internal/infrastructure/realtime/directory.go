package realtime

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Directory tracks which user is reachable over which connection. One entry
// per user; a newer connection for the same user replaces the older one.
type Directory interface {
	// Set records the user's current connection, replacing any previous one.
	Set(ctx context.Context, userID, connID uuid.UUID) error
	// Remove drops the user's entry only if connID is still the current
	// connection, so a stale disconnect never evicts a newer connection.
	Remove(ctx context.Context, userID, connID uuid.UUID) error
	IsUserOnline(ctx context.Context, userID uuid.UUID) (bool, error)
	OnlineCount(ctx context.Context) (int64, error)
}

// InMemoryDirectory is a process-local directory for single-node deployments
type InMemoryDirectory struct {
	mu    sync.RWMutex
	users map[uuid.UUID]uuid.UUID
}

// NewInMemoryDirectory creates an empty in-memory directory
func NewInMemoryDirectory() *InMemoryDirectory {
	return &InMemoryDirectory{users: make(map[uuid.UUID]uuid.UUID)}
}

func (d *InMemoryDirectory) Set(_ context.Context, userID, connID uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[userID] = connID
	return nil
}

func (d *InMemoryDirectory) Remove(_ context.Context, userID, connID uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if current, ok := d.users[userID]; ok && current == connID {
		delete(d.users, userID)
	}
	return nil
}

func (d *InMemoryDirectory) IsUserOnline(_ context.Context, userID uuid.UUID) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.users[userID]
	return ok, nil
}

func (d *InMemoryDirectory) OnlineCount(_ context.Context) (int64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return int64(len(d.users)), nil
}

// removeIfCurrent deletes the hash field only when it still holds connID
var removeIfCurrent = redis.NewScript(`
if redis.call("HGET", KEYS[1], ARGV[1]) == ARGV[2] then
	return redis.call("HDEL", KEYS[1], ARGV[1])
end
return 0
`)

// RedisDirectory shares the presence directory across processes
type RedisDirectory struct {
	client *redis.Client
	key    string
}

// NewRedisDirectory creates a Redis-backed directory
func NewRedisDirectory(client *redis.Client) *RedisDirectory {
	return &RedisDirectory{
		client: client,
		key:    "realtime:online",
	}
}

func (d *RedisDirectory) Set(ctx context.Context, userID, connID uuid.UUID) error {
	return d.client.HSet(ctx, d.key, userID.String(), connID.String()).Err()
}

func (d *RedisDirectory) Remove(ctx context.Context, userID, connID uuid.UUID) error {
	return removeIfCurrent.Run(ctx, d.client, []string{d.key}, userID.String(), connID.String()).Err()
}

func (d *RedisDirectory) IsUserOnline(ctx context.Context, userID uuid.UUID) (bool, error) {
	return d.client.HExists(ctx, d.key, userID.String()).Result()
}

func (d *RedisDirectory) OnlineCount(ctx context.Context) (int64, error) {
	return d.client.HLen(ctx, d.key).Result()
}

var (
	_ Directory = (*InMemoryDirectory)(nil)
	_ Directory = (*RedisDirectory)(nil)
)
