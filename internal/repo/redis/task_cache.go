package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avelinsk/task-manager/internal/usecase"
)

const (
	userTasksKeyPrefix    = "tasks:user:"
	projectTasksKeyPrefix = "tasks:project:"
)

// TaskCache stores assembled task projections so list queries skip the
// relation resolution on repeat reads.
type TaskCache struct {
	client *redis.Client
}

func NewTaskCache(client *redis.Client) *TaskCache {
	return &TaskCache{client: client}
}

func (c *TaskCache) GetUserTasks(ctx context.Context, userID string) ([]usecase.TaskOutput, error) {
	return c.get(ctx, userTasksKeyPrefix+userID)
}

func (c *TaskCache) SetUserTasks(ctx context.Context, userID string, tasks []usecase.TaskOutput, ttl time.Duration) error {
	return c.set(ctx, userTasksKeyPrefix+userID, tasks, ttl)
}

func (c *TaskCache) GetProjectTasks(ctx context.Context, projectID string) ([]usecase.TaskOutput, error) {
	return c.get(ctx, projectTasksKeyPrefix+projectID)
}

func (c *TaskCache) SetProjectTasks(ctx context.Context, projectID string, tasks []usecase.TaskOutput, ttl time.Duration) error {
	return c.set(ctx, projectTasksKeyPrefix+projectID, tasks, ttl)
}

// InvalidateTask drops both list keys a task write can stale.
func (c *TaskCache) InvalidateTask(ctx context.Context, userID, projectID string) error {
	return c.client.Del(ctx, userTasksKeyPrefix+userID, projectTasksKeyPrefix+projectID).Err()
}

// Ping verifies the connection.
func (c *TaskCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *TaskCache) get(ctx context.Context, key string) ([]usecase.TaskOutput, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var tasks []usecase.TaskOutput
	if err := json.Unmarshal([]byte(data), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *TaskCache) set(ctx context.Context, key string, tasks []usecase.TaskOutput, ttl time.Duration) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}
