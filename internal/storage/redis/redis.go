// redis предоставляет реализацию storage.ProfilesStorage на базе Redis.
// Раскладка данных повторяет исходную KV-схему: один JSON-документ
// на профиль по ключу "<prefix><user_id>".
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// defaultPrefix — префикс ключей профилей по умолчанию.
const defaultPrefix = "profile:"

type ProfilesStorage struct {
	rdb    *redis.Client
	prefix string
}

// New создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "profile:". Соединение проверяется
// ping-ом на старте (fail-fast).
func New(ctx context.Context, redisURL, prefix string) (*ProfilesStorage, error) {
	const op = "storage/redis/New"

	if prefix == "" {
		prefix = defaultPrefix
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &ProfilesStorage{rdb: rdb, prefix: prefix}, nil
}

func (s *ProfilesStorage) key(userID string) string { return s.prefix + userID }

// Close закрывает клиент Redis.
// Должен вызываться при остановке приложения.
func (s *ProfilesStorage) Close() {
	_ = s.rdb.Close()
}
