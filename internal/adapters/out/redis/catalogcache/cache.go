// Package catalogcache keeps menu entries in Redis in front of the catalog
// repository. Entries expire after a TTL; price changes become visible once
// the cached entry expires.
package catalogcache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/core/ports"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	DefaultTTL = 5 * time.Minute

	keyPrefix = "menu_item:"
)

type entry struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"is_available"`
}

// Catalog implements ports.MenuCatalog. Redis failures never fail a lookup:
// they are logged and the source answers instead.
type Catalog struct {
	client *redis.Client
	source ports.MenuCatalog
	ttl    time.Duration
	logger *zap.Logger
}

func NewCatalog(client *redis.Client, source ports.MenuCatalog, ttl time.Duration, logger *zap.Logger) *Catalog {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		client: client,
		source: source,
		ttl:    ttl,
		logger: logger.With(zap.String("component", "catalog_cache")),
	}
}

func (c *Catalog) Lookup(ctx context.Context, ids []int64) (map[int64]menu.Item, error) {
	result := make(map[int64]menu.Item, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	missing := c.cached(ctx, ids, result)
	if len(missing) == 0 {
		return result, nil
	}

	loaded, err := c.source.Lookup(ctx, missing)
	if err != nil {
		return nil, err
	}

	for id, item := range loaded {
		result[id] = item
	}
	c.store(ctx, loaded)
	return result, nil
}

// Invalidate drops cached entries, for example after a catalog edit.
func (c *Catalog) Invalidate(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys(ids)...).Err()
}

func (c *Catalog) cached(ctx context.Context, ids []int64, result map[int64]menu.Item) []int64 {
	values, err := c.client.MGet(ctx, keys(ids)...).Result()
	if err != nil {
		c.logger.Warn("catalog cache read failed", zap.Error(err))
		return ids
	}

	var missing []int64
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			missing = append(missing, ids[i])
			continue
		}

		item, decodeErr := decode(raw)
		if decodeErr != nil {
			c.logger.Warn("catalog cache entry is corrupt",
				zap.Int64("menu_item_id", ids[i]), zap.Error(decodeErr))
			missing = append(missing, ids[i])
			continue
		}
		result[ids[i]] = item
	}
	return missing
}

func (c *Catalog) store(ctx context.Context, items map[int64]menu.Item) {
	if len(items) == 0 {
		return
	}

	pipe := c.client.Pipeline()
	for id, item := range items {
		data, err := json.Marshal(entry{
			ID:          item.ID(),
			Name:        item.Name(),
			Price:       item.Price().Decimal(),
			IsAvailable: item.IsAvailable(),
		})
		if err != nil {
			c.logger.Warn("catalog cache encode failed", zap.Int64("menu_item_id", id), zap.Error(err))
			continue
		}
		pipe.Set(ctx, key(id), data, c.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("catalog cache write failed", zap.Error(err))
	}
}

func decode(raw string) (menu.Item, error) {
	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return menu.Item{}, err
	}
	price, err := kernel.NewMoney(e.Price)
	if err != nil {
		return menu.Item{}, fmt.Errorf("price: %w", err)
	}
	return menu.NewItem(e.ID, e.Name, price, e.IsAvailable)
}

func key(id int64) string {
	return keyPrefix + strconv.FormatInt(id, 10)
}

func keys(ids []int64) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = key(id)
	}
	return out
}
