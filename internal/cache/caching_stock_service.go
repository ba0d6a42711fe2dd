package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stockfolio/internal/models"
	"stockfolio/internal/pagination"
	"stockfolio/internal/services"
)

// opTimeout bounds every cache round trip so a slow Redis never holds up a
// request beyond this budget.
const opTimeout = 500 * time.Millisecond

// CachingStockService decorates a StockServicer with Redis caching. Reads are
// served from cache when possible; every write invalidates the whole
// namespace by key prefix. All cache interaction is best effort: failures
// fall through to the inner service and never fail the request.
type CachingStockService struct {
	inner     services.StockServicer
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingStockService decorates a StockServicer with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "stocks".
func NewCachingStockService(rdb *redis.Client, ttl time.Duration, inner services.StockServicer, namespace string) *CachingStockService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "stocks"
	}
	return &CachingStockService{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// ListStocks serves list queries from cache, keyed by the full query, and
// falls back to the inner service on a miss.
func (c *CachingStockService) ListStocks(query services.StockQuery) (*pagination.PageResponse[models.Stock], error) {
	if c.rdb == nil {
		return c.inner.ListStocks(query)
	}

	query.Defaults()
	key := c.listKey(query)

	var cached pagination.PageResponse[models.Stock]
	if c.fetch(key, &cached) {
		return &cached, nil
	}

	out, err := c.inner.ListStocks(query)
	if err != nil {
		return nil, err
	}
	c.store(key, out)
	return out, nil
}

// GetStockByID serves by-id lookups from cache.
func (c *CachingStockService) GetStockByID(id uint) (*models.Stock, error) {
	if c.rdb == nil {
		return c.inner.GetStockByID(id)
	}

	key := fmt.Sprintf("%s:id:%d", c.namespace, id)

	var cached models.Stock
	if c.fetch(key, &cached) {
		return &cached, nil
	}

	out, err := c.inner.GetStockByID(id)
	if err != nil {
		return nil, err
	}
	c.store(key, out)
	return out, nil
}

// GetStockBySymbol serves symbol lookups from cache, keyed case-insensitively.
func (c *CachingStockService) GetStockBySymbol(symbol string) (*models.Stock, error) {
	if c.rdb == nil {
		return c.inner.GetStockBySymbol(symbol)
	}

	key := fmt.Sprintf("%s:symbol:%s", c.namespace, safe(strings.ToLower(symbol)))

	var cached models.Stock
	if c.fetch(key, &cached) {
		return &cached, nil
	}

	out, err := c.inner.GetStockBySymbol(symbol)
	if err != nil {
		return nil, err
	}
	c.store(key, out)
	return out, nil
}

// CreateStock writes through to the inner service and invalidates the namespace.
func (c *CachingStockService) CreateStock(input services.StockInput) (*models.Stock, error) {
	out, err := c.inner.CreateStock(input)
	if err != nil {
		return nil, err
	}
	c.invalidate()
	return out, nil
}

// UpdateStock writes through to the inner service and invalidates the namespace.
func (c *CachingStockService) UpdateStock(id uint, input services.StockInput) (*models.Stock, error) {
	out, err := c.inner.UpdateStock(id, input)
	if err != nil {
		return nil, err
	}
	c.invalidate()
	return out, nil
}

// DeleteStock writes through to the inner service and invalidates the namespace.
func (c *CachingStockService) DeleteStock(id uint) (*models.Stock, error) {
	out, err := c.inner.DeleteStock(id)
	if err != nil {
		return nil, err
	}
	c.invalidate()
	return out, nil
}

// fetch loads and unmarshals a cache entry into dst, deleting corrupted entries.
func (c *CachingStockService) fetch(key string, dst interface{}) bool {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// store marshals and writes a cache entry, best effort.
func (c *CachingStockService) store(key string, v interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
}

// invalidate drops every key in the namespace using SCAN.
func (c *CachingStockService) invalidate() {
	if c.rdb == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	pattern := c.namespace + ":*"
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return
			}
		}
		cursor = cur
		if cursor == 0 {
			return
		}
	}
}

// listKey generates a cache key covering every parameter of a list query.
func (c *CachingStockService) listKey(query services.StockQuery) string {
	return fmt.Sprintf("%s:list:%s:%s:%s:%t:%d:%d",
		c.namespace,
		safe(strings.ToLower(query.Symbol)),
		safe(strings.ToLower(query.CompanyName)),
		safe(strings.ToLower(query.SortBy)),
		query.Descending,
		query.Page,
		query.PageSize,
	)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
