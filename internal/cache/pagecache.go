package cache

import (
	"context"
	"encoding/json"
	"time"

	"quill/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const pageKeyPrefix = "page:"

// PageCache stores rendered listing responses verbatim, keyed by full request
// URL (path plus query string), for a fixed TTL. It is a read-through cache:
// writes elsewhere in the system never consult it, and the only invalidation
// paths are TTL expiry and an explicit full Clear. Content served within the
// TTL window may be stale; that staleness is accepted.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache returns a PageCache with the given TTL. A nil client disables
// caching: Middleware becomes a passthrough and Clear a no-op.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	return &PageCache{client: client, ttl: ttl}
}

// TTL returns the configured time-to-live.
func (p *PageCache) TTL() time.Duration {
	return p.ttl
}

type cachedPage struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

func (p *PageCache) get(ctx context.Context, key string) (*cachedPage, bool) {
	if p.client == nil {
		return nil, false
	}
	raw, err := p.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var page cachedPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, false
	}
	return &page, true
}

func (p *PageCache) set(ctx context.Context, key string, page *cachedPage) {
	if p.client == nil {
		return
	}
	raw, err := json.Marshal(page)
	if err != nil {
		return
	}
	// Best effort; a failed write just means the next request recomputes.
	_ = p.client.Set(ctx, key, raw, p.ttl).Err()
}

// Clear flushes every cached page. Concurrent Clear calls are harmless; the
// worst case is deleting an already-deleted key.
func (p *PageCache) Clear(ctx context.Context) error {
	if p.client == nil {
		return nil
	}
	iter := p.client.Scan(ctx, 0, pageKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := p.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Middleware caches successful GET responses for the routes it wraps. The key
// is the original request URL, so each page number caches independently.
func (p *PageCache) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if p.client == nil || c.Method() != fiber.MethodGet {
			return c.Next()
		}

		ctx := c.UserContext()
		key := pageKeyPrefix + c.OriginalURL()

		if page, ok := p.get(ctx, key); ok {
			middleware.PageCacheLookups.WithLabelValues("hit").Inc()
			c.Set(fiber.HeaderContentType, page.ContentType)
			return c.Status(page.Status).Send(page.Body)
		}
		middleware.PageCacheLookups.WithLabelValues("miss").Inc()

		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status == fiber.StatusOK {
			body := make([]byte, len(c.Response().Body()))
			copy(body, c.Response().Body())
			p.set(ctx, key, &cachedPage{
				Status:      status,
				ContentType: string(c.Response().Header.ContentType()),
				Body:        body,
			})
		}
		return nil
	}
}
