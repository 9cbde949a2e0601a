package html

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"webworker.GO/api"
	"webworker.GO/offload"
)

const pageCachePrefix = "page:"

func init() {
	api.RegisterRoute("html:page", func(e *echo.Echo, h *api.Host) {
		e.Renderer = layout
		e.GET("/", pageHandler(h))
	})
	api.RegisterRoute("html:config", func(e *echo.Echo, h *api.Host) {
		e.GET("/partytown-config.json", configHandler(h))
	})
	api.RegisterRoute("html:lib", func(e *echo.Echo, h *api.Host) {
		if h.Options.Assets == nil {
			return
		}
		lib := strings.TrimSuffix(offload.New(h.Options).LibPath(), "/")
		e.StaticFS(lib, echo.MustSubFS(h.Options.Assets, "build"))
		log.Printf("Serving Partytown library at %s/", lib)
	})
}

func pageHandler(h *api.Host) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		key := pageCachePrefix + c.Request().URL.Path
		if body, ok := cachedPage(ctx, h, key); ok {
			c.Response().Header().Set("X-Page-Cache", "HIT")
			return c.HTMLBlob(http.StatusOK, body)
		}

		var buf bytes.Buffer
		if err := RenderPage(&buf, h.Store.Manifest(), h.Options); err != nil {
			log.Println("Render error:", err)
			return c.String(http.StatusInternalServerError, "Error rendering page")
		}
		storePage(ctx, h, key, buf.Bytes())
		return c.HTMLBlob(http.StatusOK, buf.Bytes())
	}
}

func configHandler(h *api.Host) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := Plugin(h.Store.Manifest(), h.Options)
		return c.JSONBlob(http.StatusOK, []byte(p.ConfigJSON()))
	}
}

func pageCacheEnabled(h *api.Host) bool {
	return h.Redis != nil && h.CacheTTL > 0
}

func cachedPage(ctx context.Context, h *api.Host, key string) ([]byte, bool) {
	if !pageCacheEnabled(h) {
		return nil, false
	}
	body, err := h.Redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Page cache read failed: %v", err)
		}
		return nil, false
	}
	return body, true
}

func storePage(ctx context.Context, h *api.Host, key string, body []byte) {
	if !pageCacheEnabled(h) {
		return
	}
	if err := h.Redis.Set(ctx, key, body, h.CacheTTL).Err(); err != nil {
		log.Printf("Page cache write failed: %v", err)
	}
}

// PurgeCache drops all cached pages. A nil client is a no-op.
func PurgeCache(ctx context.Context, rdb *redis.Client) error {
	if rdb == nil {
		return nil
	}
	iter := rdb.Scan(ctx, 0, pageCachePrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
