package cmd

import (
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"webworker.GO/api"
	"webworker.GO/config"
	"webworker.GO/cron"
	"webworker.GO/offload"
	"webworker.GO/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site manifest page with web worker offloading",
	RunE: func(c *cobra.Command, args []string) error {
		cfg := appConfig()

		config.InitRedis()
		redisStatus := "Redis not configured or not reachable, page cache disabled."
		if config.RedisClient != nil {
			if err := config.RedisClient.Ping(config.RedisCtx()).Err(); err == nil {
				redisStatus = "Redis connection successful."
			} else {
				config.RedisClient = nil
				redisStatus = "Redis configured but not reachable, page cache disabled."
			}
		}
		log.Println(redisStatus)

		store, err := site.NewStore(manifestFile(cfg))
		if err != nil {
			return err
		}
		opts, err := pluginOptions(cfg, overrides)
		if err != nil {
			return err
		}
		host := &api.Host{
			Store:    store,
			Options:  opts,
			Redis:    config.RedisClient,
			CacheTTL: time.Duration(cfg.PageCacheTTL) * time.Second,
		}
		reloader.use(store)

		scheduler, err := cron.StartCron(cronSchedules(cfg))
		if err != nil {
			return err
		}
		defer scheduler.Stop()

		e := echo.New()
		e.HideBanner = true
		e.Use(middleware.Logger())
		e.Use(middleware.Recover())
		e.Use(middleware.Gzip())
		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				start := time.Now()
				err := next(c)
				duration := time.Since(start).Milliseconds()
				c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
				return err
			}
		})
		api.ApplyRoutes(e, host)

		fonts := []string{"banner", "big", "slant", "standard", "small", "doom"}
		figure.NewFigure(cfg.AppName, fonts[rand.Intn(len(fonts))], true).Print()
		fmt.Printf("Web worker offloading %s\n", offload.Version)

		log.Printf("Server running on :%s", cfg.Port)
		return e.Start(":" + cfg.Port)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Site manifest (defaults to SITE_MANIFEST)")
	serveCmd.Flags().StringArrayVar(&overrides, "set", nil, "Override a configuration value, path=value (repeatable)")
	rootCmd.AddCommand(serveCmd)
}
