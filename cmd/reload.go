package cmd

import (
	"log"
	"sync"

	"webworker.GO/config"
	"webworker.GO/core/cache"
	"webworker.GO/cron"
	"webworker.GO/html"
	"webworker.GO/offload"
	"webworker.GO/site"
)

const siteReloadJob = "site:reload"

// siteReloader re-reads the manifest and drops derived caches when it changed.
// serve hands it the live store; cron:start loads one on the first run.
type siteReloader struct {
	mu    sync.Mutex
	store *site.Store
}

var reloader siteReloader

func init() {
	cron.Register(siteReloadJob, "@every 1m", reloader.run)
}

func (r *siteReloader) use(s *site.Store) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store = s
}

func (r *siteReloader) run(...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := false
	if r.store == nil {
		s, err := site.NewStore(manifestFile(appConfig()))
		if err != nil {
			log.Printf("site: %v", err)
			return
		}
		r.store = s
		changed = true
	} else {
		var err error
		if changed, err = r.store.Reload(); err != nil {
			return
		}
	}
	if !changed {
		return
	}
	log.Printf("site: manifest changed, dropping cached snippet and pages")
	cache.GetInstance().DeleteByTag(offload.SnippetCacheTag)
	if err := html.PurgeCache(config.RedisCtx(), config.RedisClient); err != nil {
		log.Printf("Page cache purge failed: %v", err)
	}
}

func cronSchedules(cfg *config.Config) map[string]string {
	return map[string]string{siteReloadJob: cfg.SiteReloadSchedule}
}
