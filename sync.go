package fieldnotes

import (
	"fmt"
	"time"

	"github.com/tbardin/fieldnotes/content"
)

// SyncContent loads the content directory, upserts every post into the
// index, prunes index rows whose source files disappeared, and invalidates
// the cache. Content files are never modified. The returned lint report
// covers parse failures and front-matter problems; sync succeeds even when
// the report is not clean.
func (a *App) SyncContent() (content.Report, error) {
	posts, problems, err := content.LoadDir(a.Config.ContentDir)
	if err != nil {
		return content.Report{}, fmt.Errorf("load content: %w", err)
	}

	keep := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		if err := a.Store.SavePost(p); err != nil {
			return content.Report{}, fmt.Errorf("save post %s: %w", p.Slug, err)
		}
		keep[p.Slug] = struct{}{}
	}

	// Prune posts whose files are gone.
	slugs, err := a.Store.Slugs()
	if err != nil {
		return content.Report{}, fmt.Errorf("list slugs: %w", err)
	}
	for _, slug := range slugs {
		if _, ok := keep[slug]; ok {
			continue
		}
		if err := a.Store.DeletePost(slug); err != nil {
			return content.Report{}, fmt.Errorf("prune post %s: %w", slug, err)
		}
		a.Log.Info().Str("slug", slug).Msg("pruned post, source file removed")
	}

	a.Cache.Invalidate()

	report := content.Lint(posts, problems)
	for _, problem := range report.Problems {
		a.Log.Warn().Str("file", problem.File).Str("field", problem.Field).Msg(problem.Message)
	}
	a.Log.Info().Int("posts", len(posts)).Int("problems", len(report.Problems)).Msg("content synced")
	return report, nil
}

// startResyncScheduler re-syncs the content directory on a fixed interval so
// edits land without a restart. Returns a stop function.
func (a *App) startResyncScheduler() func() {
	if a.Config.ResyncInterval <= 0 {
		return func() {}
	}
	ticker := time.NewTicker(a.Config.ResyncInterval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				if _, err := a.SyncContent(); err != nil {
					a.Log.Error().Err(err).Msg("periodic content sync failed")
				}
			case <-done:
				return
			}
		}
	}()
	return func() {
		ticker.Stop()
		close(done)
	}
}
