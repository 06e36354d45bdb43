package publisher

import (
	"context"
	"log/slog"

	"post-pilot/store"
)

// Dispatcher is the cron-driven publishing step: each run it collects
// scheduled posts whose time has arrived, hands them to the platform
// publisher, and reports success or failure back into the store.
type Dispatcher struct {
	store    *store.PostStore
	registry *Registry
	logger   *slog.Logger
}

func NewDispatcher(s *store.PostStore, registry *Registry, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{store: s, registry: registry, logger: logger}
}

// PublishDue processes every due post independently; one failure never stops
// the rest. Posts on platforms without a configured publisher stay scheduled
// and are retried on the next run.
func (d *Dispatcher) PublishDue(ctx context.Context) {
	posts, err := d.store.ListDue(ctx)
	if err != nil {
		d.logger.Error("failed to fetch due posts", "error", err.Error())
		return
	}

	for _, post := range posts {
		pub, ok := d.registry.Lookup(post.Platform)
		if !ok {
			d.logger.Warn("no publisher configured, leaving post scheduled", "platform", post.Platform, "postId", post.ID)
			continue
		}

		d.logger.Info("publishing post", "platform", post.Platform, "postId", post.ID)
		externalId, err := pub.Publish(ctx, post)
		if err != nil {
			d.logger.Error("failed to publish post", "platform", post.Platform, "postId", post.ID, "error", err.Error())
			if _, err := d.store.MarkFailed(ctx, post.ID, err.Error()); err != nil {
				d.logger.Error("failed to record publish failure", "postId", post.ID, "error", err.Error())
			}
			continue
		}

		if _, err := d.store.MarkPosted(ctx, post.ID, externalId); err != nil {
			d.logger.Error("failed to record publish success", "postId", post.ID, "error", err.Error())
			continue
		}
		d.logger.Info("published post", "platform", post.Platform, "postId", post.ID, "externalId", externalId)
	}
}
