package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/deskstream/desk-client/internal/feed"
	"github.com/deskstream/desk-client/internal/models"
	"github.com/deskstream/desk-client/internal/realtime"
	"github.com/deskstream/desk-client/internal/store"
	"github.com/deskstream/desk-client/internal/transport"
	"github.com/deskstream/desk-client/pkg/config"
	"github.com/deskstream/desk-client/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.ViewerID == "" {
		logger.Errorf("deskwatch: DESK_VIEWER_ID is required")
		os.Exit(1)
	}

	// Desk API client
	client := transport.NewClient(cfg.APIBaseURL, cfg.APIToken, cfg.RequestTimeout)

	// Event-stream broker: Redis when reachable, process-local hub otherwise
	ctx := context.Background()
	var broker realtime.Broker
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warnf("deskwatch: redis unreachable addr=%s error=%v, live events disabled", cfg.RedisAddr, err)
		broker = realtime.NewHub()
	} else {
		broker = realtime.NewRedisBroker(rdb)
		defer rdb.Close()
	}

	// Wire the notification subsystem
	notifications := store.New(client)
	subscriber := realtime.NewSubscriber(broker, cfg.ChannelPrefix)
	deskFeed := feed.New(client, notifications, subscriber)

	notifications.SetOnChange(func() {
		counts := deskFeed.Counts()
		logger.Infof("feed: total=%d unread=%d posts=%d comments=%d",
			counts.Total, counts.Unread, counts.Posts, counts.Comments)
	})

	deskFeed.SetViewer(ctx, cfg.ViewerID)
	defer deskFeed.Close()

	for _, n := range deskFeed.Notifications(store.TabUnread) {
		logger.Infof("unread: id=%s kind=%s message=%q", n.ID, models.KindOf(n), n.Data.Message)
	}

	logger.Infof("deskwatch: watching viewer=%s api=%s", cfg.ViewerID, cfg.APIBaseURL)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("deskwatch: shutting down")
}
