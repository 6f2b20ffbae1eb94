package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"tubeharvest/internal/config"
	"tubeharvest/internal/domain"
	"tubeharvest/internal/egress"
	"tubeharvest/internal/innertube"
	"tubeharvest/internal/innertube/wire"
	"tubeharvest/internal/metrics"
	"tubeharvest/internal/publisher"
	"tubeharvest/internal/scheduler"
	"tubeharvest/internal/service"
	"tubeharvest/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	once := flag.Bool("once", false, "run a single crawl pass and exit")
	list := flag.String("list", "", "print the stored profile and uploads of a channel id and exit")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	channelStore := postgres.NewChannelStore(db)
	tagStore := postgres.NewTagStore(db)
	videoStore := postgres.NewVideoStore(db)
	crawlStateStore := postgres.NewCrawlStateStore(db)
	txManager := postgres.NewTransactionManager(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *list != "" {
		if err := printChannel(ctx, *list, channelStore, tagStore, videoStore); err != nil {
			logger.Error("failed to list channel", "error", err)
			os.Exit(1)
		}
		return
	}

	rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
		URL:        cfg.RabbitMQ.URL,
		Exchange:   cfg.RabbitMQ.Exchange,
		RoutingKey: cfg.RabbitMQ.RoutingKey,
		QueueName:  cfg.RabbitMQ.QueueName,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer rabbitMQ.Close()

	var codec wire.Codec = wire.JSONCodec{}
	if cfg.Innertube.DescriptorSet != "" {
		protoCodec, err := wire.LoadProtoCodec(cfg.Innertube.DescriptorSet)
		if err != nil {
			logger.Error("failed to load descriptor set", "error", err)
			os.Exit(1)
		}
		codec = protoCodec
	}

	rangeIDs, release, err := assignRanges(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to lease egress ranges", "error", err)
		os.Exit(1)
	}
	defer release()

	sources := make([]service.ChannelSource, 0, cfg.Crawl.Workers)
	for i := 0; i < cfg.Crawl.Workers; i++ {
		client, err := innertube.New(innertube.Config{
			Target:      cfg.Innertube.Target,
			Prefix:      cfg.Innertube.Prefix,
			RangeID:     rangeIDs[i],
			Codec:       codec,
			InsecureTLS: cfg.Innertube.InsecureTLS,
		}, logger.With("worker", i))
		if err != nil {
			logger.Error("failed to create innertube client", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		sources = append(sources, client)
	}

	crawlService := service.NewCrawlService(
		channelStore,
		tagStore,
		videoStore,
		crawlStateStore,
		txManager,
		rabbitMQ,
		logger,
		cfg.Crawl,
	)
	harvester := service.NewHarvester(crawlService, sources, cfg.Crawl.Channels, logger)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if *once {
		stats, err := harvester.CrawlAll(ctx)
		if err != nil {
			logger.Error("crawl failed", "error", err, "channels", stats.Channels)
			os.Exit(1)
		}
		return
	}

	metricsServer := startMetrics(cfg.Metrics.Addr, logger)
	defer func() {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	sched := scheduler.NewScheduler(harvester, cfg.Crawl.Interval, cfg.Crawl.RunTimeout, logger)

	logger.Info("starting harvester",
		"channels", len(cfg.Crawl.Channels),
		"workers", cfg.Crawl.Workers,
		"interval", cfg.Crawl.Interval,
		"max_pages", cfg.Crawl.MaxPagesPerCrawl,
	)

	if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}

// assignRanges returns one range id per worker. With redis configured each
// worker gets its own leased range, renewed until release is called.
func assignRanges(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]*uint16, func(), error) {
	ids := make([]*uint16, cfg.Crawl.Workers)
	for i := range ids {
		ids[i] = cfg.Innertube.RangeID
	}
	if cfg.Redis.Addr == "" || cfg.Innertube.Prefix == "" {
		return ids, func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}

	host, _ := os.Hostname()
	leaser := egress.NewRangeLeaser(rdb, egress.LeaseConfig{
		KeyPrefix: cfg.Redis.KeyPrefix,
		Owner:     fmt.Sprintf("%s:%d", host, os.Getpid()),
		TTL:       cfg.Redis.LeaseTTL,
	}, logger)

	leased := make([]uint16, 0, len(ids))
	releaseAll := func() {
		releaseCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		for _, id := range leased {
			if err := leaser.Release(releaseCtx, id); err != nil {
				logger.Warn("failed to release range", "range_id", id, "error", err)
			}
		}
	}

	for i := range ids {
		id, err := leaser.Acquire(ctx)
		if err != nil {
			releaseAll()
			rdb.Close()
			return nil, nil, err
		}
		leased = append(leased, id)
		ids[i] = &id
	}

	renewCtx, stopRenew := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(cfg.Redis.LeaseTTL / 3)
		defer ticker.Stop()
		for {
			select {
			case <-renewCtx.Done():
				return
			case <-ticker.C:
				for _, id := range leased {
					if err := leaser.Renew(renewCtx, id); err != nil {
						logger.Error("failed to renew range lease", "range_id", id, "error", err)
					}
				}
			}
		}
	}()

	logger.Info("leased egress ranges", "ranges", leased)

	return ids, func() {
		stopRenew()
		releaseAll()
		rdb.Close()
	}, nil
}

func startMetrics(addr string, logger *slog.Logger) *http.Server {
	metrics.Register(prometheus.DefaultRegisterer)

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", addr)
	return srv
}

type channelListing struct {
	Channel *domain.Channel `json:"channel"`
	Videos  []domain.Video  `json:"videos"`
}

func printChannel(
	ctx context.Context,
	channelID string,
	channels *postgres.ChannelStore,
	tags *postgres.TagStore,
	videos *postgres.VideoStore,
) error {
	userID := channelID
	if len(channelID) > 2 && channelID[:2] == "UC" {
		userID = channelID[2:]
	}

	ch, err := channels.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("get channel: %w", err)
	}
	if ch == nil {
		return fmt.Errorf("channel %s not stored", channelID)
	}
	if ch.Tags, err = tags.GetByChannel(ctx, userID); err != nil {
		return fmt.Errorf("get tags: %w", err)
	}

	list, err := videos.ListByChannel(ctx, userID, 1000)
	if err != nil {
		return fmt.Errorf("list videos: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(channelListing{Channel: ch, Videos: list})
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
