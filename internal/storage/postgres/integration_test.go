//go:build integration

package postgres

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"tubeharvest/internal/domain"
	"tubeharvest/testdata/utils"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_channels.up.sql"),
			filepath.Join(migrationsPath, "002_create_videos.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM crawl_state")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM videos")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM channel_tags")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM channels")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) seedChannel(userID string) {
	_, err := NewChannelStore(s.db).Upsert(s.ctx, domain.NewChannel(userID))
	s.Require().NoError(err)
}

func (s *PostgresIntegrationSuite) TestChannelStore_UpsertAndGet() {
	store := NewChannelStore(s.db)
	created := time.Date(2012, 3, 4, 0, 0, 0, 0, time.UTC)

	ch := &domain.Channel{
		UserID:           "abc",
		Handle:           utils.Ptr("@abc"),
		DisplayName:      "Abc",
		Verified:         true,
		Subscribers:      utils.Ptr(int64(1_200_000)),
		CreatedAt:        created,
		Country:          utils.Ptr("DE"),
		Links:            []domain.Link{{Name: "Shop", URL: "https://example.com"}},
		FamilySafe:       true,
		BlockedCountries: []string{"CN", "KP"},
		ChannelTabs:      []string{"Videos", "Live"},
		CMSAssociation:   &domain.ContentOwnerAssociation{CMSID: "cms1", CanWebClaim: true},
	}

	isNew, err := store.Upsert(s.ctx, ch)
	s.NoError(err)
	s.True(isNew)

	got, err := store.Get(s.ctx, "abc")
	s.NoError(err)
	s.Require().NotNil(got)
	s.Equal("@abc", *got.Handle)
	s.Equal(int64(1_200_000), *got.Subscribers)
	s.True(got.CreatedAt.Equal(created))
	s.Equal(ch.Links, got.Links)
	s.Equal([]string{"CN", "KP"}, got.BlockedCountries)
	s.Equal([]string{"Videos", "Live"}, got.ChannelTabs)
	s.Equal("cms1", got.CMSAssociation.CMSID)
	s.Nil(got.Views)
}

func (s *PostgresIntegrationSuite) TestChannelStore_UpsertExisting() {
	store := NewChannelStore(s.db)

	_, err := store.Upsert(s.ctx, &domain.Channel{UserID: "abc", DisplayName: "Old"})
	s.NoError(err)

	isNew, err := store.Upsert(s.ctx, &domain.Channel{UserID: "abc", DisplayName: "New", Terminated: true})
	s.NoError(err)
	s.False(isNew)

	got, err := store.Get(s.ctx, "abc")
	s.NoError(err)
	s.Equal("New", got.DisplayName)
	s.True(got.Terminated)
	s.True(got.CreatedAt.IsZero())
	s.Nil(got.Links)
}

func (s *PostgresIntegrationSuite) TestChannelStore_GetUnknown() {
	got, err := NewChannelStore(s.db).Get(s.ctx, "missing")

	s.NoError(err)
	s.Nil(got)
}

func (s *PostgresIntegrationSuite) TestTagStore_ReplaceForChannel() {
	store := NewTagStore(s.db)
	s.seedChannel("abc")

	s.NoError(store.ReplaceForChannel(s.ctx, "abc", []string{"music", "live"}))
	s.NoError(store.ReplaceForChannel(s.ctx, "abc", []string{"gaming", "music", "music"}))

	tags, err := store.GetByChannel(s.ctx, "abc")
	s.NoError(err)
	s.Equal([]string{"gaming", "music"}, tags)

	s.NoError(store.ReplaceForChannel(s.ctx, "abc", nil))
	tags, err = store.GetByChannel(s.ctx, "abc")
	s.NoError(err)
	s.Empty(tags)
}

func (s *PostgresIntegrationSuite) TestVideoStore_UpsertBatch() {
	store := NewVideoStore(s.db)
	s.seedChannel("abc")
	first := time.Date(2025, 5, 31, 10, 0, 0, 0, time.UTC)
	later := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	n, err := store.UpsertBatch(s.ctx, "abc", []domain.Video{
		{VideoID: "v1", Views: 10, ApproxPublishedAt: &first},
		{VideoID: "v2", Views: 5, LengthSeconds: utils.Ptr(61)},
	})
	s.NoError(err)
	s.Equal(2, n)

	n, err = store.UpsertBatch(s.ctx, "abc", []domain.Video{
		{VideoID: "v1", Views: 20, ApproxPublishedAt: &later},
		{VideoID: "v3", Views: 1},
		{VideoID: "v3", Views: 2},
	})
	s.NoError(err)
	s.Equal(1, n)

	videos, err := store.ListByChannel(s.ctx, "abc", 10)
	s.NoError(err)
	s.Require().Len(videos, 3)
	s.Equal("v1", videos[0].VideoID)
	s.Equal(int64(20), videos[0].Views)
	s.True(videos[0].ApproxPublishedAt.Equal(first))

	byID := map[string]domain.Video{}
	for _, v := range videos {
		byID[v.VideoID] = v
	}
	s.Equal(int64(2), byID["v3"].Views)
	s.Equal(61, *byID["v2"].LengthSeconds)
}

func (s *PostgresIntegrationSuite) TestVideoStore_UpsertBatchEmpty() {
	n, err := NewVideoStore(s.db).UpsertBatch(s.ctx, "abc", nil)

	s.NoError(err)
	s.Zero(n)
}

func (s *PostgresIntegrationSuite) TestCrawlStateStore_GetNew() {
	store := NewCrawlStateStore(s.db)

	state, err := store.Get(s.ctx, "UCnew")
	s.NoError(err)
	s.NotNil(state)
	s.Equal("UCnew", state.ChannelID)
	s.True(state.LastCrawledAt.IsZero())
	s.Empty(state.Continuation)
	s.Zero(state.ID)
}

func (s *PostgresIntegrationSuite) TestCrawlStateStore_UpdateAndGet() {
	store := NewCrawlStateStore(s.db)
	now := time.Now().Truncate(time.Microsecond)

	state := &domain.CrawlState{
		ChannelID:     "UCabc",
		Continuation:  "token-1",
		LastCrawledAt: now,
		TotalVideos:   30,
	}
	s.NoError(store.Update(s.ctx, state))
	s.Positive(state.ID)

	state.Continuation = ""
	state.Completed = true
	state.TotalVideos = 45
	s.NoError(store.Update(s.ctx, state))

	retrieved, err := store.Get(s.ctx, "UCabc")
	s.NoError(err)
	s.Equal(state.ID, retrieved.ID)
	s.Empty(retrieved.Continuation)
	s.True(retrieved.Completed)
	s.Equal(int64(45), retrieved.TotalVideos)
	s.WithinDuration(now, retrieved.LastCrawledAt, time.Second)
}

func (s *PostgresIntegrationSuite) TestTransaction_Commit() {
	tm := NewTransactionManager(s.db)
	channels := NewChannelStore(s.db)
	tags := NewTagStore(s.db)

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		if _, err := channels.Upsert(ctx, domain.NewChannel("tx")); err != nil {
			return err
		}
		return tags.ReplaceForChannel(ctx, "tx", []string{"music"})
	})
	s.NoError(err)

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM channel_tags WHERE user_id = $1", "tx")
	s.NoError(err)
	s.Equal(1, count)
}

func (s *PostgresIntegrationSuite) TestTransaction_Rollback() {
	tm := NewTransactionManager(s.db)
	channels := NewChannelStore(s.db)
	videos := NewVideoStore(s.db)
	s.seedChannel("keep")

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		if _, err := channels.Upsert(ctx, domain.NewChannel("gone")); err != nil {
			return err
		}
		if _, err := videos.UpsertBatch(ctx, "gone", []domain.Video{{VideoID: "v1"}}); err != nil {
			return err
		}
		return context.Canceled
	})
	s.ErrorIs(err, context.Canceled)

	got, err := channels.Get(s.ctx, "gone")
	s.NoError(err)
	s.Nil(got)

	got, err = channels.Get(s.ctx, "keep")
	s.NoError(err)
	s.NotNil(got)
}

func (s *PostgresIntegrationSuite) TestTransaction_Nested() {
	tm := NewTransactionManager(s.db)
	channels := NewChannelStore(s.db)

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		outer := GetTxFromContext(ctx)
		return tm.WithTransaction(ctx, func(inner context.Context) error {
			s.Same(outer, GetTxFromContext(inner))
			_, err := channels.Upsert(inner, domain.NewChannel("nested"))
			return err
		})
	})
	s.NoError(err)

	got, err := channels.Get(s.ctx, "nested")
	s.NoError(err)
	s.NotNil(got)
}
