//go:build integration

package postgres

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	domainErrors "github.com/polkiloo/webstudio/internal/domain/errors"
	"github.com/polkiloo/webstudio/internal/domain/model"
	"github.com/polkiloo/webstudio/internal/domain/repository"
)

type StorageIntegrationSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	storage   *Storage
}

func (s *StorageIntegrationSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("webstudio"),
		tcpostgres.WithUsername("webstudio"),
		tcpostgres.WithPassword("webstudio"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	storage, err := New(ctx, dsn, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	s.Require().NoError(err)
	s.storage = storage
}

func (s *StorageIntegrationSuite) TearDownSuite() {
	if s.storage != nil {
		s.storage.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *StorageIntegrationSuite) SetupTest() {
	_, err := s.storage.pool.Exec(context.Background(), `TRUNCATE order_events, notifications, orders, users`)
	s.Require().NoError(err)
}

func (s *StorageIntegrationSuite) seedOrder(ctx context.Context) (*model.User, *model.Order) {
	user := model.NewUser("ana", "Ana", "hash", model.RoleCustomer, time.Now())
	s.Require().NoError(s.storage.Users().Create(ctx, user))

	order := model.NewOrder(model.OrderDraft{
		OwnerID:       user.ID,
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
		WebsiteType:   "landing",
		Requirements:  "one page",
	}, time.Now())
	s.Require().NoError(s.storage.Orders().Create(ctx, order))
	return user, order
}

func (s *StorageIntegrationSuite) TestDuplicateLogin() {
	ctx := context.Background()
	s.Require().NoError(s.storage.Users().Create(ctx, model.NewUser("dup", "", "h", model.RoleCustomer, time.Now())))
	err := s.storage.Users().Create(ctx, model.NewUser("dup", "", "h", model.RoleCustomer, time.Now()))
	s.ErrorIs(err, domainErrors.ErrAlreadyExists)
}

func (s *StorageIntegrationSuite) TestPatchKeepsAbsentFields() {
	ctx := context.Background()
	_, order := s.seedOrder(ctx)

	demo := "https://demo.example.com"
	updated, err := s.storage.Orders().Update(ctx, order.ID, model.OrderPatch{Delivery: model.DeliveryUpdate{DemoURL: &demo}})
	s.Require().NoError(err)
	s.Equal(demo, updated.Delivery.DemoURL)
	s.Equal("one page", updated.Requirements)
	s.Empty(updated.Delivery.RepoURL)
}

func (s *StorageIntegrationSuite) TestConcurrentTransitionsOnlyOneWins() {
	ctx := context.Background()
	_, order := s.seedOrder(ctx)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		won      int
		rejected int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.storage.Orders().TransitionStatus(ctx, order.ID, model.OrderStatusPending, model.OrderStatusConfirmed)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				won++
			} else if domainErrors.Kind(err) == "invalid_transition" {
				rejected++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, won)
	s.Equal(7, rejected)
}

func (s *StorageIntegrationSuite) TestTransactionRollsBackEverything() {
	ctx := context.Background()
	user, order := s.seedOrder(ctx)

	err := s.storage.WithinTx(ctx, func(tx repository.Factory) error {
		updated, err := tx.Orders().TransitionStatus(ctx, order.ID, model.OrderStatusPending, model.OrderStatusConfirmed)
		if err != nil {
			return err
		}
		n := model.NewNotification(model.NotificationDraft{UserID: user.ID, Title: "t", Message: "m", Category: model.NotificationSuccess, OrderID: &updated.ID}, time.Now())
		if err := tx.Notifications().Create(ctx, n); err != nil {
			return err
		}
		return domainErrors.ErrInvalidState
	})
	s.ErrorIs(err, domainErrors.ErrInvalidState)

	stored, err := s.storage.Orders().GetByID(ctx, order.ID)
	s.Require().NoError(err)
	s.Equal(model.OrderStatusPending, stored.Status)

	count, err := s.storage.Notifications().CountUnread(ctx, user.ID)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *StorageIntegrationSuite) TestOutboxClaimAndFail() {
	ctx := context.Background()
	_, order := s.seedOrder(ctx)

	event, err := model.NewOrderEvent(model.OrderEventCreated, order, "", time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.storage.Events().Append(ctx, event))

	claimed, err := s.storage.Events().ClaimPending(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(claimed, 1)
	s.Equal(1, claimed[0].Attempts)

	again, err := s.storage.Events().ClaimPending(ctx, 10)
	s.Require().NoError(err)
	s.Empty(again, "leased events must not be claimed twice")

	s.Require().NoError(s.storage.Events().MarkFailed(ctx, event.ID, "broker down", true))
}

func (s *StorageIntegrationSuite) TestNotificationsReadFlow() {
	ctx := context.Background()
	user, _ := s.seedOrder(ctx)

	for i := 0; i < 3; i++ {
		n := model.NewNotification(model.NotificationDraft{UserID: user.ID, Title: "t", Message: "m", Category: model.NotificationInfo}, time.Now())
		s.Require().NoError(s.storage.Notifications().Create(ctx, n))
	}

	list, err := s.storage.Notifications().ListByUser(ctx, user.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 3)

	read, err := s.storage.Notifications().MarkRead(ctx, list[0].ID)
	s.Require().NoError(err)
	s.True(read.Read)

	affected, err := s.storage.Notifications().MarkAllRead(ctx, user.ID)
	s.Require().NoError(err)
	s.EqualValues(2, affected)

	count, err := s.storage.Notifications().CountUnread(ctx, user.ID)
	s.Require().NoError(err)
	s.Zero(count)
}

func TestStorageIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(StorageIntegrationSuite))
}
