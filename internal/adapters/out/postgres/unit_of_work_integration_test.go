package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "workshop/internal/adapters/out/postgres"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/user"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var created = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

// recordingPublisher collects published events in order.
type recordingPublisher struct {
	mu     sync.Mutex
	events []order.TransitionEvent
}

func (p *recordingPublisher) Publish(_ context.Context, evt order.TransitionEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) Events() []order.TransitionEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]order.TransitionEvent(nil), p.events...)
}

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work against a
// real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	publisher *recordingPublisher
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
}

// SetupTest truncates all tables and gives every test a fresh publisher.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, users RESTART IDENTITY").Error
	suite.Require().NoError(err)

	suite.publisher = &recordingPublisher{}
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db, suite.publisher)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PublishesTrackedEventsAfterCommit() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	o := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Empty(suite.publisher.Events(), "events must wait for commit")

	suite.Require().NoError(uow.Commit(ctx))

	events := suite.publisher.Events()
	suite.Require().Len(events, 1)
	suite.True(events[0].IsCreation())
	suite.Equal(o.ID(), events[0].OrderID)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DropsEventsAndWrites() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	o := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Empty(suite.publisher.Events())
	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransition_PublishesOneEventPerChange() {
	ctx := context.Background()
	id := suite.addOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	suite.Require().NoError(err)
	suite.Require().NoError(o.Accept(order.AdminActor(900, "Olga"), "31.01", created))
	suite.Require().NoError(uow.OrderRepository().UpdateStatus(ctx, o, order.New))
	suite.Require().NoError(uow.OrderRepository().UpdateAcceptanceDetails(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	events := suite.publisher.Events()
	suite.Require().Len(events, 1)
	suite.Equal(order.New, events[0].From)
	suite.Equal(order.Accepted, events[0].To)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestGetForUpdate_SerializesCompetingTransitions() {
	ctx := context.Background()
	id := suite.addOrder()

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	locked, err := first.OrderRepository().GetForUpdate(ctx, id)
	suite.Require().NoError(err)

	secondErr := make(chan error, 1)
	go func() {
		second := suite.factory.Create()
		if err := second.Begin(ctx); err != nil {
			secondErr <- err
			return
		}
		defer func() { _ = second.Rollback(ctx) }()

		o, err := second.OrderRepository().GetForUpdate(ctx, id)
		if err != nil {
			secondErr <- err
			return
		}
		secondErr <- o.ChangeStatus(order.Accepted, order.AdminActor(900, "Olga"), created)
	}()

	suite.Require().NoError(locked.ChangeStatus(order.Cancelled, order.ClientActor(100, "Anna"), created))
	suite.Require().NoError(first.OrderRepository().UpdateStatus(ctx, locked, order.New))
	suite.Require().NoError(first.Commit(ctx))

	select {
	case err := <-secondErr:
		suite.Require().ErrorIs(err, errs.ErrConflict)
	case <-time.After(10 * time.Second):
		suite.Fail("second transaction did not finish")
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUserRepository_SharesTransaction() {
	ctx := context.Background()
	u, err := user.NewUser(100, "Anna")
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.UserRepository().Upsert(ctx, u))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().UserRepository().Get(ctx, 100)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	o, err := order.NewOrder(100, order.ServiceJacket, order.Details{ClientName: "Anna"}, created)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) addOrder() int64 {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	o := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))
	suite.publisher = &recordingPublisher{}
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db, suite.publisher)
	return o.ID()
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
