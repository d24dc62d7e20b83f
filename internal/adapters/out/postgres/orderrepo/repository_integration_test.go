package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"workshop/internal/adapters/out/postgres/orderrepo"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var base = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id int64, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders RESTART IDENTITY").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_AssignsIDAndTracks() {
	ctx := context.Background()
	o := suite.newOrder(100, "Anna", base)

	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Positive(o.ID())
	suite.Equal("#1", o.Number())
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)

	events := o.PullEvents()
	suite.Require().Len(events, 1)
	suite.True(events[0].IsCreation())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTripsAllFields() {
	ctx := context.Background()
	o := suite.addOrder(100, "Anna", base)

	suite.Require().NoError(o.Accept(order.AdminActor(900, "Olga"), "31.01", base.Add(time.Hour)))
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, o, order.New))
	suite.Require().NoError(o.SetMasterComment("handle with care"))
	suite.Require().NoError(suite.repository.UpdateAcceptanceDetails(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal(order.Accepted, got.Status())
	suite.Equal(order.ServiceCoat, got.Service())
	suite.Equal("torn lining", got.Description())
	suite.Equal("Anna", got.ClientName())
	suite.Equal("+79990000000", got.ClientPhone())
	suite.Equal("31.01", got.ReadyDate())
	suite.Equal("handle with care", got.MasterComment())
	suite.Require().NotNil(got.AcceptedAt())
	suite.True(got.AcceptedAt().Equal(base.Add(time.Hour)))
	suite.Nil(got.IssuedAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), 404)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_StaleExpectation_ReturnsConflict() {
	ctx := context.Background()
	o := suite.addOrder(100, "Anna", base)

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.ChangeStatus(order.Cancelled, order.ClientActor(100, "Anna"), base))
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, first, order.New))

	suite.Require().NoError(second.ChangeStatus(order.Accepted, order.AdminActor(900, "Olga"), base))
	err = suite.repository.UpdateStatus(ctx, second, order.New)

	suite.Require().ErrorIs(err, errs.ErrConflict)
	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, stored.Status())
	suite.Nil(stored.AcceptedAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_MissingRow_ReturnsNotFound() {
	ghost, err := order.RestoreOrder(order.Snapshot{
		ID: 55, UserID: 100, Status: order.New, Service: order.ServiceDress, ClientName: "Ghost", CreatedAt: base,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(ghost.ChangeStatus(order.Cancelled, order.SystemActor(), base))

	err = suite.repository.UpdateStatus(context.Background(), ghost, order.New)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateFeedbackState_NeverClears() {
	ctx := context.Background()
	o := suite.addOrder(100, "Anna", base)
	suite.issue(o, base.Add(time.Hour))

	suite.Require().NoError(o.MarkFeedbackRequested())
	suite.Require().NoError(suite.repository.UpdateFeedbackState(ctx, o))

	reloaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(reloaded.FeedbackRequested())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListByStatus_NewestFirst() {
	ctx := context.Background()
	older := suite.addOrder(100, "Anna", base)
	newer := suite.addOrder(101, "Boris", base.Add(time.Minute))
	cancelled := suite.addOrder(102, "Vera", base.Add(2*time.Minute))
	suite.Require().NoError(cancelled.ChangeStatus(order.Cancelled, order.SystemActor(), base))
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, cancelled, order.New))

	onlyNew, err := suite.repository.ListByStatus(ctx, order.New)
	suite.Require().NoError(err)
	suite.Equal([]int64{newer.ID(), older.ID()}, ids(onlyNew))

	all, err := suite.repository.ListByStatus(ctx)
	suite.Require().NoError(err)
	suite.Equal([]int64{cancelled.ID(), newer.ID(), older.ID()}, ids(all))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListStaleNew_HonoursAgeAndCooldown() {
	ctx := context.Background()
	now := base.Add(72 * time.Hour)

	stale := suite.addOrder(100, "Anna", base)
	fresh := suite.addOrder(101, "Boris", now.Add(-time.Hour))
	deferred := suite.addOrder(102, "Vera", base)
	suite.Require().NoError(deferred.DeferReminder(now.Add(-time.Hour)))
	suite.Require().NoError(suite.repository.UpdateReminderState(ctx, deferred))
	reminded := suite.addOrder(103, "Gleb", base)
	suite.Require().NoError(reminded.MarkReminded(base.Add(25 * time.Hour)))
	suite.Require().NoError(suite.repository.UpdateReminderState(ctx, reminded))

	got, err := suite.repository.ListStaleNew(ctx, now.Add(-24*time.Hour), now.Add(-72*time.Hour))
	suite.Require().NoError(err)

	suite.Equal([]int64{stale.ID()}, ids(got))
	suite.NotContains(ids(got), fresh.ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListAcceptedBefore_FiltersByAcceptance() {
	ctx := context.Background()
	old := suite.addOrder(100, "Anna", base)
	suite.accept(old, base)
	recent := suite.addOrder(101, "Boris", base)
	suite.accept(recent, base.Add(47*time.Hour))

	got, err := suite.repository.ListAcceptedBefore(ctx, base.Add(24*time.Hour))
	suite.Require().NoError(err)

	suite.Equal([]int64{old.ID()}, ids(got))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListPendingFeedback_SkipsAlreadyAsked() {
	ctx := context.Background()
	pending := suite.addOrder(100, "Anna", base)
	suite.issue(pending, base)
	asked := suite.addOrder(101, "Boris", base)
	suite.issue(asked, base)
	suite.Require().NoError(asked.MarkFeedbackRequested())
	suite.Require().NoError(suite.repository.UpdateFeedbackState(ctx, asked))

	got, err := suite.repository.ListPendingFeedback(ctx, base.Add(time.Hour))
	suite.Require().NoError(err)

	suite.Equal([]int64{pending.ID()}, ids(got))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSearchByClientName_CaseInsensitiveLiteral() {
	ctx := context.Background()
	anna := suite.addOrder(100, "Anna Petrova", base)
	suite.addOrder(101, "Boris", base)
	percent := suite.addOrder(102, "100% Cotton", base)

	got, err := suite.repository.SearchByClientName(ctx, "PETROV")
	suite.Require().NoError(err)
	suite.Equal([]int64{anna.ID()}, ids(got))

	got, err = suite.repository.SearchByClientName(ctx, "%")
	suite.Require().NoError(err)
	suite.Equal([]int64{percent.ID()}, ids(got))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListByUserAndCount() {
	ctx := context.Background()
	for i := range 7 {
		suite.addOrder(100, "Anna", base.Add(time.Duration(i)*time.Minute))
	}
	suite.addOrder(101, "Boris", base)

	got, err := suite.repository.ListByUser(ctx, 100, 5)
	suite.Require().NoError(err)
	suite.Len(got, 5)
	suite.True(got[0].CreatedAt().After(got[4].CreatedAt()))

	count, err := suite.repository.CountByUser(ctx, 100)
	suite.Require().NoError(err)
	suite.Equal(int64(7), count)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(userID int64, name string, createdAt time.Time) *order.Order {
	o, err := order.NewOrder(userID, order.ServiceCoat, order.Details{
		Description: "torn lining",
		ClientName:  name,
		ClientPhone: "+79990000000",
	}, createdAt)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) addOrder(userID int64, name string, createdAt time.Time) *order.Order {
	o := suite.newOrder(userID, name, createdAt)
	suite.Require().NoError(suite.repository.Add(context.Background(), o))
	o.PullEvents()
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) accept(o *order.Order, at time.Time) {
	suite.Require().NoError(o.Accept(order.AdminActor(900, "Olga"), "", at))
	suite.Require().NoError(suite.repository.UpdateStatus(context.Background(), o, order.New))
}

func (suite *OrderRepositoryIntegrationTestSuite) issue(o *order.Order, at time.Time) {
	suite.accept(o, at)
	admin := order.AdminActor(900, "Olga")
	for _, target := range []order.Status{order.InProgress, order.Completed, order.Issued} {
		from := o.Status()
		suite.Require().NoError(o.ChangeStatus(target, admin, at))
		suite.Require().NoError(suite.repository.UpdateStatus(context.Background(), o, from))
	}
}

func ids(orders []*order.Order) []int64 {
	out := make([]int64, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID())
	}
	return out
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
