package cmd

import (
	"log/slog"

	apihttp "workshop/internal/adapters/in/http"
	tgin "workshop/internal/adapters/in/telegram"
	"workshop/internal/adapters/out/eventbus"
	"workshop/internal/adapters/out/memory"
	"workshop/internal/adapters/out/postgres"
	"workshop/internal/adapters/out/spamfilter"
	tgout "workshop/internal/adapters/out/telegram"
	"workshop/internal/core/application/access"
	"workshop/internal/core/application/notifications"
	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/jobs"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CompositionRoot owns the process-wide singletons and builds every handler
// and transport from them.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger
	clock  kernel.Clock

	bot        *tgbotapi.BotAPI
	bus        *eventbus.Bus
	uowFactory *postgres.GormUnitOfWorkFactory
	admins     *access.Directory
	sessions   *memory.IntakeSessionStore
	slots      *memory.AdminSlotStore
	messenger  *tgout.Messenger
	dispatcher *notifications.Dispatcher
	broadcast  *commands.BroadcastCommandHandler
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, bot *tgbotapi.BotAPI, logger *slog.Logger) CompositionRoot {
	clock := kernel.SystemClock{}
	bus := eventbus.NewBus(cfg.EventBufferSize, logger)
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB, bus)
	admins := access.NewDirectory(cfg.AdminIDs, uowFactory.Create().UserRepository())
	messenger := tgout.NewMessenger(bot, logger)
	dispatcher := notifications.NewDispatcher(messenger, admins, logger)

	bus.Subscribe(dispatcher.Handle)
	bus.Subscribe(notifications.AuditLog(logger))

	return CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		clock:      clock,
		bot:        bot,
		bus:        bus,
		uowFactory: uowFactory,
		admins:     admins,
		sessions:   memory.NewIntakeSessionStore(cfg.IntakeSessionTTL, clock.Now),
		slots:      memory.NewAdminSlotStore(),
		messenger:  messenger,
		dispatcher: dispatcher,
		broadcast: commands.NewBroadcastCommandHandler(
			uowFactory, admins, messenger, cfg.BroadcastOptions(), logger),
	}
}

func (c *CompositionRoot) EventBus() *eventbus.Bus {
	return c.bus
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateStartIntakeCommandHandler() commands.StartIntakeCommandHandler {
	return commands.NewStartIntakeCommandHandler(c.uowFactory, c.sessions, c.clock)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	classifier := spamfilter.NewKeywordClassifier(c.cfg.SpamKeywords, c.logger)
	return commands.NewCreateOrderCommandHandler(c.uowFactory, classifier, c.clock)
}

func (c *CompositionRoot) CreateAdvanceIntakeCommandHandler() commands.AdvanceIntakeCommandHandler {
	return commands.NewAdvanceIntakeCommandHandler(c.sessions, c.CreateCreateOrderCommandHandler())
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.uowFactory, c.admins, c.slots, c.clock)
}

func (c *CompositionRoot) CreateSubmitReadyDateCommandHandler() commands.SubmitReadyDateCommandHandler {
	return commands.NewSubmitReadyDateCommandHandler(c.uowFactory, c.admins, c.slots, c.clock)
}

func (c *CompositionRoot) CreateSubmitMasterCommentCommandHandler() commands.SubmitMasterCommentCommandHandler {
	return commands.NewSubmitMasterCommentCommandHandler(c.uowFactory, c.admins, c.slots)
}

func (c *CompositionRoot) CreateRespondToReminderCommandHandler() commands.RespondToReminderCommandHandler {
	return commands.NewRespondToReminderCommandHandler(
		c.uowFactory, c.CreateChangeOrderStatusCommandHandler(), c.dispatcher, c.clock)
}

func (c *CompositionRoot) CreateSubmitFeedbackCommandHandler() commands.SubmitFeedbackCommandHandler {
	return commands.NewSubmitFeedbackCommandHandler(c.uowFactory, c.dispatcher)
}

func (c *CompositionRoot) CreateSendFeedbackRequestsCommandHandler() commands.SendFeedbackRequestsCommandHandler {
	return commands.NewSendFeedbackRequestsCommandHandler(
		c.uowFactory, c.messenger, c.clock, c.cfg.SweepOptions(), c.logger)
}

func (c *CompositionRoot) CreateReportStuckOrdersCommandHandler() commands.ReportStuckOrdersCommandHandler {
	return commands.NewReportStuckOrdersCommandHandler(
		c.uowFactory, c.dispatcher, c.clock, c.cfg.SweepOptions(), c.logger)
}

func (c *CompositionRoot) CreateRemindStaleOrdersCommandHandler() commands.RemindStaleOrdersCommandHandler {
	return commands.NewRemindStaleOrdersCommandHandler(
		c.uowFactory, c.messenger, c.clock, c.cfg.SweepOptions(), c.logger)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateSearchOrdersQueryHandler() queries.SearchOrdersQueryHandler {
	return queries.NewSearchOrdersQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateGetUserOrdersQueryHandler() queries.GetUserOrdersQueryHandler {
	return queries.NewGetUserOrdersQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateRouter() *tgin.Router {
	return tgin.NewRouter(c.messenger, c.messenger, c.admins, c.slots, tgin.Handlers{
		RegisterUser:        c.CreateRegisterUserCommandHandler(),
		StartIntake:         c.CreateStartIntakeCommandHandler(),
		AdvanceIntake:       c.CreateAdvanceIntakeCommandHandler(),
		ChangeOrderStatus:   c.CreateChangeOrderStatusCommandHandler(),
		SubmitReadyDate:     c.CreateSubmitReadyDateCommandHandler(),
		SubmitMasterComment: c.CreateSubmitMasterCommentCommandHandler(),
		RespondToReminder:   c.CreateRespondToReminderCommandHandler(),
		SubmitFeedback:      c.CreateSubmitFeedbackCommandHandler(),
		Broadcast:           c.broadcast,
		ListOrders:          c.CreateListOrdersQueryHandler(),
		SearchOrders:        c.CreateSearchOrdersQueryHandler(),
		GetOrder:            c.CreateGetOrderQueryHandler(),
		GetUserOrders:       c.CreateGetUserOrdersQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateListener(router *tgin.Router) *tgin.Listener {
	return tgin.NewListener(c.bot, router, c.cfg.ListenerWorkers, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() (*echo.Echo, error) {
	return apihttp.NewEcho(apihttp.NewServer(
		c.CreateListOrdersQueryHandler(),
		c.CreateSearchOrdersQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.cfg.AdminAPIToken,
		c.logger,
	))
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(jobs.NewOrderSweepJob(
		c.CreateSendFeedbackRequestsCommandHandler(),
		c.CreateReportStuckOrdersCommandHandler(),
		c.CreateRemindStaleOrdersCommandHandler(),
		c.cfg.SweepSchedule,
		c.cfg.SweepStartupDelay,
		c.logger,
	))
}
