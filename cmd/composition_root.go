package cmd

import (
	"log/slog"

	goredis "github.com/go-redis/redis/v8"

	"orderboard/internal/adapters/out/inmem"
	"orderboard/internal/adapters/out/printing"
	redisadapter "orderboard/internal/adapters/out/redis"
	"orderboard/internal/adapters/out/rest"
	"orderboard/internal/core/application/routing"
	"orderboard/internal/core/application/store"
	"orderboard/internal/core/application/usecases/commands"
	"orderboard/internal/core/application/usecases/queries"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/station"
	"orderboard/internal/core/ports"
	"orderboard/internal/listeners"
	"orderboard/internal/pkg/debounce"
)

// CompositionRoot wires the board's collaborators once at startup: the
// session, the backend gateway, the event channel, and the per-surface
// stores. Handlers and listeners are created from it on demand.
type CompositionRoot struct {
	config  Config
	logger  *slog.Logger
	session kernel.Session
	gateway ports.OrderGateway
	channel ports.EventChannel

	dashboardStore *store.Store
	debouncer      *debounce.Debouncer
	printer        ports.PrintDispatcher
	alerter        ports.Alerter
}

// NewCompositionRoot builds the object graph from configuration.
// With no Redis address configured the channel is process-local, which suits
// a single-binary deployment and development.
func NewCompositionRoot(config Config, logger *slog.Logger) (*CompositionRoot, error) {
	session, err := kernel.NewSession(
		config.RestaurantID, config.RestaurantName,
		config.LocationID, config.LocationName,
	)
	if err != nil {
		return nil, err
	}

	gateway, err := rest.NewOrderGateway(config.OrderBackendURL, nil)
	if err != nil {
		return nil, err
	}

	var channel ports.EventChannel
	if config.RedisAddr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
		})
		channel, err = redisadapter.NewEventChannel(client, config.RedisPrefix, logger)
		if err != nil {
			return nil, err
		}
	} else {
		channel = inmem.NewEventChannel()
	}

	var printer ports.PrintDispatcher
	if config.PrintServiceURL != "" {
		printer, err = printing.NewDispatcher(config.PrintServiceURL, nil)
		if err != nil {
			return nil, err
		}
	}

	return &CompositionRoot{
		config:         config,
		logger:         logger,
		session:        session,
		gateway:        gateway,
		channel:        channel,
		dashboardStore: store.New(),
		debouncer:      debounce.New(),
		printer:        printer,
		alerter:        printing.NewLogAlerter(logger),
	}, nil
}

// Close tears down the event channel.
func (c *CompositionRoot) Close() error {
	return c.channel.Close()
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() (commands.ChangeOrderStatusCommandHandler, error) {
	return commands.NewChangeOrderStatusCommandHandler(
		c.session, c.gateway, c.dashboardStore, c.channel, c.config.BroadcastOnWriteFailure)
}

func (c *CompositionRoot) CreateChangeOrderItemStatusCommandHandler() (commands.ChangeOrderItemStatusCommandHandler, error) {
	return commands.NewChangeOrderItemStatusCommandHandler(
		c.session, c.gateway, c.dashboardStore, c.channel)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() (queries.GetActiveOrdersQueryHandler, error) {
	return queries.NewGetActiveOrdersQueryHandler(c.dashboardStore)
}

func (c *CompositionRoot) CreateGetCompletedOrdersQueryHandler() (queries.GetCompletedOrdersQueryHandler, error) {
	return queries.NewGetCompletedOrdersQueryHandler(c.dashboardStore)
}

func (c *CompositionRoot) CreateGetItemStatsQueryHandler() (queries.GetItemStatsQueryHandler, error) {
	return queries.NewGetItemStatsQueryHandler(c.dashboardStore)
}

// CreateDashboardListener creates the listener converging the full board.
func (c *CompositionRoot) CreateDashboardListener() *listeners.DashboardListener {
	return listeners.NewDashboardListener(listeners.DashboardListenerDeps{
		Session:   c.session,
		Gateway:   c.gateway,
		Orders:    c.dashboardStore,
		Channel:   c.channel,
		Debouncer: c.debouncer,
		Printer:   c.printer,
		PrinterTo: ports.PrinterInfo{ID: c.config.PrinterID, Name: c.config.PrinterName},
		Alerter:   c.alerter,
		Logger:    c.logger,
	})
}

// CreateStationListener creates a listener for the configured kitchen station,
// with its own tag-filtered store. Returns nil when no station is configured;
// a pure dashboard deployment runs without one.
func (c *CompositionRoot) CreateStationListener() (*listeners.StationListener, error) {
	if c.config.StationID == "" {
		return nil, nil
	}

	st, err := station.NewStation(c.config.StationID, c.config.StationName, c.config.StationTags)
	if err != nil {
		return nil, err
	}
	router, err := routing.NewRouter(c.session, st, c.channel)
	if err != nil {
		return nil, err
	}

	return listeners.NewStationListener(
		c.session, c.gateway, store.New(), router, c.channel, c.logger), nil
}
