// Package kernel wires the application together: repositories over the
// injected DB handle, services, controllers, the middleware stack, and the
// route table. Everything is constructed once at startup and passed down
// explicitly — there is no package-global application state.
package kernel

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/vyapar/app/controllers"
	"github.com/shashiranjanraj/vyapar/app/repositories"
	"github.com/shashiranjanraj/vyapar/app/routes"
	"github.com/shashiranjanraj/vyapar/app/services"
	"github.com/shashiranjanraj/vyapar/config"
	"github.com/shashiranjanraj/vyapar/pkg/event"
	"github.com/shashiranjanraj/vyapar/pkg/logger"
	"github.com/shashiranjanraj/vyapar/pkg/metrics"
	"github.com/shashiranjanraj/vyapar/pkg/middleware"
	"github.com/shashiranjanraj/vyapar/pkg/reqid"
	"github.com/shashiranjanraj/vyapar/pkg/router"
	"github.com/shashiranjanraj/vyapar/pkg/session"
	"gorm.io/gorm"
)

// App is the application context: the two pieces of shared state every
// request may touch.
type App struct {
	DB       *gorm.DB
	Sessions *session.Manager
}

// New builds an App over an open DB handle and session manager.
func New(db *gorm.DB, sessions *session.Manager) *App {
	return &App{DB: db, Sessions: sessions}
}

// NewSessionManager builds the session manager from config: Redis-backed
// when REDIS_ADDR is set, in-memory otherwise.
func NewSessionManager() (*session.Manager, error) {
	opts := session.DefaultOptions()
	opts.TTL = config.SessionTTL()
	opts.Secure = config.AppEnv() == "production" || config.AppEnv() == "prod"

	var store session.Store
	if addr := config.RedisAddr(); addr != "" {
		redisStore, err := session.NewRedisStore(addr, config.RedisPassword())
		if err != nil {
			return nil, err
		}
		store = redisStore
	} else {
		store = session.NewMemoryStore()
	}

	return session.NewManager(store, config.SessionSecret(), opts), nil
}

// Router constructs the full route table with the global middleware stack
// (outermost → innermost):
//
//  1. Prometheus metrics — outermost for accurate total latency
//  2. Recovery           — catches panics before they kill the goroutine
//  3. Request ID         — inject unique ID before anything logs
//  4. Logger             — logs request_id from context
//  5. CORS               — set CORS headers
//  6. Rate limiter       — reject abusers early
//
// Session auth is applied per route group inside routes.RegisterAPI, not
// globally, because /register and /login must stay public.
func (a *App) Router() *router.Router {
	users := repositories.NewUserRepository(a.DB)
	orders := repositories.NewOrderRepository(a.DB)

	authService := services.NewAuthService(users, orders, a.Sessions)
	orderService := services.NewOrderService(orders)

	authController := controllers.NewAuthController(authService, a.Sessions)
	orderController := controllers.NewOrderController(orderService)

	r := router.New()
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	// Prometheus endpoint — no auth, no rate limit concerns at this scale.
	r.HandleFunc("/metrics", metrics.Handler())

	routes.RegisterAPI(r, authController, orderController, a.Sessions)
	return r
}

// Handler returns the http.Handler for the server.
func (a *App) Handler() http.Handler {
	return a.Router().Handler()
}

// RegisterListeners attaches the domain-event listeners. Kept to logging
// for now; anything heavier belongs in its own listener.
func RegisterListeners() {
	event.Listen(services.EventUserRegistered, func(p interface{}) {
		if e, ok := p.(services.UserEvent); ok {
			logger.Info("user registered", "user_id", e.UserID, "username", e.Username)
		}
	})
	event.Listen(services.EventOrderCreated, func(p interface{}) {
		if e, ok := p.(services.OrderEvent); ok {
			logger.Info("order created", "order_id", e.OrderID, "user_id", e.UserID)
		}
	})
	event.Listen(services.EventOrderUpdated, func(p interface{}) {
		if e, ok := p.(services.OrderEvent); ok {
			logger.Info("order updated", "order_id", e.OrderID, "user_id", e.UserID, "status", e.Status)
		}
	})
	event.Listen(services.EventOrderDeleted, func(p interface{}) {
		if e, ok := p.(services.OrderEvent); ok {
			logger.Info("order deleted", "order_id", e.OrderID, "user_id", e.UserID)
		}
	})
}
