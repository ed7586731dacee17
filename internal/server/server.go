package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"storefront-backend/internal/auth"
	"storefront-backend/internal/handler"
	"storefront-backend/internal/metrics"
	mw "storefront-backend/internal/middleware"
	"storefront-backend/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Services struct {
	Accounts service.AccountService
	Carts    service.CartService
	Catalog  service.CatalogService
	Orders   service.OrderService
	Payments service.PaymentOrchestrator
}

type Options struct {
	Tokens     *auth.TokenManager
	AdminEmail string
	Metrics    *metrics.Metrics
	Gatherer   prometheus.Gatherer
	Log        *zap.Logger
}

type Server struct {
	echo           *echo.Echo
	opts           Options
	accountHandler *handler.AccountHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	productHandler *handler.ProductHandler
}

func NewServer(services Services, opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			opts.Metrics.ObserveRequest(v.Method, route, strconv.Itoa(v.Status), v.Latency.Seconds())

			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				opts.Log.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			opts.Log.Info("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, mw.TokenHeader},
	}))

	s := &Server{
		echo:           e,
		opts:           opts,
		accountHandler: handler.NewAccountHandler(services.Accounts, opts.Log),
		cartHandler:    handler.NewCartHandler(services.Carts, opts.Log),
		orderHandler:   handler.NewOrderHandler(services.Orders, services.Payments, opts.Log),
		productHandler: handler.NewProductHandler(services.Catalog, opts.Log),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	userAuth := mw.AccountAuth(s.opts.Tokens)
	adminAuth := mw.AdminAuth(s.opts.Tokens, s.opts.AdminEmail)

	if s.opts.Gatherer != nil {
		s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{})))
	}

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- account --------
	account := api.Group("/account")
	account.POST("/register", s.accountHandler.Register)
	account.POST("/login", s.accountHandler.Login)
	account.POST("/admin", s.accountHandler.AdminLogin)
	account.GET("/profile", s.accountHandler.GetProfile, userAuth)
	account.PUT("/profile", s.accountHandler.UpdateProfile, userAuth)

	// -------- cart --------
	cart := api.Group("/cart", userAuth)
	cart.POST("/add", s.cartHandler.Add)
	cart.POST("/update", s.cartHandler.Update)
	cart.POST("/get", s.cartHandler.Get)
	cart.POST("/amount", s.cartHandler.Amount)

	// -------- orders --------
	order := api.Group("/order")
	order.POST("/place", s.orderHandler.PlaceCash, userAuth)
	order.POST("/mine", s.orderHandler.ListMine, userAuth)
	order.POST("/all", s.orderHandler.ListAll, adminAuth)
	order.POST("/status", s.orderHandler.UpdateStatus, adminAuth)

	// -------- payments --------
	order.POST("/stripe/start", s.orderHandler.StartStripe, userAuth)
	order.POST("/stripe/verify", s.orderHandler.VerifyStripe, userAuth)
	order.POST("/razorpay/start", s.orderHandler.StartRazorpay, userAuth)
	order.POST("/razorpay/verify", s.orderHandler.VerifyRazorpay, userAuth)

	// -------- catalog --------
	product := api.Group("/product")
	product.GET("/list", s.productHandler.List)
	product.POST("/single", s.productHandler.Single)
	product.POST("/add", s.productHandler.Add, adminAuth)
	product.POST("/remove", s.productHandler.Remove, adminAuth)
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return s.echo.Shutdown(ctx)
}
