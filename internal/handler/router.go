package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"arena-booking/internal/domain/user"
	"arena-booking/internal/handler/api"
	"arena-booking/internal/handler/middleware"
	"arena-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Engine             *gin.Engine
	Config             config.Config
	Logger             *middleware.Logger
	AuthMiddleware     *middleware.AuthMiddleware
	RateLimiter        *middleware.RateLimiter
	ReservationHandler *api.ReservationHandler
	WalletHandler      *api.WalletHandler
	AdminHandler       *api.AdminHandler
}

func NewRouter(p RouterParams) {
	setupMiddleware(p.Engine, p.Config, p.Logger)
	setupRoutes(p)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	engine.Use(
		logger.Recovery(),
		middleware.NewCORSMiddleware(cfg.CORS),
		logger.LoggingMiddleware(),
		logger.ErrorHandler(),
	)
}

func setupRoutes(p RouterParams) {
	engine := p.Engine
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// limiter runs after auth so per-user keys see the caller
	apiGroup := engine.Group("/api")
	apiGroup.Use(p.AuthMiddleware.RequireAuth(), p.RateLimiter.Handler())
	{
		reservations := apiGroup.Group("/reservations")
		addRoutes(reservations, []route{
			{Method: http.MethodPost, Path: "", Handler: p.ReservationHandler.CreateReservation},
			{Method: http.MethodGet, Path: "", Handler: p.ReservationHandler.ListReservations},
			{Method: http.MethodGet, Path: "/:id", Handler: p.ReservationHandler.GetReservation},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: p.ReservationHandler.CancelReservation},
		})

		wallet := apiGroup.Group("/wallet")
		addRoutes(wallet, []route{
			{Method: http.MethodGet, Path: "", Handler: p.WalletHandler.Balance},
			{Method: http.MethodGet, Path: "/transactions", Handler: p.WalletHandler.ListTransactions},
			{Method: http.MethodPost, Path: "/withdrawals", Handler: p.WalletHandler.RequestWithdrawal},
		})

		operator := apiGroup.Group("/operator")
		addRoutes(operator, []route{
			{
				Method:  http.MethodPost,
				Path:    "/transactions",
				Handler: p.WalletHandler.RecordManualTransaction,
				Mw:      []gin.HandlerFunc{p.AuthMiddleware.RequireRoleAtLeast(user.RoleOperator)},
			},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(p.AuthMiddleware.RequireRoleAtLeast(user.RoleAdmin))
		addRoutes(admin, []route{
			{Method: http.MethodPost, Path: "/deposits", Handler: p.AdminHandler.RecordDeposit},
			{Method: http.MethodPost, Path: "/withdrawals/:id/approve", Handler: p.AdminHandler.ApproveWithdrawal},
			{Method: http.MethodPost, Path: "/withdrawals/:id/reject", Handler: p.AdminHandler.RejectWithdrawal},
			{Method: http.MethodGet, Path: "/settlement-jobs", Handler: p.AdminHandler.ListSettlementJobs},
			{Method: http.MethodPost, Path: "/settlement-jobs/:id/retry", Handler: p.AdminHandler.RetrySettlementJob},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
