package main

import (
	"net/http"
	"time"

	"aqso/models"
	"aqso/service"
	"aqso/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type server struct {
	cfg          Config
	db           *gorm.DB // accounts and profiles; nil in handler tests
	log          *zap.Logger
	transactions *service.TransactionService
	customers    *service.CustomerService
}

func newServer(cfg Config, gdb *gorm.DB, log *zap.Logger) *server {
	return &server{
		cfg:          cfg,
		db:           gdb,
		log:          log,
		transactions: service.NewTransactionService(store.NewTransactions(gdb), log.Named("transactions")),
		customers:    service.NewCustomerService(store.NewCustomers(gdb), log.Named("customers")),
	}
}

func (s *server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log))
	r.Use(cors.New(corsConfig(s.cfg.CORSOrigins)))
	r.Static("/uploads", s.cfg.UploadBase)
	s.setupRoutes(r.Group("/api"))
	return r
}

func (s *server) setupRoutes(api *gin.RouterGroup) {
	api.GET("/health", healthHandler)
	api.POST("/register", s.registerHandler)
	api.POST("/login", s.loginHandler)
	api.POST("/refresh", s.refreshHandler)
	api.POST("/revoke_refresh", s.revokeRefreshHandler)

	authGroup := api.Group("")
	authGroup.Use(s.jwtAuthMiddleware())
	authGroup.GET("/me", meHandler)
	authGroup.GET("/profile/:email", s.selfOrAdmin(), s.getProfileHandler)
	authGroup.PUT("/profile/:email", s.selfOrAdmin(), s.putProfileHandler)
	authGroup.POST("/profile/:email/photo", s.selfOrAdmin(), s.uploadPhotoHandler)

	admin := authGroup.Group("/users")
	admin.Use(requireRole(models.RoleAdmin))
	admin.GET("", s.listUsersHandler)
	admin.PUT("/:email", s.updateUserRoleHandler)
	admin.DELETE("/:email", s.deleteUserHandler)

	records := api.Group("")
	if s.cfg.RequireAuth {
		records.Use(s.jwtAuthMiddleware())
	}
	records.GET("/transactions", s.listTransactionsHandler)
	records.POST("/transactions", s.createTransactionHandler)
	records.GET("/transactions/export", s.exportTransactionsHandler)
	records.POST("/transactions/import", s.importTransactionsHandler)
	records.PUT("/transactions/:id", s.updateTransactionHandler)
	records.DELETE("/transactions/:id", s.deleteTransactionHandler)

	records.GET("/customers", s.listCustomersHandler)
	records.POST("/customers", s.createCustomerHandler)
	records.PUT("/customers/:id", s.updateCustomerHandler)
	records.DELETE("/customers/:id", s.deleteCustomerHandler)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "timestamp": time.Now().UTC().Format(time.RFC3339)})
}
