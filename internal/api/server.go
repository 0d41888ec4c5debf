package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/bigbull/event-ticket-api/docs"
	v1 "github.com/bigbull/event-ticket-api/internal/api/handler/v1"
	"github.com/bigbull/event-ticket-api/internal/api/middleware"
	"github.com/bigbull/event-ticket-api/internal/clock"
	"github.com/bigbull/event-ticket-api/internal/config"
	"github.com/bigbull/event-ticket-api/internal/pkg/ticketpdf"
	"github.com/bigbull/event-ticket-api/internal/repository"
	"github.com/bigbull/event-ticket-api/internal/repository/dao"
	"github.com/bigbull/event-ticket-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	// Auth and ScanQueue are driven by the process outside request handling.
	Auth      *service.AuthService
	ScanQueue *service.ScanQueue
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	ticketHandler := s.initTicketHandler(db)
	s.MountHandlers(authHandler, userHandler, ticketHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	adminRepo := repository.NewAdminRepository(dao.NewAdminDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	s.Auth = service.NewAuthService(adminRepo, userRepo, s.Config.Admin.InitialUsername)
	handler := v1.NewAuthHandler(s.Config.API, s.Auth)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initTicketHandler(db *gorm.DB) *v1.TicketHandler {
	ticketDAO := dao.NewTicketDAO(db)
	repo := repository.NewTicketRepository(ticketDAO)

	registry := service.NewTicketRegistry(repo, clock.NewSystem())
	engine := service.NewValidationEngine(repo)
	s.ScanQueue = service.NewScanQueue(engine, s.Config.Ticket.ScanQueueSize)
	purchases := service.NewPurchaseService(registry, s.Config.Ticket.EventName, s.Config.Ticket.Price)
	documents := service.NewDocumentService(registry, ticketpdf.NewRenderer(s.Config.Ticket.PDFDir))

	handler := v1.NewTicketHandler(registry, engine, s.ScanQueue, purchases, documents)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ContentSecurityPolicy())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, userHandler *v1.UserHandler, ticketHandler *v1.TicketHandler) {
	const basePath = "/api/v1"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/login", authHandler.HandleAdminLogin)
		auth.GET("/auth/check", authHandler.HandleCheckAdmin)
		auth.POST("/users/register", authHandler.HandleRegister)
		auth.POST("/users/login", authHandler.HandleLogin)
	}

	users := s.Router.Group(basePath, authenticator.VerifyJWT(), middleware.RequireAdmin())
	{
		users.GET("/users/list", userHandler.HandleListUsers)
		users.GET("/users/:userID", userHandler.HandleGetUser)
		users.PUT("/users/:userID", userHandler.HandleUpdateUser)
	}

	public := s.Router.Group(basePath)
	{
		public.POST("/tickets/validate", ticketHandler.HandleValidateTicket)
		public.POST("/tickets/scan", ticketHandler.HandleScanTicket)
		public.GET("/tickets/scan/ws", ticketHandler.HandleScanSocket)
		public.GET("/tickets/:ticketID", ticketHandler.HandleGetTicket)
		public.GET("/tickets/:ticketID/pdf", ticketHandler.HandleDownloadTicket)
	}

	buyers := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		buyers.POST("/tickets/purchase", ticketHandler.HandlePurchaseTicket)
	}

	admin := s.Router.Group(basePath, authenticator.VerifyJWT(), middleware.RequireAdmin())
	{
		admin.POST("/tickets/generate", ticketHandler.HandleGenerateTicket)
		admin.GET("/tickets/list", ticketHandler.HandleListTickets)
		admin.PUT("/tickets/:ticketID", ticketHandler.HandleUpdateTicket)
		admin.DELETE("/tickets/:ticketID", ticketHandler.HandleDeleteTicket)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.NoRoute(v1.HandleNotFound)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Event Ticket API"
	docs.SwaggerInfo.Description = "Ticket issuance, gate validation and account management."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
