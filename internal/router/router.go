// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/eterials/menu-backend/internal/config"
	"github.com/eterials/menu-backend/internal/handlers"
	"github.com/eterials/menu-backend/internal/middleware"
	"github.com/eterials/menu-backend/internal/services"
)

// Setup builds the service graph and wires every route.
func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Services
	settingsService := services.NewSettingsService(db)
	categoryService := services.NewCategoryService(db)
	subcategoryService := services.NewSubcategoryService(db)
	productService := services.NewProductService(db)
	recipeService := services.NewRecipeService(db)
	sessionService := services.NewSessionService(db, settingsService)
	feedbackService := services.NewFeedbackService(db, sessionService, settingsService)
	storageService := services.NewStorageService(cfg.Upload)
	backgroundService := services.NewBackgroundService(db, storageService, settingsService)
	authService := services.NewAuthService(cfg.Auth)
	qrService := services.NewQRService(cfg.Public)
	excelService := services.NewExcelService(productService, categoryService)

	// Handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	subcategoryHandler := handlers.NewSubcategoryHandler(subcategoryService)
	productHandler := handlers.NewProductHandler(productService)
	recipeHandler := handlers.NewRecipeHandler(recipeService)
	sessionHandler := handlers.NewSessionHandler(sessionService, settingsService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	settingsHandler := handlers.NewSettingsHandler(settingsService, backgroundService)
	qrHandler := handlers.NewQRHandler(qrService)
	importHandler := handlers.NewImportHandler(excelService)
	mediaHandler := handlers.NewMediaHandler(storageService)
	authHandler := handlers.NewAuthHandler(authService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics())

	rateLimiter := middleware.NewRateLimiter(20, 40)
	r.Use(rateLimiter.Middleware())

	staffOnly := middleware.AuthRequired(cfg.Auth.JWTSecret)

	// Health and metrics
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Uploaded files
	r.Static(cfg.Upload.PublicPath, cfg.Upload.Dir)

	// Staff login
	r.POST("/auth/login", authHandler.Login)

	// Admin panel API
	admin := r.Group("/menu-admin")
	{
		admin.POST("/subir-imagen", mediaHandler.UploadImage)

		api := admin.Group("/api")
		{
			api.GET("/categorias", categoryHandler.List)
			api.POST("/categorias", categoryHandler.Create)
			api.POST("/categorias/previsualizar-icono", categoryHandler.PreviewIcon)
			api.GET("/categorias/:id", categoryHandler.Get)
			api.PUT("/categorias/:id", categoryHandler.Update)
			api.DELETE("/categorias/:id", categoryHandler.Delete)

			api.GET("/subcategorias", subcategoryHandler.List)
			api.POST("/subcategorias", subcategoryHandler.Create)
			api.GET("/subcategorias/:id", subcategoryHandler.Get)
			api.PUT("/subcategorias/:id", subcategoryHandler.Update)
			api.DELETE("/subcategorias/:id", subcategoryHandler.Delete)

			api.GET("/productos", productHandler.List)
			api.POST("/productos", productHandler.Create)
			api.GET("/productos/stats", productHandler.Stats)
			api.GET("/productos/categoria/:categoriaID", productHandler.ListByCategory)
			api.GET("/productos/:id", productHandler.Get)
			api.PUT("/productos/:id", productHandler.Update)
			api.DELETE("/productos/:id", productHandler.Delete)
			api.PUT("/productos/:id/disponibilidad", productHandler.ToggleAvailability)

			api.GET("/productos/:id/ingredientes", recipeHandler.List)
			api.POST("/productos/:id/ingredientes", recipeHandler.Create)
			api.PUT("/productos/:id/ingredientes/:ingredienteID", recipeHandler.Update)
			api.DELETE("/productos/:id/ingredientes/:ingredienteID", recipeHandler.Delete)

			api.GET("/excel/plantilla", importHandler.Template)
			api.POST("/excel/importar", importHandler.Import)

			api.GET("/qr/mesa/:mesa", qrHandler.TableQR)
		}
	}

	// Chatbot API
	chatbot := r.Group("/api/chatbot")
	{
		chatbot.POST("/sesion/iniciar", sessionHandler.Start)
		chatbot.GET("/sesion/:id", sessionHandler.Get)
		chatbot.GET("/sesion/:id/validar", sessionHandler.Validate)
		chatbot.POST("/sesion/:id/actividad", sessionHandler.Heartbeat)
		chatbot.PUT("/sesion/:id/actualizar", sessionHandler.Update)
		chatbot.POST("/sesion/:id/cerrar", sessionHandler.Close)
		chatbot.GET("/sesiones/activas", sessionHandler.ListActive)
		chatbot.GET("/configuracion/timeout", sessionHandler.Timeout)

		chatbot.POST("/calificacion", feedbackHandler.SubmitRating)
		chatbot.GET("/calificaciones", feedbackHandler.ListRatings)
		chatbot.POST("/comentario", feedbackHandler.SubmitComment)
		chatbot.GET("/comentarios", feedbackHandler.ListComments)
		chatbot.POST("/notificacion/mesero", feedbackHandler.NotifyStaff)
		chatbot.GET("/notificaciones/pendientes", feedbackHandler.ListPendingNotifications)
		chatbot.PUT("/notificaciones/:id/atender", staffOnly, feedbackHandler.ResolveNotification)
		chatbot.GET("/estadisticas", feedbackHandler.Stats)
		chatbot.GET("/analytics/resumen", feedbackHandler.AnalyticsSummary)

		chatbot.GET("/saludo", settingsHandler.Greeting)
		chatbot.GET("/configuracion", settingsHandler.List)
		chatbot.PUT("/configuracion/:clave", staffOnly, settingsHandler.Set)

		chatbot.GET("/fondos", settingsHandler.ListBackgrounds)
		chatbot.POST("/fondos", staffOnly, settingsHandler.UploadBackground)
		chatbot.PUT("/fondos/:id/activar", staffOnly, settingsHandler.ActivateBackground)
		chatbot.DELETE("/fondos/:id", staffOnly, settingsHandler.DeleteBackground)
	}

	return r
}
