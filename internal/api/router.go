package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"smartlist/internal/auth"
	"smartlist/internal/config"
	"smartlist/internal/handlers"
	"smartlist/internal/services"
	"smartlist/internal/storage"
	"smartlist/internal/store"
	"smartlist/internal/websocket"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config        *config.Config
	Stores        *store.Stores
	Lists         *services.ListService
	Sharing       *services.SharingService
	Notifications *services.NotificationService
	Suggestions   *services.SuggestionService
	Profiles      *services.ProfileService
	Files         *storage.Store
	Hub           *websocket.Hub
	JWT           *auth.JWTManager
}

func SetupRouter(deps Deps) *gin.Engine {
	if deps.Config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     deps.Config.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := handlers.NewAuthHandler(deps.Stores.Users, deps.JWT)
	listHandler := handlers.NewListHandler(deps.Lists)
	itemHandler := handlers.NewItemHandler(deps.Lists)
	sharingHandler := handlers.NewSharingHandler(deps.Sharing)
	notificationHandler := handlers.NewNotificationHandler(deps.Notifications)
	suggestionHandler := handlers.NewSuggestionHandler(deps.Suggestions, deps.Profiles)
	profileHandler := handlers.NewProfileHandler(deps.Profiles, deps.Files)
	wsHandler := handlers.NewWebSocketHandler(deps.Hub, deps.JWT)

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		// Authenticates via query token, so it sits outside the middleware.
		api.GET("/ws", wsHandler.Connect)
	}

	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(deps.JWT))
	{
		lists := protected.Group("/lists")
		{
			lists.GET("", listHandler.GetLists)
			lists.POST("", listHandler.CreateList)
			lists.PUT("/:id", listHandler.UpdateList)
			lists.DELETE("/:id", listHandler.DeleteList)

			lists.POST("/:id/share", sharingHandler.ShareList)
			lists.GET("/:id/shares", sharingHandler.GetShares)
			lists.DELETE("/:id/shares/:userId", sharingHandler.RemoveShare)
			lists.POST("/:id/respond", sharingHandler.RespondToInvite)
		}

		items := protected.Group("/lists/:id/items")
		{
			items.GET("", itemHandler.GetItems)
			items.POST("", itemHandler.AddItem)
			items.PUT("/:itemId", itemHandler.UpdateItem)
			items.DELETE("/:itemId", itemHandler.DeleteItem)
			items.POST("/reorder", itemHandler.ReorderItems)
		}

		invites := protected.Group("/invites")
		{
			invites.GET("", sharingHandler.GetPendingInvites)
		}

		notifications := protected.Group("/notifications")
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
			notifications.POST("/read-all", notificationHandler.MarkAllRead)
		}

		ai := protected.Group("/ai")
		{
			ai.GET("/suggestions", suggestionHandler.GetItemSuggestions)
			ai.GET("/weekly", suggestionHandler.GetWeeklySuggestions)
			ai.POST("/smart-list", suggestionHandler.GenerateSmartList)
			ai.POST("/categorize", suggestionHandler.CategorizeItem)
		}

		profile := protected.Group("/profile")
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PUT("", profileHandler.UpdateProfile)
		}

		files := protected.Group("/storage")
		{
			files.POST("/upload-url", profileHandler.RequestUpload)
			files.PUT("/upload/:ref", profileHandler.Upload)
			files.GET("/files/:ref", profileHandler.GetFile)
		}

		protected.GET("/ws/online", wsHandler.OnlineUsers)
	}

	return router
}
