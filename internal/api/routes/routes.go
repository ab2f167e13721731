// internal/api/routes/routes.go
package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"five-whys-api-server/config"
	"five-whys-api-server/internal/api/handlers"
	"five-whys-api-server/internal/mailer"
	"five-whys-api-server/internal/mes"
	"five-whys-api-server/internal/repository"
	"five-whys-api-server/internal/s3"
	"five-whys-api-server/internal/socket"
	"five-whys-api-server/internal/store"
	"five-whys-api-server/internal/workflow"
)

// SetupRouter wires the handlers onto the API surface.
func SetupRouter(
	cfg config.Config,
	st store.Store,
	dispatcher mailer.Dispatcher,
	archiver *s3.Archiver,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	occurrenceRepo := &repository.OccurrenceRepo{Store: st}
	pendencyRepo := &repository.PendencyRepo{Store: st}
	mesRepo := &repository.MesRepo{Store: st}
	userRepo := &repository.UserRepo{Store: st}
	catalogRepo := &repository.CatalogRepo{Store: st}

	engine := &workflow.Engine{Occurrences: occurrenceRepo, Users: userRepo, Cfg: cfg.Workflow}
	importer := &mes.Importer{Repo: mesRepo, Cfg: cfg.MES}

	occurrenceHandler := &handlers.OccurrenceHandler{Engine: engine, Occurrences: occurrenceRepo, Mailer: dispatcher, Hub: wsHub}
	workflowHandler := &handlers.WorkflowHandler{Engine: engine, Mailer: dispatcher, Hub: wsHub}
	pendencyHandler := &handlers.PendencyHandler{Pendencies: pendencyRepo}
	mesHandler := &handlers.MesHandler{Importer: importer, Events: mesRepo, Archiver: archiver}
	catalogHandler := &handlers.CatalogHandler{Catalog: catalogRepo}
	userHandler := &handlers.UserHandler{Users: userRepo}
	exportHandler := &handlers.ExportHandler{Occurrences: occurrenceRepo}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		occurrences := apiV1.Group("/occurrences")
		{
			occurrences.POST("/", occurrenceHandler.SubmitOccurrence)
			occurrences.GET("/", occurrenceHandler.ListOccurrences)
			occurrences.GET("/export/csv", exportHandler.ExportCSV)
			occurrences.GET("/export/xlsx", exportHandler.ExportXLSX)
			occurrences.GET("/:id", occurrenceHandler.GetOccurrence)

			// Workflow transitions
			occurrences.POST("/:id/approve", workflowHandler.Approve)
			occurrences.POST("/:id/reject", workflowHandler.Reject)
			occurrences.POST("/:id/rectify", workflowHandler.Rectify)
		}

		pendencies := apiV1.Group("/pendencies")
		{
			pendencies.POST("/", pendencyHandler.CreatePendency)
			pendencies.GET("/", pendencyHandler.ListPendencies)
		}

		mesGroup := apiV1.Group("/mes")
		{
			mesGroup.POST("/import", mesHandler.ImportWorkbook)
			mesGroup.GET("/events", mesHandler.ListEvents)
		}

		catalog := apiV1.Group("/catalog")
		{
			catalog.GET("/lines", catalogHandler.GetLines)
			catalog.GET("/lines/:line/equipment", catalogHandler.GetEquipment)
			catalog.GET("/enums", catalogHandler.GetEnums)
		}

		users := apiV1.Group("/users")
		{
			users.GET("/", userHandler.ListUsers)
			users.GET("/managers", userHandler.ListManagers)
		}
	}

	return router
}
