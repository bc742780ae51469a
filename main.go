package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cineadmin/alerts"
	"cineadmin/audit"
	"cineadmin/auth"
	"cineadmin/cdn"
	"cineadmin/content"
	"cineadmin/controller"
	"cineadmin/dashboard"
	"cineadmin/db"
	"cineadmin/middleware"
	"cineadmin/ratelim"
	"cineadmin/rdx"
	"cineadmin/repository"
	"cineadmin/service"
	"cineadmin/storage"
	"cineadmin/uploads"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// Security headers middleware
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

func main() {
	if err := db.Connect(); err != nil {
		log.Fatalf("Could not connect to MongoDB: %v", err)
	}
	defer db.Disconnect()
	db.CreateIndexes()
	rdx.Init()

	staticRoot := os.Getenv("STATIC_ROOT")
	store := storage.NewDiskStore(staticRoot, "")
	uploadMgr := uploads.NewManager(store, uploads.DefaultConfig())
	uploadHandler := uploads.NewUploadHandler(uploadMgr)

	eventRepo := repository.NewEventRepository(db.EventsCollection)
	eventSvc := service.NewEventService(eventRepo)
	eventCtrl := controller.NewEventController(eventSvc)

	router := httprouter.New()

	router.GET("/health", Index)

	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(middleware.Authenticate(auth.RefreshToken)))
	router.POST("/api/auth/admins", middleware.Authenticate(middleware.RequireRole("super_admin", auth.CreateAdmin)))

	router.GET("/api/settings/cdn", middleware.Authenticate(cdn.GetCDN))
	router.PUT("/api/settings/cdn", middleware.Authenticate(middleware.RequireRole("super_admin", cdn.UpdateCDN)))
	router.GET("/api/settings/encoding", middleware.Authenticate(cdn.GetEncoding))
	router.PUT("/api/settings/encoding", middleware.Authenticate(middleware.RequireRole("super_admin", cdn.UpdateEncoding)))
	router.GET("/api/settings/quality/:resolution", middleware.Authenticate(cdn.GetQuality))

	router.POST("/api/uploads/*folder", ratelim.RateLimit(middleware.Authenticate(uploadHandler.Add)))
	router.GET("/api/upload/:id/status", middleware.Authenticate(uploadHandler.Status))
	router.POST("/api/upload/:id/cancel", middleware.Authenticate(uploadHandler.Cancel))
	router.DELETE("/api/upload", middleware.Authenticate(uploadHandler.Remove))

	router.GET("/api/logs/system", middleware.Authenticate(audit.GetSystemLogs))
	router.GET("/api/logs/activity", middleware.Authenticate(audit.GetActivityLogs))
	router.POST("/api/logs/error", ratelim.RateLimit(audit.ReportError))

	router.GET("/api/dashboard/stats", middleware.Authenticate(dashboard.GetStats))
	router.GET("/api/dashboard/analytics", middleware.Authenticate(dashboard.GetAnalytics))
	router.GET("/api/dashboard/analytics/stream", middleware.Authenticate(dashboard.StreamAnalytics))
	router.GET("/api/dashboard/summary", middleware.Authenticate(dashboard.GetSummary))
	router.GET("/api/dashboard/performance", middleware.Authenticate(dashboard.GetPerformance))
	router.GET("/api/dashboard/performance/stream", middleware.Authenticate(dashboard.StreamPerformance))
	router.GET("/api/dashboard/top-content", middleware.Authenticate(dashboard.GetTopContent))

	router.GET("/api/contents", middleware.Authenticate(content.GetAllContent))
	router.POST("/api/content/:type", middleware.Authenticate(content.CreateContent))
	router.GET("/api/content/:type", middleware.Authenticate(content.GetContents))
	router.GET("/api/content/:type/:id", middleware.Authenticate(content.GetContent))
	router.PUT("/api/content/:type/:id", middleware.Authenticate(content.EditContent))
	router.DELETE("/api/content/:type/:id", middleware.Authenticate(content.DeleteContent))
	router.POST("/api/content/:type/:id/cast", middleware.Authenticate(content.AddCast))
	router.POST("/api/content/:type/:id/crew", middleware.Authenticate(content.AddCrew))
	router.POST("/api/content/:type/:id/seasons/:seasonid/episodes", middleware.Authenticate(content.AddEpisode))

	router.GET("/api/events/events", ratelim.RateLimit(eventCtrl.GetEvents))
	router.POST("/api/events/event", middleware.Authenticate(eventCtrl.CreateEvent))
	router.GET("/api/events/event/:eventid", eventCtrl.GetEvent)
	router.PUT("/api/events/event/:eventid", middleware.Authenticate(eventCtrl.EditEvent))
	router.DELETE("/api/events/event/:eventid", middleware.Authenticate(eventCtrl.DeleteEvent))

	router.ServeFiles("/static/uploads/*filepath", http.Dir(store.Root))

	// CORS setup
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	handler := securityHeaders(c.Handler(router))

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	mailer := alerts.NewMailerFromEnv()
	go alerts.NewAlertWorker(mailer).Start(workerCtx)
	go alerts.NewDigestWorker(mailer).Start(workerCtx)

	go func() {
		log.Println("Server started on port " + port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on port %s: %v", port, err)
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	<-shutdownChan
	log.Println("Shutting down gracefully...")

	stopWorkers()
	if err := server.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}

func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}
