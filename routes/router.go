package routes

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"societyhub-be/controllers"
	"societyhub-be/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups the controllers mounted under /api.
type Handlers struct {
	Auth          *controllers.AuthController
	Meetings      *controllers.MeetingController
	Polls         *controllers.PollController
	Complaints    *controllers.ComplaintController
	Notices       *controllers.NoticeController
	Payments      *controllers.PaymentController
	Notifications *controllers.NotificationController
}

type Options struct {
	Tokens           middlewares.TokenVerifier
	ComplaintLimiter gin.HandlerFunc
	Production       bool
	FrontendURL      []string
}

var devOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}

func SetupRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(corsConfig(opts.Production, opts.FrontendURL)))
	r.MaxMultipartMemory = 32 << 20

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is working!"})
	})
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	auth := middlewares.AuthMiddleware(opts.Tokens)
	limiter := opts.ComplaintLimiter
	if limiter == nil {
		limiter = func(c *gin.Context) { c.Next() }
	}

	api := r.Group("/api")
	AuthRoutes(api, h.Auth, auth)
	MeetingRoutes(api, h.Meetings, h.Polls, auth)
	ComplaintRoutes(api, h.Complaints, auth, limiter)
	NoticeRoutes(api, h.Notices, auth)
	PaymentRoutes(api, h.Payments, auth)
	NotificationRoutes(api, h.Notifications, auth)
	return r
}

// corsConfig allows every origin outside production. In production only the
// local dev origins and FRONTEND_URL entries are allowed; an entry without a
// scheme allows both its http and https forms.
func corsConfig(production bool, frontendURLs []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if !production {
		cfg.AllowOriginFunc = func(string) bool { return true }
		return cfg
	}

	allowed := map[string]bool{}
	for _, o := range devOrigins {
		allowed[o] = true
	}
	for _, u := range frontendURLs {
		allowed[u] = true
		if !strings.HasPrefix(u, "http") {
			allowed["https://"+u] = true
			allowed["http://"+u] = true
		}
	}
	slog.Info("CORS allowed origins", "count", len(allowed))
	cfg.AllowOriginFunc = func(origin string) bool { return allowed[origin] }
	return cfg
}
