package chi

import (
	"cat-async/internal/adapters/handlers/http/chi/v1/session"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// ExampleIdentifier is the identifier of the example upload link on the home route
const ExampleIdentifier = "e18324dd-a9c3-4f27-a0d1-c37656150c70"

// NewRouter builds http.Handler with chi
func NewRouter(logger *slog.Logger, sessionHandler *session.HandlerV1, env string) http.Handler {
	r := chi.NewRouter()

	//handle requestID to facilitate debug (X-Request-ID)
	//It fetches from request if exists, or creates it
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.RequestSize(1 << 20)) //1mb, requests only carry links and locations

	if env != "prod" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/session", sessionHandler.Routes())
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, HomeResponse{
			Title:       "Welcome to CAT ASYNC",
			Description: "Upload your files securely with a unique identifier. Open a session with the link you were given.",
			ExampleLink: "/" + ExampleIdentifier,
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, HealthResponse{
			Status:    "ok",
			Timestamp: time.Now(),
		})
	})

	return r
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// HomeResponse explains how to get to an upload page
type HomeResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ExampleLink string `json:"example_link"`
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, resp any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("error encoding response", "error", err)
	}
}
