package dashboard

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/ponytojas/go-roomalyzer/internal/models"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// ReportProvider is the only thing the dashboard knows about the pipeline
type ReportProvider interface {
	Report() models.Report
}

// Options holds display strings for the page
type Options struct {
	Title    string
	Location string
}

// Server renders the pipeline output over HTTP
type Server struct {
	provider ReportProvider
	opts     Options
}

// NewServer creates a dashboard for provider
func NewServer(provider ReportProvider, opts Options) *Server {
	return &Server{provider: provider, opts: opts}
}

// Router returns the dashboard routes wrapped in request logging and panic recovery
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", s.index).Methods(http.MethodGet)
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/readings", s.readings).Methods(http.MethodGet)
	api.HandleFunc("/averages", s.averages).Methods(http.MethodGet)
	api.HandleFunc("/events", s.events).Methods(http.MethodGet)
	api.HandleFunc("/summary", s.summary).Methods(http.MethodGet)

	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(
		handlers.LoggingHandler(os.Stdout, r),
	)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Dashboard listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Println("Shutting down dashboard...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type indexData struct {
	Title    string
	Location string
	Summary  []summaryRow
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		Title:    s.opts.Title,
		Location: s.opts.Location,
		Summary:  summaryRows(s.provider.Report().Summary),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		log.Printf("Error rendering dashboard: %v", err)
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) readings(w http.ResponseWriter, r *http.Request) {
	rs := s.provider.Report().Readings
	out := make([]readingRow, len(rs))
	for i, cr := range rs {
		out[i] = readingRow{
			Timestamp:   cr.Timestamp,
			Temperature: cr.Temperature,
			Humidity:    cr.Humidity,
			Level:       cr.Level.String(),
		}
	}
	writeJSON(w, out)
}

func (s *Server) averages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.provider.Report().Averages)
}

func (s *Server) events(w http.ResponseWriter, r *http.Request) {
	evs := s.provider.Report().Events
	out := make([]eventRow, len(evs))
	for i, e := range evs {
		out[i] = eventRow{On: optionalTime(e.On), Off: optionalTime(e.Off)}
	}
	writeJSON(w, out)
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, summaryRows(s.provider.Report().Summary))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
