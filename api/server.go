package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/uhppoted/uhppote-core/types"
	"golang.org/x/net/netutil"

	"github.com/uhppoted/uhppoted-app-tracker/log"
	"github.com/uhppoted/uhppoted-app-tracker/store"
	"github.com/uhppoted/uhppoted-app-tracker/workflow"
)

const LOG_TAG = "api"

const maxRequestSize = 1 << 20

var ErrUnauthorised = errors.New("not an authorised user")

// Store is the subset of the data store used by the API.
type Store interface {
	LoadTasks(ctx context.Context) ([]store.Task, error)
	SaveTask(ctx context.Context, task store.Task) error
	SaveTasks(ctx context.Context, tasks []store.Task) error
	UpdateTask(ctx context.Context, name string, task store.Task) error

	LoadProjects(ctx context.Context) ([]string, error)
	LoadProjectTable(ctx context.Context) ([]store.Project, error)
	SaveProject(ctx context.Context, project store.Project) error
	SaveProjects(ctx context.Context, projects []store.Project) error
	UpdateProject(ctx context.Context, name string, project store.Project) error

	LoadUsers(ctx context.Context) ([]store.User, error)
	CheckUser(ctx context.Context, email string) (bool, error)
	UserName(ctx context.Context, email string) (string, error)
}

type Server struct {
	store  Store
	router *mux.Router
	today  func() *types.Date
}

type contextKey string

const requestID = contextKey("request-id")

func NewServer(s Store) *Server {
	server := Server{
		store:  s,
		router: mux.NewRouter(),
		today:  workflow.Today,
	}

	r := server.router

	r.HandleFunc("/tasks", server.getTasks).Methods(http.MethodGet)
	r.HandleFunc("/tasks", server.saveTask).Methods(http.MethodPost)
	r.HandleFunc("/tasks/batch", server.saveTasks).Methods(http.MethodPost)
	r.HandleFunc("/tasks/summary", server.getSummary).Methods(http.MethodGet)
	r.HandleFunc("/tasks/{name}", server.updateTask).Methods(http.MethodPut)

	r.HandleFunc("/projects", server.getProjects).Methods(http.MethodGet)
	r.HandleFunc("/projects", server.saveProject).Methods(http.MethodPost)
	r.HandleFunc("/projects/table", server.getProjectTable).Methods(http.MethodGet)
	r.HandleFunc("/projects/batch", server.saveProjects).Methods(http.MethodPost)
	r.HandleFunc("/projects/{name}", server.updateProject).Methods(http.MethodPut)

	r.HandleFunc("/users", server.getUsers).Methods(http.MethodGet)
	r.HandleFunc("/users/{email}", server.getUser).Methods(http.MethodGet)

	r.Use(server.trace)

	return &server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the API until the context is cancelled. The number of concurrent connections
// is capped at maxConnections if it is greater than 0.
func (s *Server) ListenAndServe(ctx context.Context, bind string, maxConnections int) error {
	listener, err := net.Listen("tcp", bind)
	if err != nil {
		return err
	}

	if maxConnections > 0 {
		listener = netutil.LimitListener(listener, maxConnections)
	}

	srv := http.Server{
		Handler:           s,
		ReadHeaderTimeout: 15 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdown); err != nil {
			log.Warnf(LOG_TAG, "error shutting down API server (%v)", err)
		}
	}()

	log.Infof(LOG_TAG, "listening on %v", listener.Addr())

	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// trace tags each request with a unique ID and logs the request outcome.
func (s *Server) trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		start := time.Now()
		rec := recorder{ResponseWriter: w, status: http.StatusOK}

		w.Header().Set("X-Request-ID", id)
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)

		next.ServeHTTP(&rec, r.WithContext(context.WithValue(r.Context(), requestID, id)))

		log.Debugf(LOG_TAG, "%v %v %v %v (%v)", id, r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

type recorder struct {
	http.ResponseWriter
	status int
}

func (r *recorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func reply(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Warnf(LOG_TAG, "error encoding response (%v)", err)
	}
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(ErrInvalidRequest, err)
	}

	return nil
}

// fail maps an error to the HTTP status for the response.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, store.ErrMissingField):
		status = http.StatusBadRequest

	case errors.Is(err, ErrUnauthorised):
		status = http.StatusForbidden

	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound

	case errors.Is(err, workflow.ErrOpenTasks):
		status = http.StatusConflict

	case errors.Is(err, store.ErrSchema):
		status = http.StatusUnprocessableEntity

	case errors.Is(err, store.ErrUnavailable), errors.Is(err, store.ErrQuotaExceeded):
		status = http.StatusServiceUnavailable
	}

	id, _ := r.Context().Value(requestID).(string)
	if status == http.StatusInternalServerError {
		log.Errorf(LOG_TAG, "%v %v %v (%v)", id, r.Method, r.URL.Path, err)
	} else {
		log.Warnf(LOG_TAG, "%v %v %v (%v)", id, r.Method, r.URL.Path, err)
	}

	reply(w, status, failure{
		Error:   err.Error(),
		Request: id,
	})
}
