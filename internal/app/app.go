package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozanyld/cinema-reservation-api/api"
	"github.com/ozanyld/cinema-reservation-api/internal/domain"
	"github.com/ozanyld/cinema-reservation-api/internal/events"
	"github.com/ozanyld/cinema-reservation-api/internal/mailer"
	"github.com/ozanyld/cinema-reservation-api/internal/repository"
	appvalidator "github.com/ozanyld/cinema-reservation-api/internal/validator"
	"github.com/ozanyld/cinema-reservation-api/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
)

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	db             *pgxpool.Pool
	redis          redis.UniversalClient
	validator      *validator.Validate
	mailer         mailer.Mailer
	sessionManager *scs.SessionManager
	publisher      events.Publisher

	movieRepo   domain.MovieRepository
	sessionRepo domain.SessionRepository
	orderRepo   domain.OrderRepository

	wg sync.WaitGroup
}

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string
	DB               DBConfig
	Redis            RedisConfig
	SMTP             SMTPConfig
	AMQP             AMQPConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type AMQPConfig struct {
	URL string
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", "CineHall <no-reply@cinehall.example.com>", "SMTP sender")

	flag.StringVar(&cfg.AMQP.URL, "amqp-url", "", "RabbitMQ URL for order events (optional)")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	app, err := New(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	return app.serve()
}

func New(cfg Config) (*Application, error) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.AMQP.URL != "" {
		publisher = events.NewAMQPPublisher(cfg.AMQP.URL)
	}

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender)

	app := NewApp(
		cfg,
		logger,
		db,
		redisClient,
		appvalidator.NewValidator(),
		smtpMailer,
		NewSessionManager(redisClient),
		publisher,
		repository.NewPostgresMovieRepository(db),
		repository.NewPostgresSessionRepository(db),
		repository.NewPostgresOrderRepository(db),
	)

	return app, nil
}

// NewApp assembles an Application from its dependencies. Tests use it to
// inject mocks for the mailer and the event publisher.
func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	v *validator.Validate,
	m mailer.Mailer,
	sessionManager *scs.SessionManager,
	publisher events.Publisher,
	movieRepo domain.MovieRepository,
	sessionRepo domain.SessionRepository,
	orderRepo domain.OrderRepository,
) *Application {
	return &Application{
		config:         cfg,
		logger:         logger,
		db:             db,
		redis:          redisClient,
		validator:      v,
		mailer:         m,
		sessionManager: sessionManager,
		publisher:      publisher,
		movieRepo:      movieRepo,
		sessionRepo:    sessionRepo,
		orderRepo:      orderRepo,
	}
}

func (app *Application) Close() {
	app.wg.Wait()
	app.db.Close()
	app.redis.Close()
}

// background runs fn in a goroutine tracked by the application's wait group,
// recovering any panic so a failed notification cannot bring the server down.
func (app *Application) background(fn func()) {
	app.wg.Add(1)

	go func() {
		defer app.wg.Done()

		defer func() {
			if err := recover(); err != nil {
				app.logger.Error("recovered panic in background task", "error", fmt.Sprintf("%s", err))
			}
		}()

		fn()
	}()
}

// SessionManager exposes the session manager so tests can mint sessions.
func (app *Application) SessionManager() *scs.SessionManager {
	return app.sessionManager
}

func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("cinema-reservation-api", otelchi.WithChiRoutes(r)))
	r.Use(middleware.Logger)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/health", app.GetHealth)

	r.Get("/movies", func(w http.ResponseWriter, r *http.Request) {
		params := api.GetMoviesParams{}

		qs := r.URL.Query()
		params.Page = readIntParam(qs, "page")
		params.PageSize = readIntParam(qs, "pageSize")
		params.Sort = readStringParam(qs, "sort")
		params.Term = readStringParam(qs, "term")
		params.Genres = readCSVIntParam(qs, "genres")
		params.Actors = readCSVIntParam(qs, "actors")

		app.GetMovies(w, r, params)
	})

	r.Get("/movies/{movieId}", func(w http.ResponseWriter, r *http.Request) {
		movieId, err := strconv.Atoi(chi.URLParam(r, "movieId"))
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("invalid movie ID"))
			return
		}
		app.GetMovie(w, r, movieId)
	})

	r.Get("/sessions", func(w http.ResponseWriter, r *http.Request) {
		params := api.GetSessionsParams{}

		qs := r.URL.Query()
		params.Page = readIntParam(qs, "page")
		params.PageSize = readIntParam(qs, "pageSize")
		params.Date = readStringParam(qs, "date")
		params.Movie = readIntParam(qs, "movie")

		app.GetSessions(w, r, params)
	})

	r.Get("/sessions/{sessionId}", func(w http.ResponseWriter, r *http.Request) {
		sessionId, err := strconv.Atoi(chi.URLParam(r, "sessionId"))
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("invalid session ID"))
			return
		}
		app.GetSession(w, r, sessionId)
	})

	r.With(app.requireAuthentication).Route("/orders", func(r chi.Router) {
		r.Post("/", app.CreateOrderHandler)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			params := api.GetOrdersParams{}

			qs := r.URL.Query()
			params.Page = readIntParam(qs, "page")
			params.PageSize = readIntParam(qs, "pageSize")

			app.GetOrdersOfUserHandler(w, r, params)
		})

		r.Get("/{orderId}", func(w http.ResponseWriter, r *http.Request) {
			orderId, err := strconv.Atoi(chi.URLParam(r, "orderId"))
			if err != nil {
				app.badRequestResponse(w, r, fmt.Errorf("invalid order ID"))
				return
			}
			app.GetUserOrderById(w, r, orderId)
		})
	})

	return r
}
