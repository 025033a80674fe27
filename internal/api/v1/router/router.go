package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"courseplayer/internal/api/v1/handler"
	"courseplayer/internal/certificate"
	"courseplayer/internal/config"
	"courseplayer/internal/middleware"
	"courseplayer/internal/pubsub"
	"courseplayer/internal/repository"
	"courseplayer/internal/service"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// Services are the application services served over HTTP.
type Services struct {
	Courses   service.CourseService
	Sessions  service.SessionService
	Resources service.ResourceService
	Notes     service.NoteService
}

// ShutdownFunc releases what New acquired. It waits for pending completion
// notifications until ctx is done.
type ShutdownFunc func(ctx context.Context) error

func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (http.Handler, ShutdownFunc, error) {
	logger.Info().Str("environment", cfg.Environment).Msg("App environment loaded")

	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// 1. Course catalog
	var courseRepo repository.CourseRepository
	if cfg.UsePostgresCatalog() {
		pool, err := openPool(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, pool.Close)
		courseRepo = repository.NewCourseRepo(pool)
	} else {
		logger.Info().Msg("Serving the built-in course catalog")
		courseRepo = repository.NewMemoryCourseRepo(repository.SeedCourses())
	}

	// 2. Resource storage
	var s3Client *s3.Client
	if cfg.ResourceBucketConfigured() {
		client, err := newS3Client(ctx, cfg)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		s3Client = client
	}

	// 3. Completion collaborators
	notifiers := []service.CompletionNotifier{service.NewLogNotifier(logger)}
	if cfg.PublishCompletions() {
		pub, err := pubsub.NewPublisher(ctx, cfg)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, func() { pub.Close() })
		notifiers = append(notifiers, pubsub.NewCompletionPublisher(pub, cfg.PubSubCompletionTopic, logger))
		logger.Info().Str("topic", cfg.PubSubCompletionTopic).Msg("Publishing course completions")
	}

	renderer, err := certificate.NewRenderer(cfg.CertificateFontPath)
	if err != nil {
		closeAll()
		return nil, nil, err
	}

	// 4. Services
	courseSvc := service.NewCourseService(courseRepo)
	svcs := Services{
		Courses: courseSvc,
		Sessions: service.NewSessionService(courseSvc, renderer, notifiers, service.SessionOptions{
			TTL:           cfg.SessionTTL,
			NotifyTimeout: cfg.NotifyTimeout,
		}, logger),
		Resources: service.NewResourceService(s3Client, cfg.S3Bucket, cfg.ResourceURLTTL, logger),
		Notes:     service.NewNoteService(repository.NewNoteRepository()),
	}

	shutdown := func(ctx context.Context) error {
		err := svcs.Sessions.Drain(ctx)
		closeAll()
		return err
	}
	return NewHandler(cfg, svcs, logger), shutdown, nil
}

// NewHandler builds the HTTP routes over svcs.
func NewHandler(cfg *config.Config, svcs Services, logger zerolog.Logger) http.Handler {
	validate := validator.New(validator.WithRequiredStructEnabled())

	courseHandler := handler.NewCourseHandler(svcs.Courses, logger)
	sessionHandler := handler.NewSessionHandler(svcs.Sessions, svcs.Resources, svcs.Notes, validate, logger)
	userHandler := handler.NewUserHandler(svcs.Sessions, logger)

	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret, logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	r.Route("/v1", func(r chi.Router) {
		courseHandler.RegisterRoutes(r, authMiddleware)
		sessionHandler.RegisterRoutes(r, authMiddleware)
		userHandler.RegisterRoutes(r, authMiddleware)
	})

	// Redirect /api/* to /v1/* for backward compatibility
	r.HandleFunc("/api/*", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/")
		http.Redirect(w, r, "/v1/"+rest, http.StatusMovedPermanently)
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(logger)(c.Handler(r))
}

func openPool(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*pgxpool.Pool, error) {
	if cfg.DBConnectionString == "" {
		return nil, errors.New("DB_CONNECTION_STRING is required for the postgres catalog")
	}
	poolCfg, err := pgxpool.ParseConfig(withConnDefaults(cfg.DBConnectionString, cfg.Environment))
	if err != nil {
		return nil, fmt.Errorf("parsing DB connection string: %w", err)
	}
	poolCfg.MaxConns = cfg.DBMaxConns
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	logger.Info().
		Str("host", poolCfg.ConnConfig.Host).
		Uint16("port", poolCfg.ConnConfig.Port).
		Msg("Connecting to catalog database")

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("opening DB pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging DB: %w", err)
	}
	logger.Info().Msg("Database connection successful")
	return pool, nil
}

// withConnDefaults disables SSL for local development and, elsewhere, uses
// the simple protocol so transaction poolers like pgbouncer work without
// server-side prepared statements.
func withConnDefaults(dsn, env string) string {
	isURL := strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
	add := func(kv string) {
		switch {
		case !isURL:
			dsn += " " + kv
		case strings.Contains(dsn, "?"):
			dsn += "&" + kv
		default:
			dsn += "?" + kv
		}
	}
	if env == "development" && !strings.Contains(dsn, "sslmode") {
		add("sslmode=disable")
	}
	if env != "development" && !strings.Contains(dsn, "default_query_exec_mode") {
		add("default_query_exec_mode=simple_protocol")
	}
	return dsn
}

func newS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")))
	}
	s3Config, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}
	return s3.NewFromConfig(s3Config, func(o *s3.Options) {
		if cfg.S3URL != "" {
			o.BaseEndpoint = aws.String(cfg.S3URL)
			o.UsePathStyle = true
		}
	}), nil
}

// removeDisableGzip is a workaround for S3 signature errors with some S3-compatible services.
// See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}
