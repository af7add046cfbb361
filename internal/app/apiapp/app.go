package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/eliteconnections/backend/internal/config"
	s3infra "github.com/eliteconnections/backend/internal/infra/s3"
	pgrepo "github.com/eliteconnections/backend/internal/repo/postgres"
	redrepo "github.com/eliteconnections/backend/internal/repo/redis"
	authsvc "github.com/eliteconnections/backend/internal/services/auth"
	connectionssvc "github.com/eliteconnections/backend/internal/services/connections"
	curatorauthsvc "github.com/eliteconnections/backend/internal/services/curatorauth"
	directorysvc "github.com/eliteconnections/backend/internal/services/directory"
	experiencessvc "github.com/eliteconnections/backend/internal/services/experiences"
	gallerysvc "github.com/eliteconnections/backend/internal/services/gallery"
	introsvc "github.com/eliteconnections/backend/internal/services/introductions"
	modsvc "github.com/eliteconnections/backend/internal/services/moderation"
	profilesvc "github.com/eliteconnections/backend/internal/services/profiles"
	registersvc "github.com/eliteconnections/backend/internal/services/register"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	var redisClient *goredis.Client
	if c, err := redrepo.NewClient(ctx, cfg.Redis); err != nil {
		log.Warn("redis init failed, continuing in degraded mode", zap.Error(err))
	} else {
		redisClient = c
	}

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}
	objectSigner := s3infra.NewSigner(s3Client, cfg.S3.Bucket)

	sessionRepo := redrepo.NewSessionRepo(redisClient)
	userRepo := pgrepo.NewUserRepo(pool)
	profileRepo := pgrepo.NewProfileRepo(pool)
	directoryRepo := pgrepo.NewDirectoryRepo(pool)
	connectionRepo := pgrepo.NewConnectionRepo(pool)
	introductionRepo := pgrepo.NewIntroductionRepo(pool)
	messageRepo := pgrepo.NewMessageRepo(pool)
	experienceRepo := pgrepo.NewExperienceRepo(pool)
	galleryRepo := pgrepo.NewGalleryRepo(pool)
	moderationRepo := pgrepo.NewModerationRepo(pool)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	authService := authsvc.NewService(jwtManager, sessionRepo, cfg.Auth.RefreshTTL)
	authService.AttachCredentials(userRepo)
	registerService := registersvc.NewService(userRepo)
	profileService := profilesvc.NewService(profileRepo, userRepo, profilesvc.Config{
		AgeMin: cfg.Directory.AgeMin,
		AgeMax: cfg.Directory.AgeMax,
	})
	directoryService := directorysvc.NewService(directoryRepo, profileRepo, directorysvc.Config{
		PageSize: cfg.Directory.PageSize,
	})
	connectionsService := connectionssvc.NewService(connectionRepo, userRepo)
	introductionsService := introsvc.NewService(introductionRepo, messageRepo, userRepo, introsvc.Config{
		MessageMinLen: cfg.Directory.MessageMinLen,
		MessageMaxLen: cfg.Directory.MessageMaxLen,
	})
	experiencesService := experiencessvc.NewService(experienceRepo)
	galleryService := gallerysvc.NewService(galleryRepo, userRepo, objectSigner, gallerysvc.Config{
		SignedURLTTL: cfg.Directory.SignedURLTTL,
	})
	moderationService := modsvc.NewService(moderationRepo, profileRepo)
	curatorAuthService := curatorauthsvc.NewService(userRepo, cfg.Auth.TOTPIssuer)

	RegisterRoutes(r, Dependencies{
		AuthService:          authService,
		RegisterService:      registerService,
		ProfileService:       profileService,
		DirectoryService:     directoryService,
		ConnectionsService:   connectionsService,
		IntroductionsService: introductionsService,
		ExperiencesService:   experiencesService,
		GalleryService:       galleryService,
		ModerationService:    moderationService,
		CuratorAuthService:   curatorAuthService,
		UserRepo:             userRepo,
		Logger:               log,
		Config:               cfg,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
