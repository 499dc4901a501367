package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"hdnotes/internal/api/adapters/ratelimit"
	httpServer "hdnotes/internal/api/app/http"
	"hdnotes/internal/api/app/http/auth"
	"hdnotes/internal/api/app/http/health"
	"hdnotes/internal/api/app/http/notes"
	"hdnotes/internal/api/app/http/response"
	"hdnotes/internal/api/config"
	"hdnotes/internal/api/db"
	ratelimitport "hdnotes/internal/api/ports/ratelimit"
	"hdnotes/internal/auth/adapters/mail"
	authservices "hdnotes/internal/auth/adapters/services"
	authapp "hdnotes/internal/auth/app"
	authsvc "hdnotes/internal/auth/ports/services"
	notesapp "hdnotes/internal/notes/app"
	"hdnotes/pkg/db/redis"
	"hdnotes/pkg/logger"
	"hdnotes/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "LOGGER_MODE"
	EnvLoggerLevel = "LOGGER_LEVEL"
	EnvFile        = ".env"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrConnectDatabase      = "failed to connect to database"
	ErrCreateRedisClient    = "failed to create Redis client, rate limiting disabled"
	ErrCreateMailSender     = "failed to create mail sender"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "hdnotes service started"
	LogServiceShutdownDone = "hdnotes service shutdown complete"
	LogConnectingDatabase  = "connecting to database"
	LogInitRateLimit       = "initializing rate limiter"
	LogRateLimitDisabled   = "rate limiting disabled"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingRedis        = "closing Redis connection"
	LogClosingDatabase     = "closing database connection"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx, EnvFile)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(cfg.App), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger
		ctx = logger.NewContext(ctx, finalLogger)

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.App.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogConnectingDatabase)
		gateway := db.NewGateway(&cfg.Postgres, cfg.Postgres.MigrationsDir)
		if err := gateway.Connect(ctx); err != nil {
			log.Error(ctx, ErrConnectDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		var (
			limiter     ratelimitport.Limiter
			redisClient *redis.Client
		)
		if cfg.RateLimit.Enabled {
			log.Info(ctx, LogInitRateLimit, zap.String("address", cfg.Redis.GetAddress()))
			redisClient, err = redis.NewClient(ctx, cfg.Redis.GetClientConfig())
			if err != nil {
				log.Warn(ctx, ErrCreateRedisClient, zap.Error(err))
			} else {
				limiter = ratelimit.NewRedisLimiter(redisClient.RawClient(),
					cfg.RateLimit.GetMax(cfg.App.IsProduction()), cfg.RateLimit.Window)
			}
		} else {
			log.Info(ctx, LogRateLimitDisabled)
		}

		log.Info(ctx, LogInitServices)
		factory := authservices.NewServiceFactory(authservices.FactoryOptions{
			JWTSecret:  cfg.JWT.Secret,
			TokenTTL:   cfg.JWT.TokenTTL,
			OTPTTL:     cfg.OTP.TTL,
			BcryptCost: cfg.JWT.BcryptCost,
		})

		mailer, err := newMailSender(&cfg.Mail, cfg.OTP.TTL)
		if err != nil {
			log.Error(ctx, ErrCreateMailSender, zap.Error(err))
			exitCode = 1
			return
		}

		users := gateway.Users()
		authUseCase := authapp.NewAuthUseCase(users, factory.PasswordService(), factory.TokenService(),
			factory.OTPService(), mailer, nil)
		userUseCase := authapp.NewUserUseCase(users, factory.TokenService())
		noteUseCase := notesapp.NewNoteUseCase(gateway.Notes())

		log.Info(ctx, LogInitHTTPServer)
		responder := response.New(cfg.App.IsProduction())
		app := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			BodyLimit:    cfg.HTTP.BodyLimit,
			ErrorHandler: responder.ErrorHandler,
		})

		httpServer.SetupRouter(app, httpServer.Dependencies{
			Auth:      auth.NewHandler(authUseCase, cfg.Google, responder),
			Notes:     notes.NewHandler(noteUseCase, responder),
			Health:    health.NewHandler(gateway, cfg.App.GetEnvironment(), responder, nil),
			Users:     userUseCase,
			Limiter:   limiter,
			Origins:   cfg.CORS.GetOrigins(),
			Responder: responder,
		})

		serveCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		listenFailed := serve(serveCtx, app, cfg.HTTP.GetAddress(), cancel)

		shutdown.Wait(serveCtx, cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера, затем закрытие пула соединений с базой.
			stopHTTPThenStore(app, gateway),
			// Закрытие Redis соединения.
			func(ctx context.Context) error {
				if redisClient == nil {
					return nil
				}
				log.Info(ctx, LogClosingRedis)
				return redisClient.Close(ctx)
			},
		)

		select {
		case <-listenFailed:
			exitCode = 1
		default:
		}

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// newMailSender выбирает способ доставки кодов по MAIL_DRIVER.
func newMailSender(cfg *config.MailConfig, otpTTL time.Duration) (authsvc.MailSender, error) {
	if cfg.Driver == config.MailDriverLog {
		return mail.NewLogSender(), nil
	}
	sender, err := mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		From:     cfg.From,
		AppName:  cfg.AppName,
		Timeout:  cfg.Timeout,
		OTPTTL:   otpTTL,
	})
	if err != nil {
		return nil, err
	}
	return sender, nil
}
