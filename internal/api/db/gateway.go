// Package db предоставляет единственное подключение к хранилищу и репозитории поверх него.
package db

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"hdnotes/internal/api/config"
	authpg "hdnotes/internal/auth/adapters/postgres"
	authrepo "hdnotes/internal/auth/ports/repositories"
	notespg "hdnotes/internal/notes/adapters/postgres"
	notesrepo "hdnotes/internal/notes/ports/repositories"
	"hdnotes/pkg/db/postgres"
	"hdnotes/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing database"
	LogDBInitialized     = "database initialized successfully"
	LogDBAlreadyOpen     = "database already connected"
	LogMigrationStarting = "starting database migrations"
	LogStatusPingFailed  = "database ping failed"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply database migrations"
	ErrDBConnection = "failed to connect to database"
	ErrGetPath      = "failed to get path"
)

// Статусы хранилища для health endpoint.
const (
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
)

// ErrNotConnected возвращается репозиториями до успешного Connect.
var ErrNotConnected = errors.New("database is not connected")

// Migrator применяет миграции из каталога к базе.
type Migrator func(ctx context.Context, dsn, migrationsPath string) error

// Opener открывает пул соединений.
type Opener func(ctx context.Context, opts postgres.Options) (postgres.Pool, error)

// Option настраивает Gateway.
type Option func(*Gateway)

// WithMigrator заменяет запуск миграций.
func WithMigrator(m Migrator) Option {
	return func(g *Gateway) { g.migrate = m }
}

// WithOpener заменяет открытие пула.
func WithOpener(o Opener) Option {
	return func(g *Gateway) { g.open = o }
}

// Gateway хранит одно подключение к хранилищу на процесс.
// Connect выполняется один раз; неудача не запоминается.
type Gateway struct {
	cfg           *config.PostgresConfig
	migrationsDir string

	migrate Migrator
	open    Opener

	mu   sync.RWMutex
	pool postgres.Pool
}

// NewGateway создает Gateway без подключения.
func NewGateway(cfg *config.PostgresConfig, migrationsDir string, opts ...Option) *Gateway {
	g := &Gateway{
		cfg:           cfg,
		migrationsDir: migrationsDir,
		migrate:       postgres.MigrateDSN,
		open:          openPool,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func openPool(ctx context.Context, opts postgres.Options) (postgres.Pool, error) {
	database, err := postgres.New(ctx, opts)
	if err != nil {
		return nil, err
	}
	return database.Pool(), nil
}

// Connect применяет миграции и открывает пул при первом успешном вызове.
func (g *Gateway) Connect(ctx context.Context) error {
	log := logger.Log(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pool != nil {
		log.Debug(ctx, LogDBAlreadyOpen)
		return nil
	}

	log.Info(ctx, LogDBInitializing,
		zap.Int("min_conn", g.cfg.MinConn),
		zap.Int("max_conn", g.cfg.MaxConn))

	migrationsPath := g.migrationsDir
	if !filepath.IsAbs(migrationsPath) {
		absPath, err := filepath.Abs(migrationsPath)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", ErrDBMigrations, ErrGetPath, err)
		}
		migrationsPath = absPath
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
	if err := g.migrate(ctx, g.cfg.URL, postgres.SourceURL(migrationsPath)); err != nil {
		return fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	pool, err := g.open(ctx, g.cfg.GetOptions())
	if err != nil {
		return fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	g.pool = pool
	log.Info(ctx, LogDBInitialized)
	return nil
}

// Users возвращает репозиторий пользователей.
func (g *Gateway) Users() authrepo.UserRepository {
	return authpg.NewUserRepository(g)
}

// Notes возвращает репозиторий заметок.
func (g *Gateway) Notes() notesrepo.NoteRepository {
	return notespg.NewNoteRepository(g)
}

// Status возвращает "connected", если пул отвечает на ping.
func (g *Gateway) Status(ctx context.Context) string {
	pool := g.current()
	if pool == nil {
		return StatusDisconnected
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Log(ctx).Warn(ctx, LogStatusPingFailed, zap.Error(err))
		return StatusDisconnected
	}
	return StatusConnected
}

// Close закрывает пул; повторный Connect откроет его снова.
func (g *Gateway) Close(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pool == nil {
		return
	}
	logger.Log(ctx).Info(ctx, postgres.LogClosing)
	g.pool.Close()
	g.pool = nil
}

func (g *Gateway) current() postgres.Pool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.pool
}

// QueryRow выполняет запрос на текущем пуле.
func (g *Gateway) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	pool := g.current()
	if pool == nil {
		return errRow{err: ErrNotConnected}
	}
	return pool.QueryRow(ctx, query, args...)
}

// Query выполняет запрос на текущем пуле.
func (g *Gateway) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	pool := g.current()
	if pool == nil {
		return nil, ErrNotConnected
	}
	return pool.Query(ctx, query, args...)
}

// Exec выполняет команду на текущем пуле.
func (g *Gateway) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	pool := g.current()
	if pool == nil {
		return pgconn.CommandTag{}, ErrNotConnected
	}
	return pool.Exec(ctx, query, args...)
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}
