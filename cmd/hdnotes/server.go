package main

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"hdnotes/pkg/logger"
	"hdnotes/pkg/shutdown"
)

// server - часть *fiber.App, нужная для запуска и остановки.
type server interface {
	Listen(addr string, cfg ...fiber.ListenConfig) error
	Shutdown() error
}

// storeCloser закрывает пул соединений с хранилищем.
type storeCloser interface {
	Close(ctx context.Context)
}

// serve запускает srv в горутине. Если Listen вернул ошибку, она попадает в
// возвращаемый канал, а ctx отменяется через cancel, что будит shutdown.Wait.
func serve(ctx context.Context, srv server, addr string, cancel context.CancelFunc) <-chan error {
	failed := make(chan error, 1)
	go func() {
		if err := srv.Listen(addr); err != nil {
			logger.Log(ctx).Error(ctx, ErrStartHTTPServer, zap.Error(err))
			failed <- err
			cancel()
		}
	}()
	return failed
}

// stopHTTPThenStore останавливает HTTP сервер и только затем закрывает пул:
// запросы, которые еще обрабатываются, продолжают видеть хранилище.
func stopHTTPThenStore(srv server, store storeCloser) shutdown.Hook {
	return func(ctx context.Context) error {
		log := logger.Log(ctx)

		log.Info(ctx, LogStoppingHTTP)
		err := srv.Shutdown()

		log.Info(ctx, LogClosingDatabase)
		store.Close(ctx)

		return err
	}
}
