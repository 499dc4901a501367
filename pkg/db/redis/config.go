package redis

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Значения по умолчанию.
const (
	DefaultHost     = "localhost"
	DefaultPort     = 6379
	DefaultPoolSize = 10
	DefaultTimeout  = 3 * time.Second
)

// Config содержит настройки подключения к Redis.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
	Timeout  time.Duration
}

// Address возвращает адрес host:port.
func (c *Config) Address() string {
	host := c.Host
	if host == "" {
		host = DefaultHost
	}
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// Options переводит Config в опции go-redis.
func (c *Config) Options() *redis.Options {
	poolSize := c.PoolSize
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &redis.Options{
		Addr:         c.Address(),
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     poolSize,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
}
