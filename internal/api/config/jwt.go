package config

import "time"

// JWTConfig представляет настройки токенов и хэширования паролей.
type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL   time.Duration `env:"JWT_TOKEN_TTL" env-default:"168h"`
	BcryptCost int           `env:"BCRYPT_COST" env-default:"12"`
}

// OTPConfig представляет настройки одноразовых кодов.
type OTPConfig struct {
	TTL time.Duration `env:"OTP_TTL" env-default:"10m"`
}
