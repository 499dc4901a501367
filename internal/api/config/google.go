package config

// GoogleConfig представляет параметры Google OAuth.
type GoogleConfig struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURI  string `env:"GOOGLE_REDIRECT_URI"`
}

// Configured сообщает, заданы ли обязательные параметры.
func (c *GoogleConfig) Configured() bool {
	return c.ClientID != "" && c.RedirectURI != ""
}
