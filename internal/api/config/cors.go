package config

import "strings"

// DefaultOrigins используются, когда список источников пуст.
var DefaultOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

// CORSConfig представляет список разрешенных источников.
type CORSConfig struct {
	FrontendURL    string   `env:"FRONTEND_URL"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000,http://127.0.0.1:3000"`
}

// wildcardOrigin несовместим с AllowCredentials и пропускается.
const wildcardOrigin = "*"

// GetOrigins возвращает разрешенные источники без пустых значений, "*" и повторов.
// Пустой итог заменяется DefaultOrigins.
func (c *CORSConfig) GetOrigins() []string {
	seen := make(map[string]struct{}, len(c.AllowedOrigins)+1)
	origins := make([]string, 0, len(c.AllowedOrigins)+1)
	for _, o := range append([]string{c.FrontendURL}, c.AllowedOrigins...) {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" || o == wildcardOrigin {
			continue
		}
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		origins = append(origins, o)
	}
	if len(origins) == 0 {
		return append([]string(nil), DefaultOrigins...)
	}
	return origins
}
