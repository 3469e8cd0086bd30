package common

import (
	"net/http"

	"github.com/futig/app-builder/internal/config"
	pkgHTTP "github.com/futig/app-builder/pkg/http"
)

// NewHTTPClient builds the transport shared by the completion SDK clients.
func NewHTTPClient(cfg config.HTTPClientConfig, token string) *http.Client {
	return pkgHTTP.NewClient(
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithAuthToken(token),
		pkgHTTP.WithRequestLogging(),
	)
}
