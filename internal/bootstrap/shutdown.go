package bootstrap

import (
	"context"
	"net/http"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"go.uber.org/zap"
)

// ShutdownOperations drains srv and only then closes the stores. Both steps
// live in one operation because gfshutdown runs operations concurrently.
func ShutdownOperations(srv *http.Server, stores *Stores, log *zap.Logger) map[string]gfshutdown.Operation {
	return map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			log.Info("shutting down http server")
			err := srv.Shutdown(ctx)
			if stores != nil && stores.Close != nil {
				stores.Close()
			}
			return err
		},
	}
}
