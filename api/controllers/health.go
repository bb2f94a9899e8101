package controllers

import (
	"net/http"

	"go.uber.org/multierr"

	"github.com/mnmarket/marketlink-backend/api/responses"
	"github.com/mnmarket/marketlink-backend/pkg/config"
	"github.com/mnmarket/marketlink-backend/pkg/db"
	pkgerrors "github.com/mnmarket/marketlink-backend/pkg/errors"
	"github.com/mnmarket/marketlink-backend/pkg/logger"
	"github.com/mnmarket/marketlink-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MarketLink-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every backing store; failures are combined so the probe
// reports all unhealthy dependencies at once.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MarketLink-Env", cfg.App.Env)

		var errs error
		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				errs = multierr.Append(errs, err)
			}
		}

		if errs != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodePersistence, errs, "readiness check failed"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
