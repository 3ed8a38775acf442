package controllers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/multierr"

	"github.com/echnavi/charge-admin-backend/api/responses"
	"github.com/echnavi/charge-admin-backend/pkg/config"
	"github.com/echnavi/charge-admin-backend/pkg/db"
	pkgerrors "github.com/echnavi/charge-admin-backend/pkg/errors"
	"github.com/echnavi/charge-admin-backend/pkg/logger"
	"github.com/echnavi/charge-admin-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-EchNavi-Env", cfg.App.Env)
		responses.WriteSuccess(w, "live", map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when both backing stores answer a ping.
func HealthReady(cfg *config.Config, dbc *db.Client, rdb *redis.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("X-EchNavi-Env", cfg.App.Env)

		var err error
		if dbc != nil {
			err = multierr.Append(err, dbc.Ping(ctx))
		}
		if rdb != nil {
			err = multierr.Append(err, rdb.Ping(ctx))
		}
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dependency not ready"))
			return
		}
		responses.WriteSuccess(w, "ready", map[string]string{"status": "ready"})
	}
}

// Hello answers the legacy dashboard reachability probe.
func Hello() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"statusCode": http.StatusOK,
			"body":       "Hello world!",
		})
	}
}
