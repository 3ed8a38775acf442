package controllers

import (
	"net/http"

	"github.com/echnavi/charge-admin-backend/api/responses"
	"github.com/echnavi/charge-admin-backend/api/validators"
	"github.com/echnavi/charge-admin-backend/internal/agencies"
	pkgerrors "github.com/echnavi/charge-admin-backend/pkg/errors"
	"github.com/echnavi/charge-admin-backend/pkg/logger"
)

// AgencyRegister creates an agency with a freshly minted public number.
func AgencyRegister(svc *agencies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "agency service unavailable"))
			return
		}

		var req agencies.RegisterRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		req.Agency = validators.SanitizeString(req.Agency, 128)

		resp, err := svc.Register(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Agency data was successfully registered in the database.", resp)
	}
}

// AgencyGetCompanies lists every agency. No rows is still a 200, with
// the sentinel message and an empty array.
func AgencyGetCompanies(svc *agencies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "agency service unavailable"))
			return
		}

		rows, err := svc.List(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if len(rows) == 0 {
			responses.WriteSuccess(w, "No agencies found.[E002]", []agencies.AgencyDTO{})
			return
		}
		responses.WriteSuccess(w, "All agencies retrieved successfully.", rows)
	}
}

// AgencyUpdateCompany rewrites an agency row in full.
func AgencyUpdateCompany(svc *agencies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "agency service unavailable"))
			return
		}

		var req agencies.UpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if _, err := svc.Update(ctx, req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Agency updated successfully.", map[string]any{"agency_id": req.AgencyID})
	}
}
