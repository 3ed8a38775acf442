package controllers

import (
	"net/http"

	"github.com/echnavi/charge-admin-backend/api/responses"
	"github.com/echnavi/charge-admin-backend/api/validators"
	"github.com/echnavi/charge-admin-backend/internal/corporates"
	pkgerrors "github.com/echnavi/charge-admin-backend/pkg/errors"
	"github.com/echnavi/charge-admin-backend/pkg/logger"
)

// CorporateRegister creates a corporate client with a minted public number.
func CorporateRegister(svc *corporates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "corporate service unavailable"))
			return
		}

		var req corporates.RegisterRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		req.Corporate = validators.SanitizeString(req.Corporate, 128)

		resp, err := svc.Register(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Corporate data was successfully registered in the database.", resp)
	}
}

// CorporateGetCompanies lists every corporate client.
func CorporateGetCompanies(svc *corporates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "corporate service unavailable"))
			return
		}

		rows, err := svc.List(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if len(rows) == 0 {
			responses.WriteSuccess(w, "No corporate companies found.[E002]", []corporates.CorporateDTO{})
			return
		}
		responses.WriteSuccess(w, "All corporate companies retrieved successfully.", rows)
	}
}

// CorporateUpdateCompany rewrites a corporate row in full.
func CorporateUpdateCompany(svc *corporates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "corporate service unavailable"))
			return
		}

		var req corporates.UpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if _, err := svc.Update(ctx, req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Corporate updated successfully.", map[string]any{"corporate_id": req.CorporateID})
	}
}
