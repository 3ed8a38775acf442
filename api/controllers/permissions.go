package controllers

import (
	"net/http"

	"github.com/echnavi/charge-admin-backend/api/responses"
	"github.com/echnavi/charge-admin-backend/api/validators"
	"github.com/echnavi/charge-admin-backend/internal/permissions"
	pkgerrors "github.com/echnavi/charge-admin-backend/pkg/errors"
	"github.com/echnavi/charge-admin-backend/pkg/logger"
)

// GetPermission lists the permission levels visible to the caller.
func GetPermission(svc *permissions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "permission service unavailable"))
			return
		}

		var req permissions.ListRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rows, err := svc.List(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if len(rows) == 0 {
			responses.WriteSuccess(w, "権限情報が存在しません。[E001]", nil)
			return
		}
		responses.WriteSuccess(w, "権限情報を取得しました。", rows)
	}
}
