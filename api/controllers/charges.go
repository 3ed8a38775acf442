package controllers

import (
	"net/http"

	"github.com/echnavi/charge-admin-backend/api/responses"
	"github.com/echnavi/charge-admin-backend/api/validators"
	"github.com/echnavi/charge-admin-backend/internal/charges"
	pkgerrors "github.com/echnavi/charge-admin-backend/pkg/errors"
	"github.com/echnavi/charge-admin-backend/pkg/logger"
)

// GetChargeHistory lists charging sessions in a period for the caller's
// permission-visible chargers.
func GetChargeHistory(svc *charges.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "charge service unavailable"))
			return
		}

		var req charges.HistoryRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rows, err := svc.History(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if len(rows) == 0 {
			responses.WriteSuccess(w, "利用履歴が存在しません。[E001]", nil)
			return
		}
		responses.WriteSuccess(w, "利用履歴を取得しました。", rows)
	}
}

// GetUnpaidHistory lists unsettled sessions for the caller's chargers.
func GetUnpaidHistory(svc *charges.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "charge service unavailable"))
			return
		}

		var req charges.UnpaidRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rows, err := svc.Unpaid(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if len(rows) == 0 {
			responses.WriteSuccess(w, "未払い取引が存在しません。[E001]", nil)
			return
		}
		responses.WriteSuccess(w, "未払い取引を取得しました。", rows)
	}
}

// DownloadHistory exports the full session list of a station or charger.
// The empty case still returns the (empty) row array.
func DownloadHistory(svc *charges.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "charge service unavailable"))
			return
		}

		var req charges.DownloadRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rows, err := svc.Download(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if len(rows) == 0 {
			responses.WriteSuccess(w, "データが存在しません。", []charges.DownloadRow{})
			return
		}
		responses.WriteSuccess(w, "データを取得しました。", rows)
	}
}
