package controllers

import (
	"net/http"

	"github.com/echnavi/charge-admin-backend/api/responses"
	"github.com/echnavi/charge-admin-backend/api/validators"
	"github.com/echnavi/charge-admin-backend/internal/powersupplies"
	pkgerrors "github.com/echnavi/charge-admin-backend/pkg/errors"
	"github.com/echnavi/charge-admin-backend/pkg/logger"
)

// GetPowerSupplies lists the chargers the caller's permission covers.
func GetPowerSupplies(svc *powersupplies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "powersupply service unavailable"))
			return
		}

		var req powersupplies.ListRequest
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
			responses.WriteSuccess(w, "充電器情報が存在しません。[E001]", nil)
			return
		}
		responses.WriteSuccess(w, "充電器情報を取得しました。", rows)
	}
}

// PowerSupplyRegister creates a charger with a minted QR number.
func PowerSupplyRegister(svc *powersupplies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "powersupply service unavailable"))
			return
		}

		var req powersupplies.RegisterRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.Register(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "充電器情報の登録に成功しました", resp)
	}
}

// UpdatePowerSupply rewrites a charger row.
func UpdatePowerSupply(svc *powersupplies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "powersupply service unavailable"))
			return
		}

		var req powersupplies.UpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.Update(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "充電器情報の更新に成功しました", resp)
	}
}

// UpdateChargeFee reprices one charger or every charger at a station.
func UpdateChargeFee(svc *powersupplies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "powersupply service unavailable"))
			return
		}

		var req powersupplies.ChargeFeeRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.UpdateChargeFee(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "料金情報の更新に成功しました", resp)
	}
}

// QRPowerSupplyInfo resolves the charger behind a printed QR number.
func QRPowerSupplyInfo(svc *powersupplies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "powersupply service unavailable"))
			return
		}

		var req powersupplies.QRInfoRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.QRInfo(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if resp == nil {
			responses.WriteSuccess(w, "充電器情報が存在しません。[E001]", nil)
			return
		}
		responses.WriteSuccess(w, "充電器情報を取得しました。", resp)
	}
}
