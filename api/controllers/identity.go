package controllers

import (
	"net/http"

	"github.com/echnavi/charge-admin-backend/api/responses"
	"github.com/echnavi/charge-admin-backend/api/validators"
	"github.com/echnavi/charge-admin-backend/internal/identity"
	pkgerrors "github.com/echnavi/charge-admin-backend/pkg/errors"
	"github.com/echnavi/charge-admin-backend/pkg/logger"
)

// AdminLogin verifies a platform admin credential pair.
func AdminLogin(svc *identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "identity service unavailable"))
			return
		}

		var req identity.AdminLoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.AdminLogin(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if resp == nil {
			responses.WriteSuccess(w, "User does not exist.[E001]", "")
			return
		}
		// The dashboard expects the matching rows as an array.
		responses.WriteSuccess(w, "You can reset your password.", []identity.AdminLoginResponse{*resp})
	}
}

// AdminResetCheck verifies an admin credential keyed by account number
// ahead of a password reset.
func AdminResetCheck(svc *identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "identity service unavailable"))
			return
		}

		var req identity.AdminResetCheckRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.AdminResetCheck(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if resp == nil {
			responses.WriteSuccess(w, "User does not exist.[E001]", nil)
			return
		}
		responses.WriteSuccess(w, "You can reset your password.", resp)
	}
}

// AgencyUserLogin authenticates agency staff against the user pool.
func AgencyUserLogin(svc *identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "identity service unavailable"))
			return
		}

		var req identity.AgencyLoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.AgencyLogin(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if resp == nil {
			responses.WriteSuccess(w, "SMS認証が完了していません。初回ログインの方のリンクから認証を完了してください。", nil)
			return
		}
		responses.WriteSuccess(w, "ログインに成功しました", resp)
	}
}

// CorporateUserLogin authenticates corporate staff against the user pool.
func CorporateUserLogin(svc *identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "identity service unavailable"))
			return
		}

		var req identity.CorporateLoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.CorporateLogin(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "ログインに成功しました", resp)
	}
}

// AgencyUserSMS drives the multi-step SMS verification flow.
func AgencyUserSMS(svc *identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "identity service unavailable"))
			return
		}

		var req identity.SMSRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.SMS(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result.Message, result.Data)
	}
}
