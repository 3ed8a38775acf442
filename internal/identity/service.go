package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/echnavi/charge-admin-backend/pkg/cognito"
	"github.com/echnavi/charge-admin-backend/pkg/enums"
	pkgerrors "github.com/echnavi/charge-admin-backend/pkg/errors"
	"github.com/echnavi/charge-admin-backend/pkg/logger"
	"github.com/echnavi/charge-admin-backend/pkg/phone"
	"github.com/echnavi/charge-admin-backend/pkg/security"
)

// ServiceParams groups dependencies for the identity service.
type ServiceParams struct {
	Repo     Repository
	Identity cognito.Provider
	Logger   *logger.Logger
}

// Service runs the login and SMS verification flows for every dashboard
// role. Admin credentials live in the database; agency and corporate
// credentials live in the identity pool.
type Service struct {
	repo     Repository
	identity cognito.Provider
	logg     *logger.Logger
}

// NewService builds an identity service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Identity == nil {
		return nil, errors.New("identity provider is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{repo: params.Repo, identity: params.Identity, logg: params.Logger}, nil
}

// AdminLogin checks the platform admin credential. A nil response with
// nil error means no matching account; the caller renders the sentinel.
func (s *Service) AdminLogin(ctx context.Context, req AdminLoginRequest) (*AdminLoginResponse, error) {
	credential, err := s.repo.AdminCredentialByID(ctx, req.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading admin credential")
	}
	if credential == nil {
		return nil, nil
	}
	ok, err := security.VerifyPassword(req.Password, credential.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verifying password")
	}
	if !ok {
		return nil, nil
	}
	return &AdminLoginResponse{UserID: credential.UserID}, nil
}

// AdminResetCheck verifies an admin credential addressed by public
// number ahead of a password reset. Same sentinel contract as AdminLogin.
func (s *Service) AdminResetCheck(ctx context.Context, req AdminResetCheckRequest) (*AdminResetCheckResponse, error) {
	credential, number, err := s.repo.AdminCredentialByNumber(ctx, req.AppUserNumber)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading admin credential")
	}
	if credential == nil {
		return nil, nil
	}
	ok, err := security.VerifyPassword(req.Password, credential.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verifying password")
	}
	if !ok {
		return nil, nil
	}
	return &AdminResetCheckResponse{AppUserNumber: number}, nil
}

// AgencyLogin authenticates agency staff against the pool and maps the
// account back to its database row. A nil, nil result means the phone is
// still unverified and the caller must point the user at first-time setup.
func (s *Service) AgencyLogin(ctx context.Context, req AgencyLoginRequest) (*AgencyLoginResponse, error) {
	username, err := phone.Canonicalize(req.PhoneNumber)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid phone number")
	}

	info, err := s.identity.AdminGetUser(ctx, username)
	if err != nil {
		if cognito.IsUserNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ユーザーが見つかりません")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "認証処理中にエラーが発生しました")
	}
	if !info.PhoneVerified() {
		s.logg.Info(ctx, "agency login with unverified phone")
		return nil, nil
	}

	auth, err := s.identity.InitiateAuth(ctx, username, req.Password)
	if err != nil {
		if cognito.IsNotAuthorized(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "電話番号またはパスワードが間違っています[E001]")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "認証処理中にエラーが発生しました")
	}
	if !auth.Authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "認証処理中にエラーが発生しました")
	}

	navCode := info.EchNaviCode()
	if navCode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "ユーザー属性にEchNaviコードが見つかりません")
	}
	number, found, err := s.repo.AppNumberByNavCode(ctx, navCode, enums.CategoryAgency)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving user")
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ユーザーが見つかりません[E002]")
	}

	return &AgencyLoginResponse{UserID: number, AccessToken: auth.AccessToken}, nil
}

// CorporateLogin authenticates corporate staff. Unlike the agency flow,
// verification state is checked after authentication, from the token.
func (s *Service) CorporateLogin(ctx context.Context, req CorporateLoginRequest) (*CorporateLoginResponse, error) {
	username, err := phone.Canonicalize(req.PhoneNumber)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid phone number")
	}

	auth, err := s.identity.InitiateAuth(ctx, username, req.Password)
	if err != nil {
		if cognito.IsNotAuthorized(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "電話番号またはパスワードが正しくありません")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "認証中にエラーが発生しました")
	}
	if !auth.Authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "認証中にエラーが発生しました")
	}

	info, err := s.identity.GetUser(ctx, auth.AccessToken)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "認証中にエラーが発生しました")
	}
	navCode := info.EchNaviCode()
	if navCode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ユーザー属性にEchNaviコードが見つかりません")
	}
	if !info.PhoneVerified() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "電話番号が未認証です。スマホアプリのechナビから認証を行ってください。")
	}

	number, found, err := s.repo.AppNumberByNavCode(ctx, navCode, enums.CategoryCorporate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving user")
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ユーザーが見つかりません[E002]")
	}
	return &CorporateLoginResponse{AppUserNumber: number}, nil
}

// SMS runs one step of the SMS verification wizard.
func (s *Service) SMS(ctx context.Context, req SMSRequest) (*SMSResult, error) {
	username, err := phone.Canonicalize(req.PhoneNumber)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid phone number")
	}

	switch *req.FunctionType {
	case SMSFuncFirstAuth:
		if req.EchNaviCode == "" || req.InitialPassword == "" || req.NewPassword == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "初回認証時はechNaviCode、initialPassword、newPasswordが必須です")
		}
		return s.smsFirstAuth(ctx, username, req)
	case SMSFuncVerifyCode:
		if req.EchNaviCode == "" || req.AuthCode == "" || req.Session == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "SMS認証時はechNaviCode、authCode、sessionが必須です")
		}
		return s.smsVerifyCode(ctx, username, req)
	case SMSFuncResendCode:
		if req.NewPassword == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "SMS認証コード再送信時はnewPasswordが必須です")
		}
		return s.smsResendCode(ctx, username, req)
	case SMSFuncForgotPassword:
		return s.smsForgotPassword(ctx, username)
	case SMSFuncConfirmForgot:
		if req.AuthCode == "" || req.NewPassword == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "パスワード再設定時はauthCodeとnewPasswordが必須です")
		}
		return s.smsConfirmForgot(ctx, username, req)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("無効なfunction_type: %d", *req.FunctionType))
	}
}

// smsFirstAuth handles the first login: the temporary password is
// exchanged for the user's own, which triggers the SMS challenge.
func (s *Service) smsFirstAuth(ctx context.Context, username string, req SMSRequest) (*SMSResult, error) {
	if _, err := s.resolveNavCode(ctx, req.EchNaviCode); err != nil {
		return nil, err
	}

	info, err := s.identity.AdminGetUser(ctx, username)
	if err != nil {
		if cognito.IsUserNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ユーザーが見つかりません")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading pool user")
	}
	if info.PhoneVerified() {
		return &SMSResult{Message: "認証済みです"}, nil
	}

	if info.UserStatus == cognito.UserStatusForceChangePassword {
		auth, err := s.identity.InitiateAuth(ctx, username, req.InitialPassword)
		if err != nil {
			return nil, interruptedFlow(err)
		}
		if auth.Challenge == cognito.ChallengeNewPasswordRequired {
			next, err := s.identity.RespondToNewPasswordChallenge(ctx, username, req.NewPassword, auth.Session)
			if err != nil {
				return nil, interruptedFlow(err)
			}
			if next.Challenge == cognito.ChallengeSMSMFA {
				return &SMSResult{
					Message: "パスワードが変更され、SMS認証コードが送信されました",
					Data:    map[string]any{"session": next.Session},
				}, nil
			}
		}
		return nil, interruptedFlow(nil)
	}

	// Password already set: authenticating resends the SMS challenge.
	auth, err := s.identity.InitiateAuth(ctx, username, req.NewPassword)
	if err != nil {
		return nil, interruptedFlow(err)
	}
	if auth.Challenge != cognito.ChallengeSMSMFA {
		return nil, interruptedFlow(nil)
	}
	return &SMSResult{
		Message: "SMS認証コードを送信しました",
		Data:    map[string]any{"session": auth.Session},
	}, nil
}

// smsVerifyCode answers the SMS challenge. On success SMS MFA is
// switched off so later logins go straight through.
func (s *Service) smsVerifyCode(ctx context.Context, username string, req SMSRequest) (*SMSResult, error) {
	appUserNumber, err := s.resolveNavCode(ctx, req.EchNaviCode)
	if err != nil {
		return nil, err
	}

	auth, err := s.identity.RespondToSMSChallenge(ctx, username, req.AuthCode, req.Session)
	if err != nil {
		switch {
		case cognito.IsCodeMismatch(err):
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "無効な認証コードです")
		case cognito.IsExpiredCode(err):
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "認証コードの有効期限が切れています")
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "認証に失敗しました")
		}
	}
	if !auth.Authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "認証プロセスで予期しないエラーが発生しました")
	}

	if err := s.identity.DisableMFA(ctx, username); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "MFA設定の変更に失敗しました")
	}
	return &SMSResult{
		Message: "認証が完了しました",
		Data:    map[string]any{"user_id": appUserNumber},
	}, nil
}

func (s *Service) smsResendCode(ctx context.Context, username string, req SMSRequest) (*SMSResult, error) {
	auth, err := s.identity.InitiateAuth(ctx, username, req.NewPassword)
	if err != nil {
		if cognito.IsUserNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ユーザーが見つかりません")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "SMS認証コードの再送信に失敗しました")
	}
	if auth.Challenge != cognito.ChallengeSMSMFA {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "SMS認証コードの再送信に失敗しました")
	}
	return &SMSResult{
		Message: "SMS認証コードが再送信されました",
		Data:    map[string]any{"session": auth.Session},
	}, nil
}

func (s *Service) smsForgotPassword(ctx context.Context, username string) (*SMSResult, error) {
	if err := s.identity.ForgotPassword(ctx, username); err != nil {
		if cognito.IsUserNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ユーザーが見つかりません")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "SMS送信中にエラーが発生しました")
	}
	return &SMSResult{Message: "パスワード再設定用のSMS認証コードを送信しました"}, nil
}

func (s *Service) smsConfirmForgot(ctx context.Context, username string, req SMSRequest) (*SMSResult, error) {
	if err := s.identity.ConfirmForgotPassword(ctx, username, req.AuthCode, req.NewPassword); err != nil {
		switch {
		case cognito.IsCodeMismatch(err):
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "認証コードが正しくありません")
		case cognito.IsExpiredCode(err):
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "認証コードの有効期限が切れています")
		case cognito.IsInvalidPassword(err):
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "パスワードの形式が正しくありません")
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "パスワード再設定中にエラーが発生しました")
		}
	}
	return &SMSResult{Message: "パスワードが正常に再設定されました"}, nil
}

func (s *Service) resolveNavCode(ctx context.Context, echNaviCode string) (string, error) {
	number, found, err := s.repo.AppNumberByNavCodeAnyCategory(ctx, echNaviCode)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving nav code")
	}
	if !found {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "echナビコードが間違っています")
	}
	return number, nil
}

func interruptedFlow(err error) error {
	msg := "前回の認証プロセスを中断されています。システム管理者にお問い合わせください。"
	if err == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, msg)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, msg)
}
