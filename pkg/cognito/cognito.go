// Package cognito wraps the AWS Cognito user pool every dashboard
// credential lives in. Phone numbers in E.164 form are the usernames.
package cognito

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/echnavi/charge-admin-backend/pkg/config"
)

// Custom attributes stored on every pool user.
const (
	AttrEchNaviCode   = "custom:ech_nav_code"
	AttrUserCategory  = "custom:user_category"
	AttrPhoneVerified = "phone_number_verified"
)

// User statuses the flows branch on.
const (
	UserStatusForceChangePassword = "FORCE_CHANGE_PASSWORD"
)

// Challenge names returned by InitiateAuth.
const (
	ChallengeNewPasswordRequired = "NEW_PASSWORD_REQUIRED"
	ChallengeSMSMFA              = "SMS_MFA"
)

// AuthResult is the outcome of an auth call: either a pending challenge
// (Challenge + Session set) or completed tokens.
type AuthResult struct {
	Challenge   string
	Session     string
	AccessToken string
}

// Authenticated reports whether the flow completed with tokens.
func (r *AuthResult) Authenticated() bool {
	return r != nil && r.AccessToken != ""
}

// UserInfo is a pool user's attribute snapshot.
type UserInfo struct {
	Username   string
	UserStatus string
	Attributes map[string]string
}

// PhoneVerified reports whether the user finished SMS verification.
func (u *UserInfo) PhoneVerified() bool {
	return u != nil && u.Attributes[AttrPhoneVerified] == "true"
}

// EchNaviCode returns the nav code attribute, empty when absent.
func (u *UserInfo) EchNaviCode() string {
	if u == nil {
		return ""
	}
	return u.Attributes[AttrEchNaviCode]
}

// CreateUserInput carries the attributes of a new dashboard user.
type CreateUserInput struct {
	Phone        string // E.164, becomes the username
	Email        string
	LastName     string
	FirstName    string
	EchNaviCode  string
	UserCategory string
}

// Provider is the identity surface the services depend on.
type Provider interface {
	AdminCreateUser(ctx context.Context, in CreateUserInput) (string, error)
	SetSMSMFARequired(ctx context.Context, username string) error
	DisableMFA(ctx context.Context, username string) error
	InitiateAuth(ctx context.Context, username, password string) (*AuthResult, error)
	RespondToNewPasswordChallenge(ctx context.Context, username, newPassword, session string) (*AuthResult, error)
	RespondToSMSChallenge(ctx context.Context, username, code, session string) (*AuthResult, error)
	GetUser(ctx context.Context, accessToken string) (*UserInfo, error)
	AdminGetUser(ctx context.Context, username string) (*UserInfo, error)
	FindUsernameByEmail(ctx context.Context, email string) (string, error)
	AdminDeleteUser(ctx context.Context, username string) error
	ForgotPassword(ctx context.Context, username string) error
	ConfirmForgotPassword(ctx context.Context, username, code, newPassword string) error
}

// Client implements Provider against a real user pool.
type Client struct {
	api          *cip.Client
	userPoolID   string
	clientID     string
	clientSecret string
}

var _ Provider = (*Client)(nil)

// New builds a pool client from configuration. Static credentials are
// honored when set; otherwise the default AWS chain applies.
func New(ctx context.Context, cfg config.CognitoConfig) (*Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return &Client{
		api:          cip.NewFromConfig(awsCfg),
		userPoolID:   cfg.UserPoolID,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}, nil
}

// AdminCreateUser registers a pool user with a generated temporary password
// delivered by email, then returns the pool username.
func (c *Client) AdminCreateUser(ctx context.Context, in CreateUserInput) (string, error) {
	out, err := c.api.AdminCreateUser(ctx, &cip.AdminCreateUserInput{
		UserPoolId: &c.userPoolID,
		Username:   &in.Phone,
		UserAttributes: []types.AttributeType{
			attr("email", in.Email),
			attr("phone_number", in.Phone),
			attr("family_name", in.LastName),
			attr("given_name", in.FirstName),
			attr(AttrEchNaviCode, in.EchNaviCode),
			attr(AttrUserCategory, in.UserCategory),
			attr("email_verified", "true"),
			attr(AttrPhoneVerified, "false"),
		},
		DesiredDeliveryMediums: []types.DeliveryMediumType{types.DeliveryMediumTypeEmail},
	})
	if err != nil {
		return "", classify(err, "creating pool user")
	}
	if out.User == nil || out.User.Username == nil {
		return "", classify(fmt.Errorf("pool returned no username"), "creating pool user")
	}
	return *out.User.Username, nil
}

// SetSMSMFARequired turns on the SMS MFA option for the user's phone.
func (c *Client) SetSMSMFARequired(ctx context.Context, username string) error {
	_, err := c.api.AdminSetUserSettings(ctx, &cip.AdminSetUserSettingsInput{
		UserPoolId: &c.userPoolID,
		Username:   &username,
		MFAOptions: []types.MFAOptionType{{
			DeliveryMedium: types.DeliveryMediumTypeSms,
			AttributeName:  aws.String("phone_number"),
		}},
	})
	if err != nil {
		return classify(err, "enabling SMS MFA")
	}
	return nil
}

// DisableMFA clears the user's MFA options after first-login verification.
func (c *Client) DisableMFA(ctx context.Context, username string) error {
	_, err := c.api.AdminSetUserSettings(ctx, &cip.AdminSetUserSettingsInput{
		UserPoolId: &c.userPoolID,
		Username:   &username,
		MFAOptions: []types.MFAOptionType{},
	})
	if err != nil {
		return classify(err, "disabling MFA")
	}
	return nil
}

// InitiateAuth runs USER_PASSWORD_AUTH with the client secret hash.
func (c *Client) InitiateAuth(ctx context.Context, username, password string) (*AuthResult, error) {
	out, err := c.api.InitiateAuth(ctx, &cip.InitiateAuthInput{
		ClientId: &c.clientID,
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME":    username,
			"PASSWORD":    password,
			"SECRET_HASH": SecretHash(username, c.clientID, c.clientSecret),
		},
	})
	if err != nil {
		return nil, classify(err, "authenticating")
	}
	return authResult(out.ChallengeName, out.Session, out.AuthenticationResult), nil
}

// RespondToNewPasswordChallenge completes the FORCE_CHANGE_PASSWORD step.
func (c *Client) RespondToNewPasswordChallenge(ctx context.Context, username, newPassword, session string) (*AuthResult, error) {
	out, err := c.api.RespondToAuthChallenge(ctx, &cip.RespondToAuthChallengeInput{
		ClientId:      &c.clientID,
		ChallengeName: types.ChallengeNameTypeNewPasswordRequired,
		Session:       &session,
		ChallengeResponses: map[string]string{
			"USERNAME":        username,
			"NEW_PASSWORD":    newPassword,
			"SECRET_HASH":     SecretHash(username, c.clientID, c.clientSecret),
			"USER_ID_FOR_SRP": username,
		},
	})
	if err != nil {
		return nil, classify(err, "setting new password")
	}
	return authResult(out.ChallengeName, out.Session, out.AuthenticationResult), nil
}

// RespondToSMSChallenge answers the SMS_MFA challenge with a received code.
func (c *Client) RespondToSMSChallenge(ctx context.Context, username, code, session string) (*AuthResult, error) {
	out, err := c.api.RespondToAuthChallenge(ctx, &cip.RespondToAuthChallengeInput{
		ClientId:      &c.clientID,
		ChallengeName: types.ChallengeNameTypeSmsMfa,
		Session:       &session,
		ChallengeResponses: map[string]string{
			"USERNAME":     username,
			"SMS_MFA_CODE": code,
			"SECRET_HASH":  SecretHash(username, c.clientID, c.clientSecret),
		},
	})
	if err != nil {
		return nil, classify(err, "verifying SMS code")
	}
	return authResult(out.ChallengeName, out.Session, out.AuthenticationResult), nil
}

// GetUser loads the caller's own attributes by access token.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*UserInfo, error) {
	out, err := c.api.GetUser(ctx, &cip.GetUserInput{AccessToken: &accessToken})
	if err != nil {
		return nil, classify(err, "loading user by token")
	}
	info := &UserInfo{Attributes: attributeMap(out.UserAttributes)}
	if out.Username != nil {
		info.Username = *out.Username
	}
	return info, nil
}

// AdminGetUser loads a user's attributes and status by username.
func (c *Client) AdminGetUser(ctx context.Context, username string) (*UserInfo, error) {
	out, err := c.api.AdminGetUser(ctx, &cip.AdminGetUserInput{
		UserPoolId: &c.userPoolID,
		Username:   &username,
	})
	if err != nil {
		return nil, classify(err, "loading user")
	}
	info := &UserInfo{
		UserStatus: string(out.UserStatus),
		Attributes: attributeMap(out.UserAttributes),
	}
	if out.Username != nil {
		info.Username = *out.Username
	}
	return info, nil
}

// FindUsernameByEmail resolves a unique pool username from an email filter.
// An empty string means zero or ambiguous matches.
func (c *Client) FindUsernameByEmail(ctx context.Context, email string) (string, error) {
	filter := fmt.Sprintf("email = %q", email)
	out, err := c.api.ListUsers(ctx, &cip.ListUsersInput{
		UserPoolId: &c.userPoolID,
		Filter:     &filter,
	})
	if err != nil {
		return "", classify(err, "searching users by email")
	}
	if len(out.Users) != 1 || out.Users[0].Username == nil {
		return "", nil
	}
	return *out.Users[0].Username, nil
}

// AdminDeleteUser removes the pool account.
func (c *Client) AdminDeleteUser(ctx context.Context, username string) error {
	_, err := c.api.AdminDeleteUser(ctx, &cip.AdminDeleteUserInput{
		UserPoolId: &c.userPoolID,
		Username:   &username,
	})
	if err != nil {
		return classify(err, "deleting pool user")
	}
	return nil
}

// ForgotPassword sends the password-reset SMS code.
func (c *Client) ForgotPassword(ctx context.Context, username string) error {
	_, err := c.api.ForgotPassword(ctx, &cip.ForgotPasswordInput{
		ClientId:   &c.clientID,
		SecretHash: aws.String(SecretHash(username, c.clientID, c.clientSecret)),
		Username:   &username,
	})
	if err != nil {
		return classify(err, "sending reset code")
	}
	return nil
}

// ConfirmForgotPassword sets a new password using the SMS code.
func (c *Client) ConfirmForgotPassword(ctx context.Context, username, code, newPassword string) error {
	_, err := c.api.ConfirmForgotPassword(ctx, &cip.ConfirmForgotPasswordInput{
		ClientId:         &c.clientID,
		SecretHash:       aws.String(SecretHash(username, c.clientID, c.clientSecret)),
		Username:         &username,
		ConfirmationCode: &code,
		Password:         &newPassword,
	})
	if err != nil {
		return classify(err, "confirming password reset")
	}
	return nil
}

func attr(name, value string) types.AttributeType {
	return types.AttributeType{Name: aws.String(name), Value: aws.String(value)}
}

func attributeMap(attrs []types.AttributeType) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if a.Name != nil && a.Value != nil {
			m[*a.Name] = *a.Value
		}
	}
	return m
}

func authResult(challenge types.ChallengeNameType, session *string, result *types.AuthenticationResultType) *AuthResult {
	out := &AuthResult{Challenge: string(challenge)}
	if session != nil {
		out.Session = *session
	}
	if result != nil && result.AccessToken != nil {
		out.AccessToken = *result.AccessToken
	}
	return out
}
