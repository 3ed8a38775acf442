package cognito

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	apperrors "github.com/echnavi/charge-admin-backend/pkg/errors"
)

func TestSecretHash(t *testing.T) {
	// Fixed vector: HMAC-SHA256("+819012345678" + "client-id", "client-secret")
	got := SecretHash("+819012345678", "client-id", "client-secret")
	want := "ZVXk7O9FdTDcXJEJWXCDwVy3l75Bz5j7e1uuJ2K01Ck="
	if got != want {
		t.Fatalf("SecretHash = %q, want %q", got, want)
	}
}

func TestSecretHash_DependsOnUsername(t *testing.T) {
	a := SecretHash("+819011111111", "client-id", "client-secret")
	b := SecretHash("+819022222222", "client-id", "client-secret")
	if a == b {
		t.Fatal("expected different hashes for different usernames")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want apperrors.Code
	}{
		{"not authorized", &types.NotAuthorizedException{}, apperrors.CodeUnauthorized},
		{"user not found", &types.UserNotFoundException{}, apperrors.CodeNotFound},
		{"code mismatch", &types.CodeMismatchException{}, apperrors.CodeValidation},
		{"expired code", &types.ExpiredCodeException{}, apperrors.CodeValidation},
		{"invalid password", &types.InvalidPasswordException{}, apperrors.CodeValidation},
		{"username exists", &types.UsernameExistsException{}, apperrors.CodeConflict},
		{"anything else", errors.New("throttled"), apperrors.CodeDependency},
		{"wrapped", fmt.Errorf("call failed: %w", &types.UserNotFoundException{}), apperrors.CodeNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.err, "op")
			if apperrors.CodeOf(got) != tc.want {
				t.Fatalf("classify(%v) code = %v, want %v", tc.err, apperrors.CodeOf(got), tc.want)
			}
		})
	}
}

func TestAuthResultHelpers(t *testing.T) {
	session := "sess-1"
	token := "tok-1"

	pending := authResult(types.ChallengeNameTypeSmsMfa, &session, nil)
	if pending.Authenticated() {
		t.Fatal("challenge result should not be authenticated")
	}
	if pending.Challenge != ChallengeSMSMFA || pending.Session != "sess-1" {
		t.Fatalf("unexpected pending result %+v", pending)
	}

	done := authResult("", nil, &types.AuthenticationResultType{AccessToken: &token})
	if !done.Authenticated() {
		t.Fatal("token result should be authenticated")
	}
}

func TestUserInfoHelpers(t *testing.T) {
	info := &UserInfo{Attributes: map[string]string{
		AttrPhoneVerified: "true",
		AttrEchNaviCode:   "EchNaviAGE0123456789",
	}}
	if !info.PhoneVerified() {
		t.Fatal("expected phone verified")
	}
	if info.EchNaviCode() != "EchNaviAGE0123456789" {
		t.Fatalf("unexpected nav code %q", info.EchNaviCode())
	}

	var nilInfo *UserInfo
	if nilInfo.PhoneVerified() {
		t.Fatal("nil info should not be verified")
	}
	if nilInfo.EchNaviCode() != "" {
		t.Fatal("nil info should have empty nav code")
	}
}
