package cognito

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	apperrors "github.com/echnavi/charge-admin-backend/pkg/errors"
)

// classify maps provider exceptions onto typed error codes. Anything not
// recognized is a dependency failure.
func classify(err error, msg string) error {
	var (
		notAuthorized   *types.NotAuthorizedException
		userNotFound    *types.UserNotFoundException
		codeMismatch    *types.CodeMismatchException
		expiredCode     *types.ExpiredCodeException
		invalidPassword *types.InvalidPasswordException
		usernameExists  *types.UsernameExistsException
	)

	switch {
	case errors.As(err, &notAuthorized):
		return apperrors.Wrap(apperrors.CodeUnauthorized, err, msg)
	case errors.As(err, &userNotFound):
		return apperrors.Wrap(apperrors.CodeNotFound, err, msg)
	case errors.As(err, &codeMismatch),
		errors.As(err, &expiredCode),
		errors.As(err, &invalidPassword):
		return apperrors.Wrap(apperrors.CodeValidation, err, msg)
	case errors.As(err, &usernameExists):
		return apperrors.Wrap(apperrors.CodeConflict, err, msg)
	default:
		return apperrors.Wrap(apperrors.CodeDependency, err, msg)
	}
}

// IsNotAuthorized reports an invalid-credential provider error.
func IsNotAuthorized(err error) bool {
	return apperrors.CodeOf(err) == apperrors.CodeUnauthorized
}

// IsUserNotFound reports an unknown-user provider error.
func IsUserNotFound(err error) bool {
	return apperrors.CodeOf(err) == apperrors.CodeNotFound
}

// IsCodeMismatch reports a wrong MFA or confirmation code.
func IsCodeMismatch(err error) bool {
	var target *types.CodeMismatchException
	return errors.As(err, &target)
}

// IsExpiredCode reports a stale MFA or confirmation code.
func IsExpiredCode(err error) bool {
	var target *types.ExpiredCodeException
	return errors.As(err, &target)
}

// IsInvalidPassword reports a password rejected by the pool policy.
func IsInvalidPassword(err error) bool {
	var target *types.InvalidPasswordException
	return errors.As(err, &target)
}
