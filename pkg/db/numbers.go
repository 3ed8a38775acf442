package db

import (
	"crypto/rand"
	"fmt"
	"math/big"

	apperrors "github.com/echnavi/charge-admin-backend/pkg/errors"
	"gorm.io/gorm"
)

const uniqueNumberAttempts = 5

// GenerateUniqueNumber produces a random numeric string of the given length
// that does not yet exist in table.column. The collision check runs on tx so
// the number stays reserved until the caller commits; running it outside the
// insert transaction would let two concurrent requests pick the same value.
func GenerateUniqueNumber(tx *gorm.DB, table, column string, length int) (string, error) {
	if length <= 0 {
		return "", apperrors.New(apperrors.CodeInternal, "number length must be positive")
	}

	for attempt := 0; attempt < uniqueNumberAttempts; attempt++ {
		candidate, err := randomDigits(length)
		if err != nil {
			return "", apperrors.Wrap(apperrors.CodeInternal, err, "generating candidate number")
		}

		var count int64
		if err := tx.Table(table).Where(fmt.Sprintf("%s = ?", column), candidate).Count(&count).Error; err != nil {
			return "", apperrors.Wrap(apperrors.CodeDependency, err, "checking number uniqueness")
		}
		if count == 0 {
			return candidate, nil
		}
	}

	return "", apperrors.New(apperrors.CodeInternal,
		fmt.Sprintf("failed to generate a unique %s after %d attempts", column, uniqueNumberAttempts))
}

func randomDigits(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
