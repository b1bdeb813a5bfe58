package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base32"
	"fmt"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"

	"github.com/critiq-labs/review-service/internal/models"
)

var hotpOpts = hotp.ValidateOpts{
	Digits:    otp.DigitsEight,
	Algorithm: otp.AlgorithmSHA256,
}

// ConfirmationCodes derives and checks HOTP confirmation codes. Each user
// gets a secret derived from the server key and their identity, and the
// user's ConfirmationSeq serves as the HOTP counter, so reissuing a code
// invalidates the previous one.
type ConfirmationCodes struct {
	secret []byte
}

func NewConfirmationCodes(secret string) *ConfirmationCodes {
	return &ConfirmationCodes{secret: []byte(secret)}
}

func (c *ConfirmationCodes) userSecret(user *models.User) string {
	mac := hmac.New(sha256.New, c.secret)
	fmt.Fprintf(mac, "%s\x00%s", user.Username, user.Email)
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(mac.Sum(nil))
}

// Generate produces the confirmation code for the user's current sequence.
func (c *ConfirmationCodes) Generate(user *models.User) (string, error) {
	code, err := hotp.GenerateCodeCustom(c.userSecret(user), user.ConfirmationSeq, hotpOpts)
	if err != nil {
		return "", fmt.Errorf("failed to generate confirmation code: %w", err)
	}
	return code, nil
}

// Verify checks a code against the user's current sequence.
func (c *ConfirmationCodes) Verify(user *models.User, code string) bool {
	ok, err := hotp.ValidateCustom(code, user.ConfirmationSeq, c.userSecret(user), hotpOpts)
	if err != nil {
		return false
	}
	return ok
}
