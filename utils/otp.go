package utils

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"

	"go.uber.org/zap"
)

// GenerateSecureOTP generates a secure random OTP of the specified length.
// It returns a base32 encoded string (without padding) truncated to the desired length.
func GenerateSecureOTP(length int) (string, error) {
	numBytes := (length*5 + 7) / 8 // Calculate the required number of bytes.
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	otp := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(otp) > length {
		otp = otp[:length]
	}
	return otp, nil
}

// InitiateOTP generates an OTP, stores it in Redis under the session with a
// 5-minute TTL and mails it to the given address.
func InitiateOTP(ctx context.Context, sessionID, email string) error {
	otp, err := GenerateSecureOTP(6)
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	client := GetOTPCacheClient()
	otpKey := OTPPrefix + sessionID
	if err := client.Set(ctx, otpKey, otp, OTPTTL).Err(); err != nil {
		GetLogger().Error("Failed to cache OTP", zap.Error(err))
		return fmt.Errorf("failed to initiate OTP")
	}

	body := fmt.Sprintf("Your PanditSeva verification code is %s. It expires in 5 minutes.", otp)
	if err := SendMail(email, "PanditSeva verification code", body); err != nil {
		return fmt.Errorf("failed to send OTP mail: %w", err)
	}
	return nil
}

// VerifyOTP compares the provided OTP against the cached one and consumes it
// on success.
func VerifyOTP(ctx context.Context, sessionID, providedOTP string) (bool, error) {
	client := GetOTPCacheClient()
	otpKey := OTPPrefix + sessionID

	cached, err := client.Get(ctx, otpKey).Result()
	if err != nil {
		return false, fmt.Errorf("OTP expired or not found")
	}
	if cached != providedOTP {
		return false, nil
	}
	client.Del(ctx, otpKey)
	return true, nil
}
