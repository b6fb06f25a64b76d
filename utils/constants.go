// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 72 * time.Hour

// OTPPrefix is the prefix used for Redis OTP keys.
const OTPPrefix = "otp:"

// RegistrationPrefix is the prefix used for pending registration sessions.
const RegistrationPrefix = "reg:"

// OTPTTL is how long an OTP and its pending registration stay valid.
const OTPTTL = 5 * time.Minute
