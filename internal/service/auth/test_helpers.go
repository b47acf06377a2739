package auth

import "time"

// NewTestJWTService creates a JWT service with an injectable time function
// for predictable expiry testing. The refresh token lifetime is fixed at
// seven times the access token lifetime, which is immaterial to tests that
// control the clock.
func NewTestJWTService(
	secret string,
	tokenLifetime time.Duration,
	timeFunc func() time.Time,
) JWTService {
	return &hmacJWTService{
		signingKey:           []byte(secret),
		tokenLifetime:        tokenLifetime,
		refreshTokenLifetime: 7 * tokenLifetime,
		timeFunc:             timeFunc,
		clockSkew:            0,
	}
}
