// Package common contains shared constants and sentinel errors used across
// SMHome components.
package common

// BearerScheme is the authorization scheme expected in the Authorization
// header and advertised in WWW-Authenticate challenges.
const BearerScheme = "Bearer"

// TokenTypeBearer is the token_type value returned by signin.
const TokenTypeBearer = "bearer"
