package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/customer"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

// Claims is the token payload issued by the authentication service.
type Claims struct {
	UserID int64  `json:"user_id"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens and turns them into a
// customer.Principal.
type Authenticator struct {
	secret []byte
	issuer string
}

func NewAuthenticator(secret string, issuer string) Authenticator {
	return Authenticator{secret: []byte(secret), issuer: issuer}
}

// Issue signs a token for principal. Used by tests and local tooling; the
// authentication service issues production tokens.
func (a Authenticator) Issue(principal customer.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: principal.CustomerID(),
		Phone:  principal.Phone(),
		Role:   principal.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Parse validates signature, expiry and issuer.
func (a Authenticator) Parse(token string) (customer.Principal, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		options = append(options, jwt.WithIssuer(a.issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, options...)
	if err != nil {
		return customer.Principal{}, err
	}
	if !parsed.Valid {
		return customer.Principal{}, errors.New("invalid token")
	}

	role, err := customer.ParseRole(claims.Role)
	if err != nil {
		return customer.Principal{}, err
	}
	return customer.NewPrincipal(claims.UserID, claims.Phone, role)
}

// Middleware rejects requests without a valid bearer token with 401 and
// stores the principal on the echo context.
func (a Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return unauthorized(ctx, "Authorization header missing")
			}

			principal, err := a.Parse(token)
			if err != nil {
				return unauthorized(ctx, "Invalid or expired token")
			}

			ctx.Set(principalKey, principal)
			return next(ctx)
		}
	}
}

// RequireAdmin must run after Middleware.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		principal, ok := PrincipalFrom(ctx)
		if !ok {
			return unauthorized(ctx, "Authentication required")
		}
		if !principal.IsAdmin() {
			return ctx.JSON(http.StatusForbidden, Error{Code: http.StatusForbidden, Message: "Admin role required"})
		}
		return next(ctx)
	}
}

func PrincipalFrom(ctx echo.Context) (customer.Principal, bool) {
	principal, ok := ctx.Get(principalKey).(customer.Principal)
	return principal, ok
}

func unauthorized(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: message})
}
