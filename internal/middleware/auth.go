package middleware

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"launchpad-core/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// JWK represents a JSON Web Key
type JWK struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// JWKSet represents a set of JSON Web Keys
type JWKSet struct {
	Keys []JWK `json:"keys"`
}

// AuthUser is the identity extracted from a verified token
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Orgs  []string
}

// CanAccessOrg reports whether the user is a member of the org slug
func (u *AuthUser) CanAccessOrg(slug string) bool {
	for _, s := range u.Orgs {
		if s == slug {
			return true
		}
	}
	return false
}

// RequireOrgMember rejects requests whose authenticated user is not a member
// of the organization named by the :slug path parameter. Must run after
// RequireAuth, which stores the verified user in the context.
func RequireOrgMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		userData, exists := c.Get("user")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "User not found in context",
			})
			c.Abort()
			return
		}

		user, ok := userData.(*AuthUser)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "internal_error",
				"message": "Invalid user type in context",
			})
			c.Abort()
			return
		}

		if !user.CanAccessOrg(c.Param("slug")) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "You are not a member of this organization",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// AuthMiddleware verifies JWTs against the identity provider's JWKS
type AuthMiddleware struct {
	jwksURL    string
	issuer     string
	audience   string
	publicKeys map[string]*rsa.PublicKey
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(cfg *config.Config) (*AuthMiddleware, error) {
	am := &AuthMiddleware{
		jwksURL:    cfg.Auth.JWKSURL,
		issuer:     cfg.Auth.Issuer,
		audience:   cfg.Auth.Audience,
		publicKeys: make(map[string]*rsa.PublicKey),
	}

	if err := am.loadPublicKeys(); err != nil {
		return nil, fmt.Errorf("failed to load public keys: %w", err)
	}

	return am, nil
}

// RequireAuth is a Gin middleware that requires a valid bearer token
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Authorization header is required",
			})
			c.Abort()
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Authorization header must start with 'Bearer '",
			})
			c.Abort()
			return
		}

		user, err := am.verifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Invalid token",
			})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// verifyToken verifies the JWT signature and claims
func (am *AuthMiddleware) verifyToken(token string) (*AuthUser, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		kid, ok := token.Header["kid"].(string)
		if !ok {
			return nil, fmt.Errorf("missing key ID in token header")
		}

		publicKey, exists := am.publicKeys[kid]
		if !exists {
			return nil, fmt.Errorf("unknown key ID: %s", kid)
		}

		return publicKey, nil
	}, jwt.WithIssuer(am.issuer), jwt.WithAudience(am.audience))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !parsedToken.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	user := &AuthUser{}

	if sub, ok := claims["sub"].(string); ok {
		user.ID = sub
	}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if orgs, ok := claims["orgs"].([]interface{}); ok {
		for _, o := range orgs {
			if slug, ok := o.(string); ok {
				user.Orgs = append(user.Orgs, slug)
			}
		}
	}

	return user, nil
}

// loadPublicKeys loads public keys from the JWKS endpoint
func (am *AuthMiddleware) loadPublicKeys() error {
	resp, err := http.Get(am.jwksURL)
	if err != nil {
		return fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer resp.Body.Close()

	var jwks JWKSet
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return fmt.Errorf("failed to decode JWKS: %w", err)
	}

	for _, jwk := range jwks.Keys {
		if jwk.Kty != "RSA" {
			continue
		}

		nBytes, err := base64.RawURLEncoding.DecodeString(jwk.N)
		if err != nil {
			continue
		}

		eBytes, err := base64.RawURLEncoding.DecodeString(jwk.E)
		if err != nil {
			continue
		}

		am.publicKeys[jwk.Kid] = &rsa.PublicKey{
			N: new(big.Int).SetBytes(nBytes),
			E: int(new(big.Int).SetBytes(eBytes).Int64()),
		}
	}

	return nil
}
