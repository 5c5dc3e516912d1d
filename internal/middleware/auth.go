package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/healthease-api/internal/session"
	"github.com/harentsoaR/healthease-api/internal/utils"
)

const bearerPrefix = "Bearer "

const (
	sessionContextKey = "session"
	claimsContextKey  = "claims"
	flagsContextKey   = "flags"
)

var (
	ErrMissingAuthHeader = errors.New("missing authorization header")
	ErrInvalidAuthFormat = errors.New("invalid authorization header format")
	ErrEmptyToken        = errors.New("empty token")
)

func extractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", ErrInvalidAuthFormat
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
	if token == "" {
		return "", ErrEmptyToken
	}
	return token, nil
}

func respondWithError(c *gin.Context, log zerolog.Logger, statusCode int, err error, message string) {
	log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg(message)
	c.AbortWithStatusJSON(statusCode, gin.H{"error": message})
}

// SessionMiddleware attaches the session named by the bearer token, if
// any. A missing or invalid token is not an error here; the request simply
// carries no session and reads as logged out.
func SessionMiddleware(tokens *utils.TokenManager, sessions *session.Manager, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			if !errors.Is(err, ErrMissingAuthHeader) {
				log.Debug().Err(err).Msg("ignoring malformed authorization header")
			}
			c.Next()
			return
		}

		claims, err := tokens.ValidateJWT(token)
		if err != nil {
			log.Debug().Err(err).Msg("ignoring invalid session token")
			c.Next()
			return
		}

		c.Set(claimsContextKey, claims)
		c.Set(sessionContextKey, sessions.Open(claims.SessionID()))
		c.Next()
	}
}

// GetSession returns the session attached by SessionMiddleware.
func GetSession(c *gin.Context) (*session.Session, bool) {
	v, exists := c.Get(sessionContextKey)
	if !exists {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok
}

func GetClaims(c *gin.Context) (*utils.Claims, bool) {
	v, exists := c.Get(claimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok
}

// CurrentFlags reads the request's session flags once and caches them on
// the context. Requests without a session get the logged-out defaults.
func CurrentFlags(c *gin.Context) session.Flags {
	if v, ok := c.Get(flagsContextKey); ok {
		if f, ok := v.(session.Flags); ok {
			return f
		}
	}
	var flags session.Flags
	if s, ok := GetSession(c); ok {
		flags = s.Flags(c.Request.Context())
	}
	c.Set(flagsContextKey, flags)
	return flags
}

// RequireAuth rejects requests whose session is not logged in.
func RequireAuth(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentFlags(c).IsAuthenticated {
			respondWithError(c, log, http.StatusUnauthorized, errors.New("no authenticated session"), "Authentication required")
			return
		}
		c.Next()
	}
}

// RequireRole lets through only logged in sessions holding role.
func RequireRole(role session.Role, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		flags := CurrentFlags(c)
		if !flags.IsAuthenticated {
			respondWithError(c, log, http.StatusUnauthorized, errors.New("no authenticated session"), "Authentication required")
			return
		}
		if flags.Role != role {
			respondWithError(c, log, http.StatusForbidden,
				errors.New("role "+flags.Role.String()+" cannot access "+role.String()+" routes"),
				role.Title()+" access required")
			return
		}
		c.Next()
	}
}
