package middleware

import (
	"context"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// Gin context keys set by the auth chain. ContextKeyFirebaseUID is set as
// soon as the token verifies; ContextKeyUserID once the UID has been mapped
// to an internal user row.
const (
	ContextKeyFirebaseUID = "firebase_uid"
	ContextKeyUserID      = "user_id"
)

// AuthMiddleware verifies Firebase ID tokens on incoming requests.
type AuthMiddleware struct {
	client *auth.Client
}

// NewAuthMiddleware builds the Firebase app for the given project. With an
// empty project ID it falls back to GOOGLE_APPLICATION_CREDENTIALS or the
// ambient default credentials.
func NewAuthMiddleware(projectID string) (*AuthMiddleware, error) {
	ctx := context.Background()

	var app *firebase.App
	var err error
	if projectID != "" {
		app, err = firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	} else {
		app, err = firebase.NewApp(ctx, nil, option.WithoutAuthentication())
	}
	if err != nil {
		return nil, err
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &AuthMiddleware{client: client}, nil
}

// bearerToken pulls the token out of an "Authorization: Bearer <token>"
// header value.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// Authenticate rejects requests without a valid Firebase ID token and stashes
// the verified UID (and email claim, when present) in the Gin context.
func (am *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing Authorization header",
			})
			return
		}

		raw, ok := bearerToken(header)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid Authorization header format",
			})
			return
		}

		token, err := am.client.VerifyIDToken(c.Request.Context(), raw)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to verify Firebase token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		c.Set(ContextKeyFirebaseUID, token.UID)
		if email, ok := token.Claims["email"].(string); ok {
			c.Set("email", email)
		}

		c.Next()
	}
}

// GetFirebaseUID returns the verified Firebase UID, or "" before Authenticate
// has run.
func GetFirebaseUID(c *gin.Context) string {
	if s, ok := c.Get(ContextKeyFirebaseUID); ok {
		if uid, ok := s.(string); ok {
			return uid
		}
	}
	return ""
}

// GetUserID returns the internal user UUID string, or "" when the UID has no
// user row yet.
func GetUserID(c *gin.Context) string {
	if s, ok := c.Get(ContextKeyUserID); ok {
		if id, ok := s.(string); ok {
			return id
		}
	}
	return ""
}
