package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func (a *App) createDashboardSessionToken(sessionID string) (string, error) {
	now := a.now()
	claims := jwt.MapClaims{
		"sid": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(sessionTokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.cfg.AppSigningSecret))
}

func (a *App) verifyDashboardSessionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(a.cfg.AppSigningSecret), nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	sessionID, _ := claims["sid"].(string)
	if _, err := uuid.Parse(sessionID); err != nil {
		return "", fmt.Errorf("invalid session payload")
	}
	return sessionID, nil
}

// dashboardSession resolves the caller's session from the signed cookie, starting a fresh one
// when the cookie is missing, tampered with or points at a pruned session.
func (a *App) dashboardSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		now := a.now()
		if token, err := c.Cookie(sessionCookieName); err == nil {
			if sessionID, verifyErr := a.verifyDashboardSessionToken(token); verifyErr == nil {
				if session, ok := a.sessions.get(sessionID, now); ok {
					c.Set(sessionContextKey, session.ID)
					c.Next()
					return
				}
			}
		}

		session := a.sessions.create(themeFromRequest(c), now)
		token, err := a.createDashboardSessionToken(session.ID)
		if err != nil {
			a.log.Error("create session token failed", "error", err)
			writeAPIError(c, &apiError{Status: http.StatusInternalServerError, Code: "session_error", Message: "Could not start a session"})
			c.Abort()
			return
		}
		a.setSessionCookie(c, token)
		c.Set(sessionContextKey, session.ID)
		c.Next()
	}
}

func (a *App) setSessionCookie(c *gin.Context, token string) {
	secure := strings.EqualFold(a.cfg.Env, "production")
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, int(sessionTokenDuration.Seconds()), "/", "", secure, true)
}

func getDashboardSessionID(c *gin.Context) (string, error) {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return "", fmt.Errorf("missing session")
	}
	sessionID, ok := value.(string)
	if !ok || sessionID == "" {
		return "", fmt.Errorf("invalid session")
	}
	return sessionID, nil
}

// currentSession loads the session the middleware attached to the request.
func (a *App) currentSession(c *gin.Context) (dashboardSession, error) {
	sessionID, err := getDashboardSessionID(c)
	if err != nil {
		return dashboardSession{}, &apiError{Status: http.StatusUnauthorized, Code: "session_required", Message: "Dashboard session required"}
	}
	session, ok := a.sessions.get(sessionID, a.now())
	if !ok {
		return dashboardSession{}, &apiError{Status: http.StatusUnauthorized, Code: "session_expired", Message: "Dashboard session expired"}
	}
	return session, nil
}
