package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	themeCookieName   = "theme"
	themeCookieMaxAge = 365 * 24 * time.Hour
	themeLight        = "light"
	themeDark         = "dark"
)

func normalizeTheme(theme string) string {
	if strings.EqualFold(strings.TrimSpace(theme), themeDark) {
		return themeDark
	}
	return themeLight
}

func parseTheme(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case themeLight:
		return themeLight, true
	case themeDark:
		return themeDark, true
	}
	return "", false
}

func toggledTheme(theme string) string {
	if normalizeTheme(theme) == themeDark {
		return themeLight
	}
	return themeDark
}

// themeFromRequest reads the persisted preference. A missing or unreadable cookie means light.
func themeFromRequest(c *gin.Context) string {
	value, err := c.Cookie(themeCookieName)
	if err != nil {
		return themeLight
	}
	return normalizeTheme(value)
}

func (a *App) setThemeCookie(c *gin.Context, theme string) {
	secure := strings.EqualFold(a.cfg.Env, "production")
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(themeCookieName, normalizeTheme(theme), int(themeCookieMaxAge.Seconds()), "/", "", secure, false)
}

func (a *App) storeTheme(c *gin.Context, sessionID, theme string) (dashboardSession, error) {
	session, err := a.sessions.update(sessionID, a.now(), func(s *dashboardSession) error {
		s.Theme = theme
		return nil
	})
	if err != nil {
		return dashboardSession{}, err
	}
	a.setThemeCookie(c, theme)
	return session, nil
}

func (a *App) themeToggleSubmitHandler(c *gin.Context) {
	session, err := a.currentSession(c)
	if err != nil {
		writeAPIError(c, err)
		return
	}
	next := sanitizePageRedirectTarget(c.PostForm("next"))
	if _, err := a.storeTheme(c, session.ID, toggledTheme(session.Theme)); err != nil {
		redirectWithMessage(c, next, "error", pageText(a.languageFromRequest(c), "error_theme_failed"))
		return
	}
	c.Redirect(http.StatusSeeOther, next)
}

func (a *App) apiThemeHandler(c *gin.Context) {
	session, err := a.currentSession(c)
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": session.Theme, "isDarkMode": session.Theme == themeDark})
}

type themeUpdateRequest struct {
	Theme string `json:"theme"`
}

func (a *App) apiSetThemeHandler(c *gin.Context) {
	session, err := a.currentSession(c)
	if err != nil {
		writeAPIError(c, err)
		return
	}

	var payload themeUpdateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_json", Message: "Request body must be JSON"})
		return
	}
	theme, ok := parseTheme(payload.Theme)
	if !ok {
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "validation_error", Message: "theme must be light or dark"})
		return
	}

	updated, err := a.storeTheme(c, session.ID, theme)
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": updated.Theme, "isDarkMode": updated.Theme == themeDark})
}
