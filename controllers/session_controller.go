package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"werkzeug_dashboard/app"
)

type SessionController struct{ *Srv }

func NewSessionController(s *Srv) *SessionController { return &SessionController{Srv: s} }

// Login 把后端会话凭据存进 Redis，浏览器拿到 app_session
func (sc *SessionController) Login(c *gin.Context) {
	var in struct {
		Token string `form:"token" json:"token" binding:"required"`
	}
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	token := strings.TrimSpace(in.Token)
	if token == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "token is required"})
		return
	}
	if err := sc.issueSession(c.Request.Context(), c.Writer, token); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, app.H{"error": "could not create session"})
		return
	}
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		c.JSON(http.StatusOK, app.H{"ok": true})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout 删 Redis，会话 Cookie 置空
func (sc *SessionController) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = sc.AppSess.Delete(c.Request.Context(), ck.Value)
	}
	sc.setAppCookie(c.Writer, "", -time.Second)
	c.JSON(http.StatusOK, app.H{"ok": true})
}
