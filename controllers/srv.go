// controllers/srv.go
package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"werkzeug_dashboard/app"
	"werkzeug_dashboard/records"
	"werkzeug_dashboard/service"
	"werkzeug_dashboard/session"
)

type Srv struct {
	Loans     *service.LoanService
	AppSess   *session.AppSessionStore
	Clock     func() time.Time
	Loc       *time.Location
	WebOrigin string
	Logger    *slog.Logger
}

func GetSrv(a *app.App) *Srv {
	loc := a.Config.Location
	if loc == nil {
		loc = time.Local
	}
	return &Srv{
		Loans:     a.Loans,
		AppSess:   a.AppSessions(),
		Clock:     a.Clock,
		Loc:       loc,
		WebOrigin: a.Config.WebOrigin,
		Logger:    a.Logger,
	}
}

// --- helpers ---

func (s *Srv) now() time.Time {
	if s.Clock != nil {
		return s.Clock().In(s.Loc)
	}
	return time.Now().In(s.Loc)
}

// 统一设置业务会话 Cookie
func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

// 创建会话，凭据存 Redis，浏览器只拿到随机 ID
func (s *Srv) issueSession(ctx context.Context, w http.ResponseWriter, credential string) error {
	id := uuid.NewString()
	if err := s.AppSess.Create(ctx, id, credential); err != nil {
		return err
	}
	s.setAppCookie(w, id, s.AppSess.TTL())
	return nil
}

// statusFor 错误 -> HTTP 状态码，只在这里映射
func statusFor(err error) int {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case service.IsConflict(err):
		return http.StatusConflict
	}
	return http.StatusBadGateway
}

// backendFailed 记录后端错误；凭据被拒（401）时撤销持有它的会话
func (s *Srv) backendFailed(c *gin.Context, op string, err error) {
	_ = c.Error(err)
	var re *records.Error
	if !errors.As(err, &re) {
		s.Logger.Error("backend request failed", "op", op, "error", err)
		return
	}
	s.Logger.Warn("backend rejected request", "op", op, "status", re.Status, "path", re.Path)
	if re.Status != http.StatusUnauthorized {
		return
	}
	if _, ok := c.Get("sessionID"); !ok {
		return
	}
	if cred := records.CredentialFrom(c.Request.Context()); cred != "" {
		if err := s.AppSess.RevokeCredential(c.Request.Context(), cred); err != nil {
			s.Logger.Error("revoke sessions", "error", err)
		}
	}
}
