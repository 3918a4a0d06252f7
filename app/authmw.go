package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"werkzeug_dashboard/records"
)

const AppSessionCookie = "app_session"

// CredentialStore 会话 ID -> 后端凭据（session.AppSessionStore 实现）
type CredentialStore interface {
	Credential(ctx context.Context, id string) (string, error)
}

// BackendCredential 把后端凭据放进请求 ctx。
// 优先用 app_session 对应的 Redis 会话，否则原样转发浏览器带来的后端 cookie。
// 没有凭据也放行，由后端决定是否拒绝。
func BackendCredential(store CredentialStore, backendCookie string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred := ""
		if ck, err := c.Request.Cookie(AppSessionCookie); err == nil && ck.Value != "" && store != nil {
			if v, err := store.Credential(c.Request.Context(), ck.Value); err == nil {
				cred = v
				c.Set("sessionID", ck.Value)
			}
		}
		if cred == "" && backendCookie != "" {
			if ck, err := c.Request.Cookie(backendCookie); err == nil {
				cred = ck.Value
			}
		}
		if cred != "" {
			c.Request = c.Request.WithContext(records.WithCredential(c.Request.Context(), cred))
		}
		c.Next()
	}
}
