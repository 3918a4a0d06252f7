package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"werkzeug_dashboard/app"
	"werkzeug_dashboard/controllers"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	dashCtl := controllers.NewDashboardController(s)
	loanCtl := controllers.NewLoanController(s)
	sessCtl := controllers.NewSessionController(s)

	// 复用的中间件
	credMW := app.BackendCredential(a.AppSessions(), a.Config.BackendCookie)

	// Health / metrics
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(http.StatusOK, app.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(a.Metrics.Handler()))

	// ------------------------------
	// 会话（后端凭据）
	// ------------------------------
	r.POST("/session", sessCtl.Login)
	r.POST("/logout", sessCtl.Logout)

	// ------------------------------
	// 看板页面 + 表单
	// ------------------------------
	web := r.Group("", credMW)
	{
		web.GET("/", dashCtl.Show)
		web.GET("/checkouts/:id", dashCtl.ShowCheckout)
		web.POST("/checkouts", loanCtl.Checkout)
		web.POST("/checkouts/:id/return", loanCtl.Return)
	}

	// ------------------------------
	// JSON API
	// ------------------------------
	api := r.Group("/api", credMW)
	{
		api.GET("/dashboard", dashCtl.JSON)
		api.POST("/checkouts", loanCtl.CheckoutJSON)
		api.POST("/checkouts/:id/return", loanCtl.ReturnJSON)
	}
}
