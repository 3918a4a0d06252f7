package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"werkzeug_dashboard/app"
	"werkzeug_dashboard/service"
)

// LoanController 借出 / 归还。成功后 303 回首页（PRG）
type LoanController struct{ *DashboardController }

func NewLoanController(s *Srv) *LoanController {
	return &LoanController{DashboardController: NewDashboardController(s)}
}

func (f checkoutForm) input() service.CheckoutInput {
	return service.CheckoutInput{
		ToolID:        f.ToolID,
		EmployeeID:    f.EmployeeID,
		PlannedReturn: f.PlannedReturn,
		Purpose:       f.Purpose,
	}
}

func (f returnForm) input(checkoutID string) service.ReturnInput {
	return service.ReturnInput{
		CheckoutID: checkoutID,
		Condition:  f.Condition,
		Damage:     f.Damage,
		Notes:      f.Notes,
	}
}

// 表单解析失败
const invalidFormMsg = "Ungültige Formulardaten"

// 借出
func (lc *LoanController) Checkout(c *gin.Context) {
	var form checkoutForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.Error(err)
		lc.checkoutFailed(c, http.StatusBadRequest, invalidFormMsg, form)
		return
	}
	err := lc.Loans.CreateCheckout(c.Request.Context(), form.input(), lc.now())
	if err == nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	status := statusFor(err)
	if status == http.StatusBadGateway {
		lc.backendFailed(c, "checkout", err)
	}
	lc.checkoutFailed(c, status, err.Error(), form)
}

// 重新加载首页，保留表单内容
func (lc *LoanController) checkoutFailed(c *gin.Context, status int, msg string, form checkoutForm) {
	view, verr := lc.Loans.Dashboard(c.Request.Context(), lc.now())
	if verr != nil {
		lc.backendFailed(c, "dashboard", verr)
		lc.renderError(c, http.StatusBadGateway, msg, "/")
		return
	}
	lc.renderDashboard(c, status, view, msg, form)
}

// 归还
func (lc *LoanController) Return(c *gin.Context) {
	checkoutID := c.Param("id")
	var form returnForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.Error(err)
		lc.returnFailed(c, http.StatusBadRequest, checkoutID, invalidFormMsg, form)
		return
	}
	err := lc.Loans.CreateReturn(c.Request.Context(), form.input(checkoutID), lc.now())
	if err == nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	status := statusFor(err)
	if status == http.StatusBadGateway {
		lc.backendFailed(c, "return", err)
	}
	lc.returnFailed(c, status, checkoutID, err.Error(), form)
}

func (lc *LoanController) returnFailed(c *gin.Context, status int, checkoutID, msg string, form returnForm) {
	view, verr := lc.Loans.Dashboard(c.Request.Context(), lc.now())
	if verr != nil {
		lc.backendFailed(c, "dashboard", verr)
		lc.renderError(c, http.StatusBadGateway, msg, "/")
		return
	}
	if e, ok := view.FindActive(checkoutID); ok {
		lc.renderCheckout(c, status, e, msg, form)
		return
	}
	// 已归还或不存在：回到首页显示提示
	lc.renderDashboard(c, status, view, msg, checkoutForm{})
}

// --- JSON API ---

func (lc *LoanController) CheckoutJSON(c *gin.Context) {
	var in struct {
		ToolID        string `json:"werkzeug" binding:"required"`
		EmployeeID    string `json:"mitarbeiter" binding:"required"`
		PlannedReturn string `json:"geplantes_rueckgabedatum" binding:"required"`
		Purpose       string `json:"verwendungszweck"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	err := lc.Loans.CreateCheckout(c.Request.Context(), service.CheckoutInput{
		ToolID:        in.ToolID,
		EmployeeID:    in.EmployeeID,
		PlannedReturn: in.PlannedReturn,
		Purpose:       in.Purpose,
	}, lc.now())
	if err != nil {
		lc.jsonError(c, "checkout", err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"ok": true})
}

func (lc *LoanController) ReturnJSON(c *gin.Context) {
	var form returnForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if err := lc.Loans.CreateReturn(c.Request.Context(), form.input(c.Param("id")), lc.now()); err != nil {
		lc.jsonError(c, "return", err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"ok": true})
}

func (lc *LoanController) jsonError(c *gin.Context, op string, err error) {
	status := statusFor(err)
	if status == http.StatusBadGateway {
		lc.backendFailed(c, op, err)
	}
	c.JSON(status, app.H{"error": err.Error()})
}
