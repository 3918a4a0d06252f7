package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"werkzeug_dashboard/app"
	"werkzeug_dashboard/dashboard"
	"werkzeug_dashboard/models"
)

type DashboardController struct{ *Srv }

func NewDashboardController(s *Srv) *DashboardController { return &DashboardController{Srv: s} }

// 表单回显用
type checkoutForm struct {
	ToolID        string `form:"werkzeug" json:"werkzeug"`
	EmployeeID    string `form:"mitarbeiter" json:"mitarbeiter"`
	PlannedReturn string `form:"geplantes_rueckgabedatum" json:"geplantes_rueckgabedatum"`
	Purpose       string `form:"verwendungszweck" json:"verwendungszweck"`
}

type returnForm struct {
	Condition models.ReturnCondition `form:"zustand_bei_rueckgabe" json:"zustand_bei_rueckgabe"`
	Damage    string                 `form:"beschaedigungen" json:"beschaedigungen"`
	Notes     string                 `form:"rueckgabe_notizen" json:"rueckgabe_notizen"`
}

type dashboardPage struct {
	View  *dashboard.View
	Loc   *time.Location
	Today string
	Error string
	Form  checkoutForm
}

type checkoutPage struct {
	Checkout   dashboard.EnrichedCheckout
	Loc        *time.Location
	Error      string
	Form       returnForm
	Conditions []models.ReturnCondition
}

type errorPage struct {
	Message string
	Retry   string
}

// Show 看板首页
func (dc *DashboardController) Show(c *gin.Context) {
	now := dc.now()
	view, err := dc.Loans.Dashboard(c.Request.Context(), now)
	if err != nil {
		dc.backendFailed(c, "dashboard", err)
		dc.renderError(c, http.StatusBadGateway, err.Error(), "/")
		return
	}
	dc.renderDashboard(c, http.StatusOK, view, "", checkoutForm{})
}

// JSON 与首页相同的数据
func (dc *DashboardController) JSON(c *gin.Context) {
	view, err := dc.Loans.Dashboard(c.Request.Context(), dc.now())
	if err != nil {
		dc.backendFailed(c, "dashboard", err)
		c.JSON(http.StatusBadGateway, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// ShowCheckout 单条借出详情 + 归还表单；已归还或不存在返回 404
func (dc *DashboardController) ShowCheckout(c *gin.Context) {
	id := c.Param("id")
	view, err := dc.Loans.Dashboard(c.Request.Context(), dc.now())
	if err != nil {
		dc.backendFailed(c, "checkout", err)
		dc.renderError(c, http.StatusBadGateway, err.Error(), c.Request.URL.Path)
		return
	}
	e, ok := view.FindActive(id)
	if !ok {
		dc.renderError(c, http.StatusNotFound, "Ausgabe nicht gefunden oder bereits zurückgegeben", "/")
		return
	}
	dc.renderCheckout(c, http.StatusOK, e, "", returnForm{Condition: models.ReturnAsIssued})
}

func (dc *DashboardController) renderDashboard(c *gin.Context, status int, view *dashboard.View, msg string, form checkoutForm) {
	c.HTML(status, "dashboard.html", dashboardPage{
		View:  view,
		Loc:   dc.Loc,
		Today: view.Now.Format("2006-01-02"),
		Error: msg,
		Form:  form,
	})
}

func (dc *DashboardController) renderCheckout(c *gin.Context, status int, e dashboard.EnrichedCheckout, msg string, form returnForm) {
	c.HTML(status, "checkout.html", checkoutPage{
		Checkout:   e,
		Loc:        dc.Loc,
		Error:      msg,
		Form:       form,
		Conditions: models.ReturnConditions,
	})
}

func (dc *DashboardController) renderError(c *gin.Context, status int, msg, retry string) {
	c.HTML(status, "error.html", errorPage{Message: msg, Retry: retry})
}
