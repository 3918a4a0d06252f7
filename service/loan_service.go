package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"werkzeug_dashboard/dashboard"
	"werkzeug_dashboard/models"
)

var (
	ErrMissingTool       = errors.New("Bitte ein Werkzeug auswählen")
	ErrMissingEmployee   = errors.New("Bitte einen Mitarbeiter auswählen")
	ErrMissingReturnDate = errors.New("Bitte ein geplantes Rückgabedatum angeben")
	ErrInvalidReturnDate = errors.New("Ungültiges Rückgabedatum")
	ErrReturnDateInPast  = errors.New("Das Rückgabedatum darf nicht in der Vergangenheit liegen")
	ErrUnknownTool       = errors.New("Werkzeug nicht gefunden")
	ErrUnknownEmployee   = errors.New("Mitarbeiter nicht gefunden")
	ErrAlreadyCheckedOut = errors.New("Werkzeug ist bereits ausgegeben")
	ErrMissingCheckout   = errors.New("Keine Ausgabe ausgewählt")
	ErrInvalidCondition  = errors.New("Ungültiger Zustand bei Rückgabe")
	ErrUnknownCheckout   = errors.New("Ausgabe nicht gefunden")
	ErrAlreadyReturned   = errors.New("Werkzeug wurde bereits zurückgegeben")
)

// ValidationError 输入校验失败（包在 sentinel 外面，errors.Is 可判断）
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// IsConflict 与当前数据状态冲突（工具已借出、已归还）
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyCheckedOut) || errors.Is(err, ErrAlreadyReturned)
}

// Backend records.Client 满足此接口
type Backend interface {
	dashboard.Source
	CreateCheckout(ctx context.Context, f models.CheckoutFields) (json.RawMessage, error)
	CreateReturn(ctx context.Context, f models.ReturnFields) (json.RawMessage, error)
	ToolRef(id string) *models.Ref
	EmployeeRef(id string) *models.Ref
	CheckoutRef(id string) *models.Ref
}

// DashboardObserver 每次渲染后更新指标
type DashboardObserver interface {
	SetDashboard(active, overdue, dueToday, maintenance int)
}

// 后端日期时间格式（分钟精度）
const TimestampLayout = "2006-01-02T15:04"

type LoanService struct {
	backend Backend
	obs     DashboardObserver
}

func NewLoanService(b Backend, obs DashboardObserver) *LoanService {
	return &LoanService{backend: b, obs: obs}
}

// Dashboard 拉取快照并计算看板
func (s *LoanService) Dashboard(ctx context.Context, now time.Time) (*dashboard.View, error) {
	snap, err := dashboard.Fetch(ctx, s.backend)
	if err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}
	v := dashboard.Build(snap, now)
	if s.obs != nil {
		s.obs.SetDashboard(len(v.Active), len(v.Overdue), len(v.DueToday), len(v.MaintenanceDue))
	}
	return v, nil
}

type CheckoutInput struct {
	ToolID        string
	EmployeeID    string
	PlannedReturn string
	Purpose       string
}

func (in CheckoutInput) validate(now time.Time) error {
	if strings.TrimSpace(in.ToolID) == "" {
		return invalid("werkzeug", ErrMissingTool)
	}
	if strings.TrimSpace(in.EmployeeID) == "" {
		return invalid("mitarbeiter", ErrMissingEmployee)
	}
	planned := strings.TrimSpace(in.PlannedReturn)
	if planned == "" {
		return invalid("geplantes_rueckgabedatum", ErrMissingReturnDate)
	}
	day, err := time.ParseInLocation("2006-01-02", planned, now.Location())
	if err != nil {
		return invalid("geplantes_rueckgabedatum", ErrInvalidReturnDate)
	}
	if day.Before(dashboard.StartOfDay(now)) {
		return invalid("geplantes_rueckgabedatum", ErrReturnDateInPast)
	}
	return nil
}

// CreateCheckout 校验 -> 拉快照检查冲突 -> POST
func (s *LoanService) CreateCheckout(ctx context.Context, in CheckoutInput, now time.Time) error {
	if err := in.validate(now); err != nil {
		return err
	}
	toolID := strings.TrimSpace(in.ToolID)
	employeeID := strings.TrimSpace(in.EmployeeID)

	snap, err := dashboard.Fetch(ctx, s.backend)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	if !hasRecord(snap.Tools, toolID) {
		return invalid("werkzeug", ErrUnknownTool)
	}
	if !hasRecord(snap.Employees, employeeID) {
		return invalid("mitarbeiter", ErrUnknownEmployee)
	}
	returned := dashboard.ReturnedIDs(snap.Returns)
	for _, co := range snap.Checkouts {
		if !returned[co.ID] && models.RefID(co.Fields.Tool) == toolID {
			return ErrAlreadyCheckedOut
		}
	}

	fields := models.CheckoutFields{
		Tool:          s.backend.ToolRef(toolID),
		Employee:      s.backend.EmployeeRef(employeeID),
		IssuedAt:      now.Format(TimestampLayout),
		PlannedReturn: strings.TrimSpace(in.PlannedReturn),
		Purpose:       strings.TrimSpace(in.Purpose),
	}
	if _, err := s.backend.CreateCheckout(ctx, fields); err != nil {
		return fmt.Errorf("create checkout: %w", err)
	}
	return nil
}

type ReturnInput struct {
	CheckoutID string
	Condition  models.ReturnCondition
	Damage     string
	Notes      string
}

func (in *ReturnInput) normalize() error {
	in.CheckoutID = strings.TrimSpace(in.CheckoutID)
	if in.CheckoutID == "" {
		return invalid("werkzeugausgabe", ErrMissingCheckout)
	}
	if in.Condition == "" {
		in.Condition = models.ReturnAsIssued
	}
	if !in.Condition.Valid() {
		return invalid("zustand_bei_rueckgabe", ErrInvalidCondition)
	}
	if !in.Condition.NeedsDamageReport() {
		in.Damage = ""
	}
	in.Damage = strings.TrimSpace(in.Damage)
	in.Notes = strings.TrimSpace(in.Notes)
	return nil
}

// CreateReturn 同一借出只接受一次归还
func (s *LoanService) CreateReturn(ctx context.Context, in ReturnInput, now time.Time) error {
	if err := in.normalize(); err != nil {
		return err
	}

	snap, err := dashboard.Fetch(ctx, s.backend)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	if !hasRecord(snap.Checkouts, in.CheckoutID) {
		return invalid("werkzeugausgabe", ErrUnknownCheckout)
	}
	if dashboard.ReturnedIDs(snap.Returns)[in.CheckoutID] {
		return ErrAlreadyReturned
	}

	fields := models.ReturnFields{
		Checkout:   s.backend.CheckoutRef(in.CheckoutID),
		ReturnedAt: now.Format(TimestampLayout),
		Condition:  in.Condition,
		Damage:     in.Damage,
		Notes:      in.Notes,
	}
	if _, err := s.backend.CreateReturn(ctx, fields); err != nil {
		return fmt.Errorf("create return: %w", err)
	}
	return nil
}

func hasRecord[F any](recs []models.Record[F], id string) bool {
	for _, r := range recs {
		if r.ID == id {
			return true
		}
	}
	return false
}
