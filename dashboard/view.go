package dashboard

import (
	"sort"
	"time"

	"werkzeug_dashboard/models"
)

const (
	// 维护提前量
	MaintenanceWindowDays = 14
	// 最近动态条数
	ActivityLimit = 5
	// 首页逾期预览条数
	OverduePreviewLimit = 3

	Unknown = "Unbekannt"
)

// Snapshot 一次加载得到的五个集合
type Snapshot struct {
	Locations []models.Location
	Employees []models.Employee
	Tools     []models.Tool
	Checkouts []models.Checkout
	Returns   []models.Return
}

// EnrichedCheckout 未归还的借出记录，附带工具/员工和日期标记
type EnrichedCheckout struct {
	Checkout    models.Checkout  `json:"checkout"`
	Tool        *models.Tool     `json:"tool,omitempty"`
	Employee    *models.Employee `json:"employee,omitempty"`
	IsOverdue   bool             `json:"isOverdue"`
	IsDueToday  bool             `json:"isDueToday"`
	DaysOverdue int              `json:"daysOverdue"`
}

func (e EnrichedCheckout) ID() string { return e.Checkout.ID }

func (e EnrichedCheckout) ToolName() string { return ToolName(e.Tool) }

func (e EnrichedCheckout) EmployeeName() string { return EmployeeName(e.Employee) }

func (e EnrichedCheckout) EmployeeInitials() string { return EmployeeInitials(e.Employee) }

type ConditionCount struct {
	Condition models.Condition `json:"condition"`
	Label     string           `json:"label"`
	Count     int              `json:"count"`
}

type ActivityKind string

const (
	ActivityCheckout ActivityKind = "checkout"
	ActivityReturn   ActivityKind = "return"
)

type Activity struct {
	Kind         ActivityKind `json:"type"`
	ToolName     string       `json:"werkzeugName"`
	EmployeeName string       `json:"mitarbeiterName"`
	Date         string       `json:"date"`
	Timestamp    time.Time    `json:"timestamp"`
}

type LocationSummary struct {
	ID        string              `json:"record_id"`
	Name      string              `json:"name"`
	Type      models.LocationType `json:"type,omitempty"`
	ToolCount int                 `json:"toolCount"`
}

func (l LocationSummary) TypeLabel() string { return l.Type.Label() }

// View 看板全部派生数据，每次请求重新计算
type View struct {
	Now time.Time `json:"now"`

	Active   []EnrichedCheckout `json:"active"`
	Overdue  []EnrichedCheckout `json:"overdue"`
	DueToday []EnrichedCheckout `json:"dueToday"`

	ActiveToolIDs  map[string]bool `json:"activeToolIds"`
	AvailableTools []models.Tool   `json:"availableTools"`
	MaintenanceDue []models.Tool   `json:"maintenanceDue"`

	Conditions       []ConditionCount  `json:"conditions"`
	Activity         []Activity        `json:"recentActivity"`
	ToolsPerLocation map[string]int    `json:"toolsPerLocation"`
	Locations        []LocationSummary `json:"locations"`

	Employees []models.Employee `json:"employees"`
	ToolCount int               `json:"toolCount"`
}

// Build 纯计算：today 取 now 在其时区的日历日
func Build(s Snapshot, now time.Time) *View {
	loc := now.Location()
	today := StartOfDay(now)

	tools := make(map[string]*models.Tool, len(s.Tools))
	for i := range s.Tools {
		tools[s.Tools[i].ID] = &s.Tools[i]
	}
	employees := make(map[string]*models.Employee, len(s.Employees))
	for i := range s.Employees {
		employees[s.Employees[i].ID] = &s.Employees[i]
	}
	checkouts := make(map[string]*models.Checkout, len(s.Checkouts))
	for i := range s.Checkouts {
		checkouts[s.Checkouts[i].ID] = &s.Checkouts[i]
	}

	returned := ReturnedIDs(s.Returns)

	v := &View{
		Now:              now,
		Active:           []EnrichedCheckout{},
		Overdue:          []EnrichedCheckout{},
		DueToday:         []EnrichedCheckout{},
		ActiveToolIDs:    map[string]bool{},
		AvailableTools:   []models.Tool{},
		MaintenanceDue:   []models.Tool{},
		ToolsPerLocation: map[string]int{},
		Locations:        []LocationSummary{},
		Employees:        s.Employees,
		ToolCount:        len(s.Tools),
	}
	if v.Employees == nil {
		v.Employees = []models.Employee{}
	}

	for _, co := range s.Checkouts {
		if returned[co.ID] {
			continue
		}
		e := EnrichedCheckout{
			Checkout: co,
			Tool:     tools[models.RefID(co.Fields.Tool)],
			Employee: employees[models.RefID(co.Fields.Employee)],
		}
		if planned, ok := ParseDate(co.Fields.PlannedReturn, loc); ok {
			day := StartOfDay(planned)
			e.IsOverdue = day.Before(today)
			e.IsDueToday = sameDay(day, today)
			if e.IsOverdue {
				e.DaysOverdue = DaysBetween(day, today)
			}
		}
		v.Active = append(v.Active, e)
	}
	sort.SliceStable(v.Active, func(i, j int) bool {
		a, b := v.Active[i], v.Active[j]
		if ra, rb := rank(a), rank(b); ra != rb {
			return ra < rb
		}
		return a.Checkout.Fields.PlannedReturn < b.Checkout.Fields.PlannedReturn
	})

	for _, e := range v.Active {
		if id := models.RefID(e.Checkout.Fields.Tool); id != "" {
			v.ActiveToolIDs[id] = true
		}
		if e.IsOverdue {
			v.Overdue = append(v.Overdue, e)
		}
		if e.IsDueToday {
			v.DueToday = append(v.DueToday, e)
		}
	}

	for _, t := range s.Tools {
		if !v.ActiveToolIDs[t.ID] {
			v.AvailableTools = append(v.AvailableTools, t)
		}
	}

	v.MaintenanceDue = maintenanceDue(s.Tools, now)
	v.Conditions = conditionHistogram(s.Tools)
	v.Activity = recentActivity(s, tools, employees, checkouts, loc)

	locations := make(map[string]bool, len(s.Locations))
	for _, l := range s.Locations {
		locations[l.ID] = true
	}
	for _, t := range s.Tools {
		if id := models.RefID(t.Fields.CurrentLocation); locations[id] {
			v.ToolsPerLocation[id]++
		}
	}
	for _, l := range s.Locations {
		v.Locations = append(v.Locations, LocationSummary{
			ID:        l.ID,
			Name:      l.Fields.Name,
			Type:      l.Fields.Type,
			ToolCount: v.ToolsPerLocation[l.ID],
		})
	}
	return v
}

// ReturnedIDs 被任何归还记录引用的借出 ID
func ReturnedIDs(returns []models.Return) map[string]bool {
	ids := make(map[string]bool, len(returns))
	for _, r := range returns {
		if id := models.RefID(r.Fields.Checkout); id != "" {
			ids[id] = true
		}
	}
	return ids
}

// 逾期 < 今天到期 < 其它
func rank(e EnrichedCheckout) int {
	switch {
	case e.IsOverdue:
		return 0
	case e.IsDueToday:
		return 1
	}
	return 2
}

func maintenanceDue(tools []models.Tool, now time.Time) []models.Tool {
	cutoff := now.AddDate(0, 0, MaintenanceWindowDays)
	out := []models.Tool{}
	for _, t := range tools {
		d, ok := ParseDate(t.Fields.NextMaintenance, now.Location())
		if !ok {
			continue
		}
		if StartOfDay(d).Before(cutoff) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Fields.NextMaintenance < out[j].Fields.NextMaintenance
	})
	return out
}

// 未设置或未知的状态计入 gut
func conditionHistogram(tools []models.Tool) []ConditionCount {
	counts := make(map[models.Condition]int, len(models.Conditions))
	for _, t := range tools {
		c := t.Fields.Condition
		if !c.Valid() {
			c = models.ConditionGood
		}
		counts[c]++
	}
	out := make([]ConditionCount, 0, len(models.Conditions))
	for _, c := range models.Conditions {
		out = append(out, ConditionCount{Condition: c, Label: c.Label(), Count: counts[c]})
	}
	return out
}

func recentActivity(
	s Snapshot,
	tools map[string]*models.Tool,
	employees map[string]*models.Employee,
	checkouts map[string]*models.Checkout,
	loc *time.Location,
) []Activity {
	var out []Activity
	entry := func(kind ActivityKind, co *models.Checkout, createdAt string) Activity {
		ts, _ := ParseDate(createdAt, loc)
		return Activity{
			Kind:         kind,
			ToolName:     ToolName(tools[models.RefID(co.Fields.Tool)]),
			EmployeeName: EmployeeShortName(employees[models.RefID(co.Fields.Employee)]),
			Date:         createdAt,
			Timestamp:    ts,
		}
	}

	for i := range s.Checkouts {
		out = append(out, entry(ActivityCheckout, &s.Checkouts[i], s.Checkouts[i].CreatedAt))
	}
	for _, r := range firstReturns(s.Returns) {
		co, ok := checkouts[models.RefID(r.Fields.Checkout)]
		if !ok {
			continue
		}
		out = append(out, entry(ActivityReturn, co, r.CreatedAt))
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if len(out) > ActivityLimit {
		out = out[:ActivityLimit]
	}
	if out == nil {
		out = []Activity{}
	}
	return out
}

// firstReturns 每个借出只保留最早的一条归还（createdat，其次 id）
func firstReturns(returns []models.Return) []models.Return {
	first := make(map[string]int, len(returns))
	for i, r := range returns {
		id := models.RefID(r.Fields.Checkout)
		if id == "" {
			continue
		}
		j, seen := first[id]
		if !seen || earlier(r, returns[j]) {
			first[id] = i
		}
	}
	out := make([]models.Return, 0, len(first))
	for i, r := range returns {
		if j, ok := first[models.RefID(r.Fields.Checkout)]; ok && j == i {
			out = append(out, r)
		}
	}
	return out
}

func earlier(a, b models.Return) bool {
	if a.CreatedAt != b.CreatedAt {
		return a.CreatedAt < b.CreatedAt
	}
	return a.ID < b.ID
}

// FindActive 按 ID 找未归还的借出
func (v *View) FindActive(id string) (EnrichedCheckout, bool) {
	for _, e := range v.Active {
		if e.Checkout.ID == id {
			return e, true
		}
	}
	return EnrichedCheckout{}, false
}

// OverduePreview 首页只显示前三条逾期
func (v *View) OverduePreview() []EnrichedCheckout {
	if len(v.Overdue) <= OverduePreviewLimit {
		return v.Overdue
	}
	return v.Overdue[:OverduePreviewLimit]
}

// OverdueRemaining 预览之外还剩几条
func (v *View) OverdueRemaining() int {
	if n := len(v.Overdue) - OverduePreviewLimit; n > 0 {
		return n
	}
	return 0
}
