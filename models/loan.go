package models

// ReturnCondition 归还时的状态
type ReturnCondition string

const (
	ReturnAsIssued  ReturnCondition = "wie_ausgegeben"
	ReturnLightWear ReturnCondition = "leichte_gebrauchsspuren"
	ReturnHeavyWear ReturnCondition = "starke_gebrauchsspuren"
	ReturnDamaged   ReturnCondition = "beschaedigt"
	ReturnDefective ReturnCondition = "defekt"
)

var ReturnConditions = []ReturnCondition{
	ReturnAsIssued,
	ReturnLightWear,
	ReturnHeavyWear,
	ReturnDamaged,
	ReturnDefective,
}

func (c ReturnCondition) Valid() bool {
	for _, v := range ReturnConditions {
		if c == v {
			return true
		}
	}
	return false
}

// NeedsDamageReport 只有损坏/故障才记录损坏描述
func (c ReturnCondition) NeedsDamageReport() bool {
	return c == ReturnDamaged || c == ReturnDefective
}

func (c ReturnCondition) Label() string {
	switch c {
	case ReturnAsIssued:
		return "Wie ausgegeben"
	case ReturnLightWear:
		return "Leichte Gebrauchsspuren"
	case ReturnHeavyWear:
		return "Starke Gebrauchsspuren"
	case ReturnDamaged:
		return "Beschädigt"
	case ReturnDefective:
		return "Defekt"
	}
	return string(c)
}

// CheckoutFields Werkzeugausgabe
type CheckoutFields struct {
	Tool          *Ref   `json:"werkzeug,omitempty"`
	Employee      *Ref   `json:"mitarbeiter,omitempty"`
	IssuedAt      string `json:"ausgabedatum,omitempty"`
	PlannedReturn string `json:"geplantes_rueckgabedatum,omitempty"`
	Purpose       string `json:"verwendungszweck,omitempty"`
	Notes         string `json:"ausgabe_notizen,omitempty"`
}

// ReturnFields Werkzeugrueckgabe
type ReturnFields struct {
	Checkout   *Ref            `json:"werkzeugausgabe,omitempty"`
	ReturnedAt string          `json:"rueckgabedatum,omitempty"`
	Condition  ReturnCondition `json:"zustand_bei_rueckgabe,omitempty"`
	Damage     string          `json:"beschaedigungen,omitempty"`
	Notes      string          `json:"rueckgabe_notizen,omitempty"`
}
