package models

import "strings"

type Department string

const (
	DeptSiteManagement Department = "bauleitung"
	DeptWarehouse      Department = "lager"
	DeptAdministration Department = "verwaltung"
	DeptElectrical     Department = "elektroinstallation"
	DeptMaintenance    Department = "wartung"
	DeptCustomerCare   Department = "kundendienst"
)

func (d Department) Valid() bool {
	switch d {
	case DeptSiteManagement, DeptWarehouse, DeptAdministration, DeptElectrical, DeptMaintenance, DeptCustomerCare:
		return true
	}
	return false
}

type EmployeeFields struct {
	FirstName   string     `json:"vorname,omitempty"`
	LastName    string     `json:"nachname,omitempty"`
	PersonnelNo string     `json:"personalnummer,omitempty"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"telefon,omitempty"`
	Department  Department `json:"abteilung,omitempty"`
}

func (f EmployeeFields) FullName() string {
	return strings.TrimSpace(f.FirstName + " " + f.LastName)
}

// ShortName "V. Nachname"
func (f EmployeeFields) ShortName() string {
	initial := firstRune(f.FirstName)
	if initial == "" {
		return strings.TrimSpace(f.LastName)
	}
	return strings.TrimSpace(initial + ". " + f.LastName)
}

// Initials 两个首字母，大写
func (f EmployeeFields) Initials() string {
	return strings.ToUpper(firstRune(f.FirstName) + firstRune(f.LastName))
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
