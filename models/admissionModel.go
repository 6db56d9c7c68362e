package models

import (
	"time"
)

// Bed statuses
const (
	BedAvailable   = "Available"
	BedReserved    = "Reserved"
	BedOccupied    = "Occupied"
	BedMaintenance = "Maintenance"
)

// Bed types
const (
	BedTypeGeneral     = "General"
	BedTypeSemiPrivate = "Semi-Private"
	BedTypePrivate     = "Private"
	BedTypeICU         = "ICU"
	BedTypeEmergency   = "Emergency"
)

// Admission statuses
const (
	AdmissionRequested   = "Requested"
	AdmissionPending     = "Pending"
	AdmissionAdmitted    = "Admitted"
	AdmissionDischarged  = "Discharged"
	AdmissionTransferred = "Transferred"
)

// Bed model. The bed number is the human-facing unique identifier used on
// the admin bed-management routes; the id stays stable across renumbering.
type Bed struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	BedNumber string    `gorm:"column:bed_number;not null;uniqueIndex" json:"bed_number"`
	Type      string    `gorm:"column:type;check:type IN ('General', 'Semi-Private', 'Private', 'ICU', 'Emergency');not null" json:"type"`
	Ward      string    `gorm:"column:ward;not null" json:"ward"`
	Status    string    `gorm:"column:status;check:status IN ('Available', 'Reserved', 'Occupied', 'Maintenance');not null;default:'Available';index" json:"status"`
	Price     float64   `gorm:"column:price;not null;check:price >= 0" json:"price"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Bed) TableName() string {
	return "bed"
}

// Admission model. An admission is open while DischargeDate is NULL; the
// bed holds at most one open admission at any time.
type Admission struct {
	ID            string     `gorm:"primaryKey;column:id" json:"id"`
	PatientID     string     `gorm:"column:patient_id;not null;index" json:"patient_id"`
	BedID         string     `gorm:"column:bed_id;not null;index" json:"bed_id"`
	AdmittedBy    string     `gorm:"column:admitted_by;not null;index" json:"admitted_by"`
	AdmissionDate time.Time  `gorm:"column:admission_date;not null;index" json:"admission_date"`
	DischargeDate *time.Time `gorm:"column:discharge_date;index" json:"discharge_date,omitempty"`
	Diagnosis     string     `gorm:"column:diagnosis;not null" json:"diagnosis"`
	Status        string     `gorm:"column:status;check:status IN ('Requested', 'Pending', 'Admitted', 'Discharged', 'Transferred');not null;default:'Admitted'" json:"status"`
	Notes         string     `gorm:"column:notes" json:"notes"`
	Patient       Patient    `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Bed           Bed        `gorm:"foreignKey:BedID;references:ID" json:"-"`
	Doctor        Doctor     `gorm:"foreignKey:AdmittedBy;references:ID" json:"-"`
}

func (Admission) TableName() string {
	return "admission"
}

// Open reports whether the admission has not been discharged yet.
func (a *Admission) Open() bool {
	return a.DischargeDate == nil
}
