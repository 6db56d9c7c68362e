package models

import (
	"time"
)

// Appointment statuses
const (
	AppointmentScheduled = "Scheduled"
	AppointmentCompleted = "Completed"
	AppointmentCancelled = "Cancelled"
	AppointmentNoShow    = "No-Show"
)

// Appointment model
type Appointment struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	PatientID string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID  string    `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	Date      time.Time `gorm:"column:date;not null;index" json:"date"`
	Reason    string    `gorm:"column:reason;not null" json:"reason"`
	Status    string    `gorm:"column:status;check:status IN ('Scheduled', 'Completed', 'Cancelled', 'No-Show');not null;default:'Scheduled'" json:"status"`
	Notes     string    `gorm:"column:notes" json:"notes"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Patient   Patient   `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Doctor    Doctor    `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Appointment) TableName() string {
	return "appointment"
}

// Medication is a single line of a prescription.
type Medication struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

// Prescription model
type Prescription struct {
	ID            string       `gorm:"primaryKey;column:id" json:"id"`
	PatientID     string       `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID      string       `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	AppointmentID string       `gorm:"column:appointment_id;index" json:"appointment_id"`
	Diagnosis     string       `gorm:"column:diagnosis;not null" json:"diagnosis"`
	Medications   []Medication `gorm:"column:medications;serializer:json" json:"medications"`
	Notes         string       `gorm:"column:notes" json:"notes"`
	Date          time.Time    `gorm:"column:date;autoCreateTime;index" json:"date"`
	Patient       Patient      `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Doctor        Doctor       `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Prescription) TableName() string {
	return "prescription"
}

// Medical record types
const (
	RecordConsultation = "Consultation"
	RecordLabTest      = "Lab Test"
	RecordSurgery      = "Surgery"
	RecordVaccination  = "Vaccination"
	RecordOther        = "Other"
)

// MedicalRecord model
type MedicalRecord struct {
	ID            string    `gorm:"primaryKey;column:id" json:"id"`
	PatientID     string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID      string    `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	AppointmentID string    `gorm:"column:appointment_id;index" json:"appointment_id"`
	RecordType    string    `gorm:"column:record_type;check:record_type IN ('Consultation', 'Lab Test', 'Surgery', 'Vaccination', 'Other');not null" json:"record_type"`
	Diagnosis     string    `gorm:"column:diagnosis" json:"diagnosis"`
	Treatment     string    `gorm:"column:treatment" json:"treatment"`
	Notes         string    `gorm:"column:notes" json:"notes"`
	Date          time.Time `gorm:"column:date;autoCreateTime;index" json:"date"`
	Patient       Patient   `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Doctor        Doctor    `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (MedicalRecord) TableName() string {
	return "medical_record"
}

// Billing statuses
const (
	BillingPaid      = "Paid"
	BillingPending   = "Pending"
	BillingOverdue   = "Overdue"
	BillingCancelled = "Cancelled"
)

// BillingItem is a single billed service on an invoice.
type BillingItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Billing model
type Billing struct {
	ID            string        `gorm:"primaryKey;column:id" json:"id"`
	PatientID     string        `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Services      []BillingItem `gorm:"column:services;serializer:json" json:"services"`
	TotalAmount   float64       `gorm:"column:total_amount;not null" json:"total_amount"`
	PaymentStatus string        `gorm:"column:payment_status;check:payment_status IN ('Paid', 'Pending', 'Overdue', 'Cancelled');not null;default:'Pending';index" json:"payment_status"`
	PaymentMethod string        `gorm:"column:payment_method" json:"payment_method"`
	PaymentDate   *time.Time    `gorm:"column:payment_date" json:"payment_date,omitempty"`
	DueDate       time.Time     `gorm:"column:due_date;not null" json:"due_date"`
	InvoiceNumber string        `gorm:"column:invoice_number;not null;uniqueIndex" json:"invoice_number"`
	Notes         string        `gorm:"column:notes" json:"notes"`
	CreatedAt     time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Patient       Patient       `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Billing) TableName() string {
	return "billing"
}

// Inventory categories
const (
	InventoryMedicine  = "Medicine"
	InventoryEquipment = "Equipment"
	InventorySupplies  = "Supplies"
	InventoryOther     = "Other"
)

// Inventory model
type Inventory struct {
	ID              string     `gorm:"primaryKey;column:id" json:"id"`
	Name            string     `gorm:"column:name;not null;index" json:"name"`
	Category        string     `gorm:"column:category;check:category IN ('Medicine', 'Equipment', 'Supplies', 'Other');not null" json:"category"`
	Quantity        int        `gorm:"column:quantity;not null;check:quantity >= 0" json:"quantity"`
	Unit            string     `gorm:"column:unit;not null" json:"unit"`
	UnitPrice       float64    `gorm:"column:unit_price;not null" json:"unit_price"`
	SupplierName    string     `gorm:"column:supplier_name" json:"supplier_name"`
	SupplierContact string     `gorm:"column:supplier_contact" json:"supplier_contact"`
	SupplierEmail   string     `gorm:"column:supplier_email" json:"supplier_email"`
	ExpiryDate      *time.Time `gorm:"column:expiry_date" json:"expiry_date,omitempty"`
	ReorderLevel    int        `gorm:"column:reorder_level;not null" json:"reorder_level"`
	Location        string     `gorm:"column:location" json:"location"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Inventory) TableName() string {
	return "inventory"
}
