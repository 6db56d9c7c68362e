package models

import (
	"time"

	"gorm.io/gorm"
)

// Role represents a user role
type Role struct {
	ID          int64     `gorm:"primaryKey;column:id" json:"id"`
	Name        string    `gorm:"size:50;not null;unique;index;column:name" json:"name"`
	Description string    `gorm:"type:text;column:description" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (Role) TableName() string {
	return "roles"
}

// SeedRoles inserts initial roles into the database
func SeedRoles(db *gorm.DB) error {
	initialRoles := []Role{
		{Name: "Admin", Description: "Full access to the system"},
		{Name: "Doctor", Description: "Manages admissions, appointments and clinical records"},
		{Name: "Patient", Description: "Access to own appointments, admissions and records"},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, role := range initialRoles {
			if err := tx.FirstOrCreate(&role, Role{Name: role.Name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// User represents an account in the system. Role-specific data lives on the
// Patient, Doctor and Admin profiles, each holding a 1:1 reference back here.
type User struct {
	ID          int64     `gorm:"primaryKey;column:id" json:"id"`
	Name        string    `gorm:"size:100;not null;column:name" json:"name"`
	Email       string    `gorm:"size:255;not null;unique;index;column:email" json:"email"`
	Password    string    `gorm:"size:255;not null;column:password" json:"-"`
	RoleID      int64     `gorm:"index;not null;column:role_id" json:"role_id"`
	Role        Role      `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"role"`
	Phone       string    `gorm:"size:30;column:phone" json:"phone"`
	Address     string    `gorm:"type:text;column:address" json:"address"`
	DateOfBirth string    `gorm:"column:date_of_birth" json:"date_of_birth"`
	CreatedAt   time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// Patient profile
type Patient struct {
	ID                    string     `gorm:"primaryKey;column:id" json:"id"`
	UserID                int64      `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	User                  User       `gorm:"foreignKey:UserID;references:ID" json:"user"`
	BloodGroup            string     `gorm:"column:blood_group" json:"blood_group"`
	Allergies             []string   `gorm:"column:allergies;serializer:json" json:"allergies"`
	MedicalHistory        []string   `gorm:"column:medical_history;serializer:json" json:"medical_history"`
	EmergencyName         string     `gorm:"column:emergency_name" json:"emergency_name"`
	EmergencyRelationship string     `gorm:"column:emergency_relationship" json:"emergency_relationship"`
	EmergencyPhone        string     `gorm:"column:emergency_phone" json:"emergency_phone"`
	InsuranceProvider     string     `gorm:"column:insurance_provider" json:"insurance_provider"`
	PolicyNumber          string     `gorm:"column:policy_number" json:"policy_number"`
	PolicyExpiry          *time.Time `gorm:"column:policy_expiry" json:"policy_expiry,omitempty"`
	RegistrationDate      time.Time  `gorm:"column:registration_date;autoCreateTime;index" json:"registration_date"`
}

func (Patient) TableName() string {
	return "patient"
}

// Doctor profile
type Doctor struct {
	ID               string    `gorm:"primaryKey;column:id" json:"id"`
	UserID           int64     `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	User             User      `gorm:"foreignKey:UserID;references:ID" json:"user"`
	Specialization   string    `gorm:"column:specialization;not null" json:"specialization"`
	Qualifications   []string  `gorm:"column:qualifications;serializer:json" json:"qualifications"`
	Experience       int       `gorm:"column:experience" json:"experience"`
	LicenseNumber    string    `gorm:"column:license_number;not null;uniqueIndex" json:"license_number"`
	Department       string    `gorm:"column:department;not null" json:"department"`
	ConsultationFee  float64   `gorm:"column:consultation_fee" json:"consultation_fee"`
	AvailabilityDays []string  `gorm:"column:availability_days;serializer:json" json:"availability_days"`
	StartTime        string    `gorm:"column:start_time" json:"start_time"`
	EndTime          string    `gorm:"column:end_time" json:"end_time"`
	JoinDate         time.Time `gorm:"column:join_date;autoCreateTime;index" json:"join_date"`
}

func (Doctor) TableName() string {
	return "doctor"
}

// Admin profile
type Admin struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;references:ID" json:"user"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Admin) TableName() string {
	return "admin"
}
