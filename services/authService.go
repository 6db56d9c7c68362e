package services

import (
	"CarePoint/models"
	"CarePoint/repositories"
	"CarePoint/utils"
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/google/uuid"
)

// RegisterRequest carries the account fields plus the role-specific profile
// payload. Exactly one of Patient/Doctor is read, depending on Role.
type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	DateOfBirth string `json:"date_of_birth"`

	Patient *PatientProfileData `json:"patient,omitempty"`
	Doctor  *DoctorProfileData  `json:"doctor,omitempty"`
}

type PatientProfileData struct {
	BloodGroup            string   `json:"blood_group"`
	Allergies             []string `json:"allergies"`
	MedicalHistory        []string `json:"medical_history"`
	EmergencyName         string   `json:"emergency_name"`
	EmergencyRelationship string   `json:"emergency_relationship"`
	EmergencyPhone        string   `json:"emergency_phone"`
	InsuranceProvider     string   `json:"insurance_provider"`
	PolicyNumber          string   `json:"policy_number"`
}

type DoctorProfileData struct {
	Specialization   string   `json:"specialization"`
	Qualifications   []string `json:"qualifications"`
	Experience       int      `json:"experience"`
	LicenseNumber    string   `json:"license_number"`
	Department       string   `json:"department"`
	ConsultationFee  float64  `json:"consultation_fee"`
	AvailabilityDays []string `json:"availability_days"`
	StartTime        string   `json:"start_time"`
	EndTime          string   `json:"end_time"`
}

// TokenPair holds the freshly minted session tokens.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService handles accounts and sessions: registration with the role
// profile, login, token refresh and the password-reset flow.
type AuthService struct {
	users    repositories.UserRepository
	profiles repositories.ProfileRepository
}

func NewAuthService(users repositories.UserRepository, profiles repositories.ProfileRepository) *AuthService {
	return &AuthService{users: users, profiles: profiles}
}

// Register creates the user account and its role profile. Self-service
// registration is fixed to the Patient role; doctors and admins are
// provisioned through the admin surface.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest, allowedRoles ...string) (*models.User, error) {
	if req.Role == "" {
		req.Role = utils.RolePatient
	}
	if len(allowedRoles) > 0 && !containsRole(allowedRoles, req.Role) {
		return nil, ErrRoleNotAllowed
	}

	user := models.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
		Address:     req.Address,
		DateOfBirth: req.DateOfBirth,
	}
	if err := utils.ValidateUserData(user); err != nil {
		return nil, err
	}

	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	role, err := s.users.GetRoleByName(ctx, req.Role)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrUnknownRole
	}
	if req.Role == utils.RoleDoctor && req.Doctor == nil {
		return nil, ErrDoctorProfileRequired
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashed
	user.RoleID = role.ID

	if err := s.users.CreateUser(ctx, &user); err != nil {
		return nil, err
	}

	if err := s.createProfile(ctx, &user, req); err != nil {
		// Roll the account back so the email is not left taken by a
		// half-registered user.
		log.Printf("Failed to create %s profile for user %d: %v", req.Role, user.ID, err)
		if delErr := s.users.DeleteUser(ctx, user.ID); delErr != nil {
			log.Printf("Failed to roll back user %d after profile failure: %v", user.ID, delErr)
		}
		return nil, err
	}

	user.Password = ""
	return &user, nil
}

func (s *AuthService) createProfile(ctx context.Context, user *models.User, req RegisterRequest) error {
	switch req.Role {
	case utils.RolePatient:
		patient := models.Patient{ID: uuid.New().String(), UserID: user.ID}
		if req.Patient != nil {
			patient.BloodGroup = req.Patient.BloodGroup
			patient.Allergies = req.Patient.Allergies
			patient.MedicalHistory = req.Patient.MedicalHistory
			patient.EmergencyName = req.Patient.EmergencyName
			patient.EmergencyRelationship = req.Patient.EmergencyRelationship
			patient.EmergencyPhone = req.Patient.EmergencyPhone
			patient.InsuranceProvider = req.Patient.InsuranceProvider
			patient.PolicyNumber = req.Patient.PolicyNumber
		}
		return s.profiles.CreatePatient(ctx, &patient)
	case utils.RoleDoctor:
		if req.Doctor == nil {
			return ErrDoctorProfileRequired
		}
		doctor := models.Doctor{
			ID:               uuid.New().String(),
			UserID:           user.ID,
			Specialization:   req.Doctor.Specialization,
			Qualifications:   req.Doctor.Qualifications,
			Experience:       req.Doctor.Experience,
			LicenseNumber:    req.Doctor.LicenseNumber,
			Department:       req.Doctor.Department,
			ConsultationFee:  req.Doctor.ConsultationFee,
			AvailabilityDays: req.Doctor.AvailabilityDays,
			StartTime:        req.Doctor.StartTime,
			EndTime:          req.Doctor.EndTime,
		}
		return s.profiles.CreateDoctor(ctx, &doctor)
	case utils.RoleAdmin:
		admin := models.Admin{ID: uuid.New().String(), UserID: user.ID}
		return s.profiles.CreateAdmin(ctx, &admin)
	default:
		return ErrUnknownRole
	}
}

// Login verifies the credentials and returns the user with a fresh token
// pair. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	user, err := s.users.AuthenticateUser(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if !utils.CheckPassword(user.Password, password) {
		return nil, nil, repositories.ErrInvalidCredentials
	}

	access, refresh, err := utils.GenerateTokens(strconv.FormatInt(user.ID, 10), user.Role.Name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	user.Password = ""
	return user, &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := utils.ValidateToken(refreshToken)
	if err != nil {
		return "", err
	}
	return utils.GenerateAccessToken(claims.UserID, claims.Role)
}

// Me returns the account for the authenticated user id.
func (s *AuthService) Me(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile applies a partial update to the account's contact fields
// and drops the stale cache entries.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, patch map[string]interface{}) (*models.User, error) {
	if len(patch) == 0 {
		return nil, ErrEmptyUpdate
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.users.UpdateUserProfile(ctx, userID, patch); err != nil {
		return nil, err
	}
	s.invalidateUserCache(ctx, user)
	return s.users.GetUserByID(ctx, userID)
}

// ForgotPassword issues a reset code for the account. Unknown emails are
// reported so the controller can return NotFound per the public contract.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	code := utils.GenerateResetCode()
	if err := utils.SetResetCode(ctx, email, code); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}
	if err := utils.SendResetCodeEmail(email, code); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

// ResetPassword redeems a reset code and sets the new password.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := utils.ValidatePasswordReset(code, newPassword); err != nil {
		return err
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	stored, err := utils.GetResetCode(ctx, email)
	if err != nil {
		return err
	}
	if stored == nil || *stored != code {
		return ErrInvalidResetCode
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.UpdateUserPassword(ctx, user.ID, hashed); err != nil {
		return err
	}
	if err := utils.DeleteResetCode(ctx, email); err != nil {
		log.Printf("Failed to delete reset code for %s: %v", email, err)
	}
	s.invalidateUserCache(ctx, user)
	return nil
}

// ChangePassword verifies the current password before setting a new one.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	full, err := s.users.AuthenticateUser(ctx, user.Email)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(full.Password, currentPassword) {
		return repositories.ErrInvalidCredentials
	}
	if err := utils.ValidateNewPassword(newPassword); err != nil {
		return err
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.UpdateUserPassword(ctx, userID, hashed); err != nil {
		return err
	}
	s.invalidateUserCache(ctx, user)
	return nil
}

func (s *AuthService) invalidateUserCache(ctx context.Context, user *models.User) {
	if err := s.users.DeleteUserCache(ctx, user.Email); err != nil {
		log.Printf("Failed to invalidate user cache by email: %v", err)
	}
	if err := s.users.DeleteUserCache(ctx, strconv.FormatInt(user.ID, 10)); err != nil {
		log.Printf("Failed to invalidate user cache by id: %v", err)
	}
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
