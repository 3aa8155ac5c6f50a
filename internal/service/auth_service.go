package service

import (
	"errors"

	"attendly/config"
	"attendly/internal/auth"
	"attendly/internal/domain"
	"attendly/internal/models"
	"attendly/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists      = errors.New("email already registered")
	ErrUsernameExists   = errors.New("username already taken")
	ErrEmployeeNoExists = errors.New("employee number already assigned")
	ErrInvalidCreds     = errors.New("invalid email or password")
)

type AuthService struct {
	cfg      *config.Config
	userRepo *repository.UserRepository
}

func NewAuthService(cfg *config.Config, userRepo *repository.UserRepository) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo}
}

// Register creates a staff account. Admin endpoints call this; self-signup is
// not offered.
func (s *AuthService) Register(email, username, password, role, fullName, employeeNo string) (*models.User, error) {
	if role == "" {
		role = domain.RoleStaff
	}
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if employeeNo != "" {
		if _, err := s.userRepo.GetByEmployeeNo(employeeNo); err == nil {
			return nil, ErrEmployeeNoExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		FullName:     fullName,
		EmployeeNo:   employeeNo,
	}
	if err := s.userRepo.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

// LoginWithGoogle finds or links a user by Google ID and returns user +
// tokens. SSO never creates accounts; staff must already exist in the
// directory under the same email.
func (s *AuthService) LoginWithGoogle(googleID, email, avatarURL string) (*models.User, string, string, error) {
	u, err := s.userRepo.GetByGoogleID(googleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		u, err = s.userRepo.GetByEmail(email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", "", ErrInvalidCreds
			}
			return nil, "", "", err
		}
		gid := googleID
		u.GoogleID = &gid
		if avatarURL != "" && u.AvatarURL == "" {
			u.AvatarURL = avatarURL
		}
		if err := s.userRepo.Update(u); err != nil {
			return nil, "", "", err
		}
	} else if err != nil {
		return nil, "", "", err
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return "", err
	}
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", ErrInvalidCreds
	}
	return auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
}
