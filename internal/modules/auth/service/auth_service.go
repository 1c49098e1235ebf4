package service

import (
	"errors"
	"strings"
	"time"

	"ecodrip-server/internal/config"
	"ecodrip-server/internal/model"
	moduledto "ecodrip-server/internal/modules/auth/dto"
	platformservice "ecodrip-server/internal/platform/service"
	"ecodrip-server/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	invalidCredentialsMessage = "Invalid email or password"
	duplicateEmailMessage     = "User with this email already exists"
)

// Register validates the request and stores a new user with a bcrypt hash.
func (s *Service) Register(req moduledto.RegisterRequest) (*model.User, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	email := utils.NormalizeEmail(req.Email)

	if firstName == "" || lastName == "" || email == "" || req.Password == "" {
		return nil, platformservice.NewValidationError("All fields are required")
	}
	if req.Password != req.ConfirmPassword {
		return nil, platformservice.NewValidationError("Passwords do not match")
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		return nil, platformservice.NewValidationError(msg)
	}
	if ok, msg := utils.ValidateEmail(email); !ok {
		return nil, platformservice.NewValidationError(msg)
	}

	taken, err := s.emailTaken(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, platformservice.NewConflictError(duplicateEmailMessage)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, platformservice.WrapInternal("Failed to hash password", err)
	}

	user := &model.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  string(hashed),
	}
	if err := s.userStore.Create(user); err != nil {
		// A concurrent registration may have won the unique index.
		if taken, lookupErr := s.emailTaken(email); lookupErr == nil && taken {
			return nil, platformservice.NewConflictError(duplicateEmailMessage)
		}
		return nil, platformservice.WrapInternal("Failed to create user", err)
	}
	return user, nil
}

// Login checks the credentials and issues a signed token for the user.
// Unknown email and wrong password share one message.
func (s *Service) Login(email, password string) (*model.User, string, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", platformservice.NewValidationError("Email and password are required")
	}

	user, err := s.userStore.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", platformservice.NewUnauthorizedError(invalidCredentialsMessage)
		}
		return nil, "", platformservice.WrapInternal("Failed to load user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", platformservice.NewUnauthorizedError(invalidCredentialsMessage)
	}

	token, err := s.IssueLoginToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *Service) IssueLoginToken(user *model.User) (string, error) {
	hours := config.Get().JWT.ExpirationHours
	if hours <= 0 {
		hours = 24
	}
	token, err := utils.GenerateLoginToken(user.ID, user.Email, user.IsAdmin, time.Duration(hours)*time.Hour)
	if err != nil {
		return "", platformservice.WrapInternal("Failed to issue token", err)
	}
	return token, nil
}

func (s *Service) ListUsers() ([]model.User, error) {
	users, err := s.userStore.List()
	if err != nil {
		return nil, platformservice.WrapInternal("Failed to list users", err)
	}
	return users, nil
}

// EnsureAdmin creates an admin account or promotes an existing one and resets
// its password. created reports whether a new row was inserted.
func (s *Service) EnsureAdmin(email, password, firstName, lastName string) (user *model.User, created bool, err error) {
	email = utils.NormalizeEmail(email)
	if ok, msg := utils.ValidateEmail(email); !ok {
		return nil, false, platformservice.NewValidationError(msg)
	}
	if ok, msg := utils.ValidatePassword(password); !ok {
		return nil, false, platformservice.NewValidationError(msg)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, platformservice.WrapInternal("Failed to hash password", err)
	}

	existing, err := s.userStore.FindByEmail(email)
	switch {
	case err == nil:
		existing.IsAdmin = true
		existing.Password = string(hashed)
		if err := s.userStore.Save(existing); err != nil {
			return nil, false, platformservice.WrapInternal("Failed to promote user", err)
		}
		return existing, false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, false, platformservice.WrapInternal("Failed to load user", err)
	}

	if strings.TrimSpace(firstName) == "" {
		firstName = "Admin"
	}
	if strings.TrimSpace(lastName) == "" {
		lastName = "User"
	}
	user = &model.User{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     email,
		Password:  string(hashed),
		IsAdmin:   true,
	}
	if err := s.userStore.Create(user); err != nil {
		return nil, false, platformservice.WrapInternal("Failed to create admin", err)
	}
	return user, true, nil
}

func (s *Service) emailTaken(email string) (bool, error) {
	_, err := s.userStore.FindByEmail(email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, platformservice.WrapInternal("Failed to check email", err)
}
