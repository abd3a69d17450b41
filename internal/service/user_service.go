package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cms/internal/cache"
	"cms/internal/errors"
	"cms/internal/model"
	"cms/internal/repository"
)

const (
	bcryptCost      = 10
	profileCacheTTL = 5 * time.Minute
)

var fieldValidator = validator.New()

// RegisterInput carries the registration payload.
type RegisterInput struct {
	FullName        string
	Email           string
	Phone           string
	Address         string
	City            string
	State           string
	Country         string
	Pincode         string
	Password        string
	ConfirmPassword string
	Role            string
}

// UserService exposes user account operations.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	IsPhoneTaken(ctx context.Context, phone string) (bool, error)
	GetProfile(ctx context.Context, id uint) (*model.User, error)
	ChangePassword(ctx context.Context, user *model.User, currentPassword, newPassword string) error
}

type userService struct {
	userRepo      repository.UserRepository
	roleRepo      repository.RoleRepository
	passwordRules *PasswordValidator
	cache         *cache.Client
}

// NewUserService builds a UserService with repositories and cache.
func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, cache *cache.Client) UserService {
	return &userService{
		userRepo:      userRepo,
		roleRepo:      roleRepo,
		passwordRules: NewPasswordValidator(),
		cache:         cache,
	}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// Register validates the whole payload, collecting every violated rule into a
// single ValidationError, then persists the user with a hashed password. The
// uniqueness probes here are advisory; the unique indexes are the real guard.
func (s *userService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	var violations []string

	if input.FullName == "" {
		violations = append(violations, "Full Name is required.")
	}

	if err := fieldValidator.Var(input.Email, "required,email"); err != nil {
		violations = append(violations, "Invalid email format.")
	} else {
		taken, err := s.userRepo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return nil, fmt.Errorf("check email existence: %w", err)
		}
		if taken {
			violations = append(violations, fmt.Sprintf("Email '%s' already exists.", input.Email))
		}
	}

	if input.Phone == "" {
		violations = append(violations, "Mobile number is required.")
	} else {
		taken, err := s.userRepo.ExistsByPhone(ctx, input.Phone)
		if err != nil {
			return nil, fmt.Errorf("check phone existence: %w", err)
		}
		if taken {
			violations = append(violations, fmt.Sprintf("Mobile number '%s' already exists.", input.Phone))
		}
	}

	violations = append(violations, s.passwordRules.Validate(input.Password)...)

	if input.ConfirmPassword == "" {
		violations = append(violations, "Confirm Password is required.")
	} else if input.Password != "" && input.Password != input.ConfirmPassword {
		violations = append(violations, "Confirm Passwords and Password didn't match.")
	}

	if input.Pincode == "" {
		violations = append(violations, "pincode is required.")
	}

	if len(violations) > 0 {
		return nil, errors.NewValidation(violations...)
	}

	roleName := input.Role
	if roleName == "" {
		roleName = model.RoleAuthor
	}
	role, err := s.roleRepo.FindByName(ctx, roleName)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewValidation(fmt.Sprintf("Role '%s' does not exist.", roleName))
		}
		return nil, fmt.Errorf("resolve role: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		RoleID:       role.ID,
		Email:        input.Email,
		FullName:     input.FullName,
		Phone:        input.Phone,
		Address:      input.Address,
		City:         input.City,
		State:        input.State,
		Country:      input.Country,
		Pincode:      input.Pincode,
		PasswordHash: string(hashed),
		IsAuthor:     true,
		IsStaff:      true,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Reload with the role expanded for serialization.
	return s.userRepo.FindByID(ctx, user.ID)
}

// IsEmailTaken probes email uniqueness for client-side pre-validation.
func (s *userService) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	return s.userRepo.ExistsByEmail(ctx, email)
}

// IsPhoneTaken probes phone uniqueness for client-side pre-validation.
func (s *userService) IsPhoneTaken(ctx context.Context, phone string) (bool, error) {
	return s.userRepo.ExistsByPhone(ctx, phone)
}

// GetProfile returns the full profile, cached for a few minutes.
func (s *userService) GetProfile(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, profileCacheTTL)
	}
	return user, nil
}

// ChangePassword verifies the current password and persists a new hash.
func (s *userService) ChangePassword(ctx context.Context, user *model.User, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return errors.ErrMissingPasswordFields
	}
	if currentPassword == newPassword {
		return errors.ErrSamePassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return errors.ErrPasswordMismatch
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hashed)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))
	return nil
}
