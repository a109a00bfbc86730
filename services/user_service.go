package services

import (
	"context"
	"time"

	"oficina.app/configs/configslog"
	"oficina.app/models"
	"oficina.app/pkg/apperrors"
	"oficina.app/pkg/auth"
	"oficina.app/pkg/events"
	"oficina.app/pkg/metrics"
	"oficina.app/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUserUsernameRequired = apperrors.NewValidation("username is required")
	ErrUserPasswordTooShort = apperrors.NewValidation("password must be at least 6 characters")
	ErrUserUsernameTaken    = apperrors.NewValidation("username already taken")
	ErrUserBadCredentials   = apperrors.NewValidation("invalid username or password")
	ErrUserInactive         = apperrors.NewValidation("account is inactive")
	ErrUserWrongPassword    = apperrors.NewValidation("current password does not match")
)

type CreateUserInput struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	EmployeeID *uint  `json:"employee_id"`
	RoleID     *uint  `json:"role_id"`
}

type UpdateUserInput struct {
	Username   *string `json:"username"`
	EmployeeID *uint   `json:"employee_id"`
	RoleID     *uint   `json:"role_id"`
	Active     *bool   `json:"active"`
}

// LoginResult bundles the issued token with the authenticated account.
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// IUserService manages back-office accounts and authentication.
type IUserService interface {
	Create(ctx context.Context, input CreateUserInput) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id uint, input UpdateUserInput) (*models.User, error)
	ChangePassword(ctx context.Context, id uint, current, next string) error
	SetActive(ctx context.Context, id uint, active bool) (*models.User, error)
	Delete(ctx context.Context, id uint) error
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Stats(ctx context.Context) (*models.UserStats, error)
}

type UserService struct {
	repo      repositories.IUserRepository
	employees repositories.IEmployeeRepository
	roles     repositories.IRoleRepository
	bus       *events.Bus
	secret    string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewUserService(db *gorm.DB, bus *events.Bus, secret string, tokenTTL time.Duration) *UserService {
	return &UserService{
		repo:      repositories.NewUserRepository(db),
		employees: repositories.NewEmployeeRepository(db),
		roles:     repositories.NewRoleRepository(db),
		bus:       bus,
		secret:    secret,
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

func (s *UserService) checkLinks(ctx context.Context, employeeID, roleID *uint) error {
	if employeeID != nil && *employeeID != 0 {
		if _, err := s.employees.FindByID(ctx, *employeeID); err != nil {
			if err == repositories.ErrNotFound {
				return apperrors.NewNotFound("employee", *employeeID)
			}
			return apperrors.Internal("user: check employee", err)
		}
	}
	if roleID != nil && *roleID != 0 {
		if _, err := s.roles.FindByID(ctx, *roleID); err != nil {
			if err == repositories.ErrNotFound {
				return apperrors.NewNotFound("role", *roleID)
			}
			return apperrors.Internal("user: check role", err)
		}
	}
	return nil
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if input.Username == "" {
		return nil, ErrUserUsernameRequired
	}
	if len(input.Password) < 6 {
		return nil, ErrUserPasswordTooShort
	}
	if _, err := s.repo.FindByUsername(ctx, input.Username); err == nil {
		return nil, ErrUserUsernameTaken
	} else if err != repositories.ErrNotFound {
		return nil, apperrors.Internal("user: check username", err)
	}
	if err := s.checkLinks(ctx, input.EmployeeID, input.RoleID); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperrors.Internal("user: hash password", err)
	}

	user := models.User{
		Username:     input.Username,
		PasswordHash: hash,
		EmployeeID:   input.EmployeeID,
		RoleID:       input.RoleID,
		Active:       true,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		configslog.Log.Error("UserService.Create failed", zap.Error(err))
		return nil, apperrors.Internal("user: create", err)
	}

	s.publish(events.EventUserCreated, &user)
	s.broadcastStats(ctx)
	configslog.SLog.Infof("User %q created", user.Username)
	return &user, nil
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.NewNotFound("user", id)
		}
		return nil, apperrors.Internal("user: find", err)
	}
	return user, nil
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.NewNotFound("user", 0)
		}
		return nil, apperrors.Internal("user: find by username", err)
	}
	return user, nil
}

func (s *UserService) FindAll(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.FindAll(ctx)
	return users, apperrors.Internal("user: list", err)
}

func (s *UserService) Update(ctx context.Context, id uint, input UpdateUserInput) (*models.User, error) {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Username != nil && *input.Username != existing.Username {
		if *input.Username == "" {
			return nil, ErrUserUsernameRequired
		}
		if other, err := s.repo.FindByUsername(ctx, *input.Username); err == nil && other.ID != id {
			return nil, ErrUserUsernameTaken
		} else if err != nil && err != repositories.ErrNotFound {
			return nil, apperrors.Internal("user: check username", err)
		}
	}
	if err := s.checkLinks(ctx, input.EmployeeID, input.RoleID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if input.Username != nil {
		fields["username"] = *input.Username
	}
	if input.EmployeeID != nil {
		if *input.EmployeeID == 0 {
			fields["employee_id"] = nil
		} else {
			fields["employee_id"] = *input.EmployeeID
		}
	}
	if input.RoleID != nil {
		if *input.RoleID == 0 {
			fields["role_id"] = nil
		} else {
			fields["role_id"] = *input.RoleID
		}
	}
	if input.Active != nil {
		fields["active"] = *input.Active
	}

	if len(fields) > 0 {
		if err := s.repo.Updates(ctx, id, fields); err != nil {
			configslog.Log.Error("UserService.Update failed", zap.Uint("id", id), zap.Error(err))
			return nil, apperrors.Internal("user: update", err)
		}
	}

	updated, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(events.EventUserUpdated, updated)
	s.broadcastStats(ctx)
	return updated, nil
}

// ChangePassword verifies the current password before setting the new one.
func (s *UserService) ChangePassword(ctx context.Context, id uint, current, next string) error {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, current) {
		return ErrUserWrongPassword
	}
	if len(next) < 6 {
		return ErrUserPasswordTooShort
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return apperrors.Internal("user: hash password", err)
	}
	if err := s.repo.Updates(ctx, id, map[string]any{"password_hash": hash}); err != nil {
		configslog.Log.Error("UserService.ChangePassword failed", zap.Uint("id", id), zap.Error(err))
		return apperrors.Internal("user: change password", err)
	}
	configslog.SLog.Infof("User %d changed their password", id)
	return nil
}

func (s *UserService) SetActive(ctx context.Context, id uint, active bool) (*models.User, error) {
	return s.Update(ctx, id, UpdateUserInput{Active: &active})
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, user); err != nil {
		configslog.Log.Error("UserService.Delete failed", zap.Uint("id", id), zap.Error(err))
		return apperrors.Internal("user: delete", err)
	}
	_ = s.bus.PublishJSON(events.EventUserDeleted, map[string]any{"id": id})
	metrics.IncEvent(events.EventUserDeleted)
	s.broadcastStats(ctx)
	return nil
}

// Login authenticates the account and issues an access token, stamping
// LastLogin on success. Unknown usernames and wrong passwords fail the same
// way.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrUserBadCredentials
		}
		return nil, apperrors.Internal("user: login", err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrUserBadCredentials
	}
	if !user.Active {
		return nil, ErrUserInactive
	}

	token, err := auth.MakeToken(user.ID, user.Username, s.secret, s.tokenTTL)
	if err != nil {
		return nil, apperrors.Internal("user: issue token", err)
	}

	now := s.now()
	if err := s.repo.Updates(ctx, user.ID, map[string]any{"last_login": now}); err != nil {
		configslog.Log.Warn("UserService.Login: last login stamp failed", zap.Uint("id", user.ID), zap.Error(err))
	}
	user.LastLogin = &now

	configslog.SLog.Infof("User %q logged in", user.Username)
	return &LoginResult{Token: token, User: user}, nil
}

// Stats is the accounts projection.
func (s *UserService) Stats(ctx context.Context) (*models.UserStats, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("user: stats", err)
	}
	active, err := s.repo.CountActive(ctx, true)
	if err != nil {
		return nil, apperrors.Internal("user: stats", err)
	}
	linked, err := s.repo.CountLinkedToEmployee(ctx)
	if err != nil {
		return nil, apperrors.Internal("user: stats", err)
	}
	return &models.UserStats{
		Total:          total,
		Active:         active,
		Inactive:       total - active,
		LinkedEmployee: linked,
	}, nil
}

func (s *UserService) broadcastStats(ctx context.Context) {
	stats, err := s.Stats(ctx)
	if err != nil {
		configslog.Log.Warn("User stats recompute failed", zap.Error(err))
		return
	}
	_ = s.bus.PublishJSON(events.EventUserStats, stats)
	metrics.IncEvent(events.EventUserStats)
}

func (s *UserService) publish(eventType string, user *models.User) {
	if err := s.bus.PublishJSON(eventType, user); err != nil {
		configslog.Log.Warn("User event publish failed", zap.String("event", eventType), zap.Error(err))
		return
	}
	metrics.IncEvent(eventType)
}

var _ IUserService = (*UserService)(nil)
