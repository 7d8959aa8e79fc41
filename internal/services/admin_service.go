package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/recipe-app/api/internal/models"
	"github.com/recipe-app/api/internal/repository"
	appErr "github.com/recipe-app/api/pkg/errors"
	"github.com/recipe-app/api/pkg/logger"
)

// AdminService backs the staff-only user management endpoints.
type AdminService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateUser(ctx context.Context, email, password string, extra UserExtra) (*models.User, error)
	// UpdateUser changes profile fields and account flags. Staff cannot
	// deactivate or demote their own account.
	UpdateUser(ctx context.Context, actor, id uuid.UUID, in AdminUserUpdate) (*models.User, error)
	// DeleteUser removes the account and everything it owns. Staff cannot
	// delete their own account through this path.
	DeleteUser(ctx context.Context, actor, id uuid.UUID) error
}

// AdminUserUpdate lists the fields staff may change. Nil leaves a field as is.
type AdminUserUpdate struct {
	Name        *string
	Password    *string
	IsActive    *bool
	IsStaff     *bool
	IsSuperuser *bool
}

type adminService struct {
	userRepo repository.UserRepository
	auth     AuthService
}

func NewAdminService(userRepo repository.UserRepository, auth AuthService) AdminService {
	return &adminService{userRepo: userRepo, auth: auth}
}

func (s *adminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *adminService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := s.userRepo.GetByID(ctx, id, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *adminService) CreateUser(ctx context.Context, email, password string, extra UserExtra) (*models.User, error) {
	return s.auth.CreateUser(ctx, email, password, extra)
}

func (s *adminService) UpdateUser(ctx context.Context, actor, id uuid.UUID, in AdminUserUpdate) (*models.User, error) {
	if actor == id {
		if in.IsActive != nil && !*in.IsActive {
			return nil, appErr.Invalid("is_active", "cannot deactivate your own account")
		}
		if in.IsStaff != nil && !*in.IsStaff {
			return nil, appErr.Invalid("is_staff", "cannot remove your own staff status")
		}
	}

	if in.Name != nil || in.Password != nil {
		if _, err := s.auth.UpdateProfile(ctx, id, ProfileUpdate{Name: in.Name, Password: in.Password}); err != nil {
			return nil, err
		}
	}

	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.IsActive == nil && in.IsStaff == nil && in.IsSuperuser == nil {
		return u, nil
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.IsStaff != nil {
		u.IsStaff = *in.IsStaff
	}
	if in.IsSuperuser != nil {
		u.IsSuperuser = *in.IsSuperuser
	}
	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	logger.L().Info("user flags updated",
		zap.String("user_id", id.String()),
		zap.String("actor_id", actor.String()),
		zap.Bool("is_active", u.IsActive),
		zap.Bool("is_staff", u.IsStaff),
		zap.Bool("is_superuser", u.IsSuperuser),
	)
	return u, nil
}

func (s *adminService) DeleteUser(ctx context.Context, actor, id uuid.UUID) error {
	if actor == id {
		return appErr.New(appErr.CodeInvalid, "cannot delete your own account")
	}
	if err := s.userRepo.DeleteCascade(ctx, id); err != nil {
		return err
	}
	logger.L().Info("user deleted", zap.String("user_id", id.String()), zap.String("actor_id", actor.String()))
	return nil
}
