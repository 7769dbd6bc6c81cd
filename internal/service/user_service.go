package service

import (
	"context"
	"strings"
	"time"

	"github.com/quickshop-api/quickshop/internal/cache"
	"github.com/quickshop-api/quickshop/internal/logger"
	"github.com/quickshop-api/quickshop/internal/models"
	"github.com/quickshop-api/quickshop/internal/repository"

	"gorm.io/gorm"
)

// UpdateProfileInput 资料更新输入，仅覆盖联系信息字段
type UpdateProfileInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

// UserService 用户服务
type UserService struct {
	userRepo repository.UserRepository
	cartRepo repository.CartRepository
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository, cartRepo repository.CartRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		cartRepo: cartRepo,
	}
}

// GetByID 获取用户详情
func (s *UserService) GetByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// List 用户列表
func (s *UserService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// UpdateProfile 更新用户联系信息，用户名与邮箱不可通过该入口修改
func (s *UserService) UpdateProfile(id uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastName = strings.TrimSpace(input.LastName)
	user.Address = strings.TrimSpace(input.Address)
	user.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete 删除用户及其购物车，并使其登录态失效
func (s *UserService) Delete(ctx context.Context, id uint) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.cartRepo.WithTx(tx).DeleteByUser(id); err != nil {
			return err
		}
		return s.userRepo.WithTx(tx).Delete(id)
	})
	if err != nil {
		return err
	}

	if err := cache.DelUserAuthState(ctx, id); err != nil {
		logger.Warnw("auth_state_invalidate_failed", "user_id", id, "error", err)
	}
	logger.Infow("user_deleted", "user_id", id)
	return nil
}
