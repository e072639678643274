package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"social-system/internal/model"
	"social-system/internal/repository"
	"social-system/pkg/jwt"
	"social-system/pkg/password"
	"social-system/pkg/redis"

	"gorm.io/gorm"
)

// UserService 用户与认证服务
type UserService struct {
	repo       *repository.UserRepository
	jwtService *jwt.JWTService
}

// NewUserService 创建UserService实例
func NewUserService(repo *repository.UserRepository, jwtService *jwt.JWTService) *UserService {
	return &UserService{repo: repo, jwtService: jwtService}
}

// RegisterInput 注册参数
type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Avatar      string
	Bio         string
	Location    string
	Website     string
	DateOfBirth *time.Time
}

// ProfileUpdate 资料部分更新参数，nil字段不更新
type ProfileUpdate struct {
	FirstName   *string
	LastName    *string
	Avatar      *string
	Bio         *string
	Location    *string
	Website     *string
	DateOfBirth *time.Time
}

// Register 注册新账号并签发token（与登录相同的签发逻辑）
func (s *UserService) Register(in RegisterInput) (*model.User, string, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	if len(in.Password) < 6 {
		return nil, "", fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	exists, err := s.repo.ExistsByEmail(in.Email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", fmt.Errorf("%w: email already registered", ErrConflict)
	}

	// 密码哈希
	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Avatar:       in.Avatar,
		Bio:          in.Bio,
		Location:     in.Location,
		Website:      in.Website,
		DateOfBirth:  in.DateOfBirth,
		IsActive:     true,
		Status:       "offline",
		LastSeen:     time.Now(),
	}
	if err := s.repo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// validateCredentials 校验邮箱+密码
// 查无此人与密码错误返回同一个错误，不向调用方泄露账号是否存在
func (s *UserService) validateCredentials(email, plainPassword string) (*model.User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !password.Verify(plainPassword, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login 登录，成功返回用户与token
func (s *UserService) Login(email, plainPassword string) (*model.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || plainPassword == "" {
		return nil, "", ErrInvalidCredentials
	}
	u, err := s.validateCredentials(email, plainPassword)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, "", err
	}

	// 登录视为一次活跃
	_ = s.repo.UpdateStatus(u.ID, "online")
	_ = redis.SetUserPresence(u.ID, u.Email, "online")

	return u, token, nil
}

// issueToken 签发token，Subject为用户ID，Data携带邮箱
func (s *UserService) issueToken(u *model.User) (string, error) {
	return s.jwtService.GenerateToken(
		fmt.Sprintf("%d", u.ID),
		map[string]interface{}{"email": u.Email},
	)
}

// GetProfile 获取用户资料
func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile 部分更新用户资料
func (s *UserService) UpdateProfile(userID uint, upd ProfileUpdate) (*model.User, error) {
	if _, err := s.GetProfile(userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if upd.FirstName != nil {
		fields["first_name"] = *upd.FirstName
	}
	if upd.LastName != nil {
		fields["last_name"] = *upd.LastName
	}
	if upd.Avatar != nil {
		fields["avatar"] = *upd.Avatar
	}
	if upd.Bio != nil {
		fields["bio"] = *upd.Bio
	}
	if upd.Location != nil {
		fields["location"] = *upd.Location
	}
	if upd.Website != nil {
		fields["website"] = *upd.Website
	}
	if upd.DateOfBirth != nil {
		fields["date_of_birth"] = *upd.DateOfBirth
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateProfile(userID, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.GetByID(userID)
}

// Logout 登出：仅更新在线状态为offline
func (s *UserService) Logout(userID uint) error {
	if err := s.repo.UpdateStatus(userID, "offline"); err != nil {
		return err
	}
	if u, err := s.repo.GetByID(userID); err == nil {
		_ = redis.SetUserPresence(u.ID, u.Email, "offline")
	}
	return nil
}
