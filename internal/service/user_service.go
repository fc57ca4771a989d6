package service

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ilumeo/timeclock/internal/apperrors"
	"github.com/ilumeo/timeclock/internal/models"
	"github.com/ilumeo/timeclock/internal/repository"
)

type UserService struct {
	users  *repository.UserRepository
	logger *zap.Logger
}

func NewUserService(users *repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

func (s *UserService) CreateUser(req *models.CreateUserRequest) (*models.User, error) {
	if req.Name == "" || req.Email == "" || req.UserCode == "" {
		return nil, apperrors.Validation("name, email and an access code are required to create a user")
	}

	existing, err := s.users.GetByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("a user with this email already exists")
	}

	existing, err = s.users.GetByCode(req.UserCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("this access code is already in use")
	}

	// The unique columns remain the real guard; the lookups above only give
	// friendlier messages when there is no race.
	user, err := s.users.Create(&models.User{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Email:    req.Email,
		UserCode: req.UserCode,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
	)
	return user, nil
}

func (s *UserService) GetUser(id string) (*models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}
	return user, nil
}

// LoginByCode resolves a static access code to a user identity.
func (s *UserService) LoginByCode(code string) (*models.LoginResponse, error) {
	if code == "" {
		return nil, apperrors.Validation("access code is required")
	}

	user, err := s.users.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("invalid access code")
	}

	return &models.LoginResponse{
		UserID: user.ID,
		Name:   user.Name,
	}, nil
}
