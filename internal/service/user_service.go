package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode"
	"unicode/utf8"

	"image-sharing-server/internal/model"
	"image-sharing-server/internal/ports"
	"image-sharing-server/internal/repository"
	"image-sharing-server/internal/security"
	"image-sharing-server/internal/util"

	"github.com/google/uuid"
)

type UserService struct {
	userRepository ports.UserRepository
}

func NewUserService(userRepository ports.UserRepository) *UserService {
	return &UserService{userRepository: userRepository}
}

// Signup регистрирует нового пользователя. Самый первый пользователь системы
// становится администратором, все последующие получают роль user
func (s *UserService) Signup(ctx context.Context, username, email, password string) (*model.User, error) {
	if err := validateUsername(username); err != nil {
		return nil, fmt.Errorf("[UserService] %w", err)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("[UserService] некорректный email")
	}
	if err := validatePassword(password); err != nil {
		return nil, fmt.Errorf("[UserService] %w", err)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("[UserService] не удалось создать хэш пароля: %w", err)
	}

	count, err := s.userRepository.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("[UserService] не удалось посчитать пользователей: %w", err)
	}

	role := model.RoleUser
	if count == 0 {
		role = model.RoleAdmin
	}

	user := &model.User{
		UUID:         uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("[UserService] ошибка создания пользователя: %w", err)
	}

	return created, nil
}

// GetByUsername : публичный профиль пользователя
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepository.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.userRepository.ListUsers(ctx, cursor, limit)
}

// ChangeRole меняет роль пользователя. Операция, которая оставила бы систему
// без единого администратора, отклоняется: понизить последнего админа нельзя
func (s *UserService) ChangeRole(ctx context.Context, targetUUID string, role model.Role) error {
	if !role.Valid() {
		return fmt.Errorf("[UserService] неизвестная роль: %s", role)
	}

	target, err := s.userRepository.FindByUUID(ctx, targetUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if target.Role == model.RoleAdmin && role != model.RoleAdmin {
		admins, err := s.userRepository.CountAdmins(ctx)
		if err != nil {
			return util.LogError("[UserService] не удалось посчитать администраторов", err)
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}

	if err := s.userRepository.UpdateRole(ctx, targetUUID, role); err != nil {
		return util.LogError("[UserService] не удалось обновить роль", err)
	}

	log.Printf("[UserService] роль пользователя %s изменена на %s", targetUUID, role)
	return nil
}

// SetBanned блокирует или разблокирует пользователя
func (s *UserService) SetBanned(ctx context.Context, targetUUID string, banned bool) error {
	target, err := s.userRepository.FindByUUID(ctx, targetUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	// бан последнего администратора оставил бы систему без админов
	if banned && target.Role == model.RoleAdmin {
		admins, err := s.userRepository.CountAdmins(ctx)
		if err != nil {
			return util.LogError("[UserService] не удалось посчитать администраторов", err)
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}

	if err := s.userRepository.UpdateBanned(ctx, targetUUID, banned); err != nil {
		return util.LogError("[UserService] не удалось обновить флаг banned", err)
	}
	return nil
}

// UpdateInformation : обновляет текст профиля самого пользователя
func (s *UserService) UpdateInformation(ctx context.Context, userUUID string, information string) error {
	if err := s.userRepository.UpdateInformation(ctx, userUUID, information); err != nil {
		return util.LogError("[UserService] не удалось обновить профиль", err)
	}
	return nil
}

func validateUsername(username string) error {
	length := utf8.RuneCountInString(username)
	if length < 3 || length > 30 {
		return fmt.Errorf("username должен быть от 3 до 30 символов")
	}
	for _, c := range username {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
			return fmt.Errorf("username должен содержать только буквы, цифры и подчеркивание")
		}
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("пароль должен содержать минимум 6 символов")
	}
	return nil
}
