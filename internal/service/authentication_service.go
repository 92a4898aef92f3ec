package service

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"image-sharing-server/internal/model"
	"image-sharing-server/internal/ports"
	"image-sharing-server/internal/security"
	"image-sharing-server/internal/util"
)

// AuthenticationService связывает кодек токенов, черный список и хранилище
// пользователей: login, logout, refresh и разрешение личности по access-токену
type AuthenticationService struct {
	userRepository  ports.UserRepository
	tokenRepository ports.RevokedTokenRepository
	jwtService      ports.JWTServiceInterface
}

func NewAuthenticationService(
	userRepository ports.UserRepository,
	tokenRepository ports.RevokedTokenRepository,
	jwtService ports.JWTServiceInterface,
) *AuthenticationService {
	return &AuthenticationService{
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		jwtService:      jwtService,
	}
}

// Login проверяет пароль и выпускает пару токенов.
// Новый refresh-токен перезаписывает прежний на записи пользователя,
// так что активная сессия всегда ровно одна. Если сохранить токен не удалось,
// пара наружу не уходит
func (s *AuthenticationService) Login(ctx context.Context, email, password string) (*model.TokensPair, error) {
	user, err := s.userRepository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("login: пользователь %s не найден", email)
			return nil, ErrInvalidCredentials
		}
		return nil, util.LogError("ошибка поиска пользователя", err)
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	// статус блокировки сообщается только после успешной проверки пароля
	if user.Banned {
		return nil, ErrUserBanned
	}

	tokens, err := s.jwtService.GenerateTokensPair(user.Email)
	if err != nil {
		return nil, util.LogError("ошибка генерации токенов", err)
	}

	refreshToken := sql.NullString{String: tokens.RefreshToken, Valid: true}
	if err := s.userRepository.UpdateRefreshToken(ctx, user.UUID, refreshToken); err != nil {
		return nil, util.LogError("не удалось сохранить refresh токен", err)
	}

	return tokens, nil
}

// RefreshTokens обменивает действующий refresh-токен на новую пару.
// Предъявленная строка обязана буквально совпадать с сохраненной на записи
// пользователя: несовпадение значит, что токен устарел или был перехвачен —
// сохраненный токен при этом сбрасывается, закрывая сессию целиком
func (s *AuthenticationService) RefreshTokens(ctx context.Context, refreshToken string) (*model.TokensPair, error) {
	claims, err := s.jwtService.DecodeToken(refreshToken, security.ScopeRefresh)
	if err != nil {
		log.Printf("refresh: невалидный токен: %v", err)
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepository.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("refresh: пользователь %s не найден", claims.Subject)
			return nil, ErrInvalidCredentials
		}
		return nil, util.LogError("ошибка поиска пользователя", err)
	}

	if !user.RefreshToken.Valid || user.RefreshToken.String != refreshToken {
		log.Printf("refresh: предъявлен устаревший refresh токен пользователя %s", user.UUID)
		if err := s.userRepository.UpdateRefreshToken(ctx, user.UUID, sql.NullString{}); err != nil {
			log.Printf("refresh: не удалось сбросить refresh токен: %v", err)
		}
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.jwtService.GenerateTokensPair(user.Email)
	if err != nil {
		return nil, util.LogError("ошибка генерации токенов", err)
	}

	newRefreshToken := sql.NullString{String: tokens.RefreshToken, Valid: true}
	if err := s.userRepository.UpdateRefreshToken(ctx, user.UUID, newRefreshToken); err != nil {
		return nil, util.LogError("не удалось сохранить refresh токен", err)
	}

	return tokens, nil
}

// Logout вносит access-токен в черный список. Просроченная или даже
// некорректная строка тоже принимается: операция просто блокирует строку,
// и повторный logout того же токена безопасен
func (s *AuthenticationService) Logout(ctx context.Context, accessToken string) error {
	if err := s.tokenRepository.Add(ctx, accessToken); err != nil {
		return util.LogError("не удалось отозвать токен", err)
	}
	return nil
}

// ResolveIdentity разрешает личность по access-токену. Проверки идут строго
// по порядку с остановкой на первой неудаче: подпись и срок, scope,
// черный список, существующий и не заблокированный пользователь
func (s *AuthenticationService) ResolveIdentity(ctx context.Context, accessToken string) (*model.User, error) {
	claims, err := s.jwtService.DecodeToken(accessToken, security.ScopeAccess)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	revoked, err := s.tokenRepository.Contains(ctx, accessToken)
	if err != nil {
		return nil, util.LogError("ошибка проверки черного списка", err)
	}
	if revoked {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepository.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, util.LogError("ошибка поиска пользователя", err)
	}

	if user.Banned {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
