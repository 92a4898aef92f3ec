package security

import (
	"errors"
	"fmt"
	"time"

	"image-sharing-server/config"
	"image-sharing-server/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// Scope разделяет классы токенов, подписанных одним секретом.
// Access-токен нельзя предъявить там, где ожидается refresh, и наоборот.
const (
	ScopeAccess  = "access_token"
	ScopeRefresh = "refresh_token"
)

var (
	// ErrInvalidToken : любая причина отказа (подпись, срок, формат) схлопывается
	// в одну ошибку, чтобы не подсказывать атакующему, какая именно проверка не прошла
	ErrInvalidToken = errors.New("не удалось проверить учетные данные")

	// ErrWrongScope : токен валиден, но предъявлен не по назначению
	ErrWrongScope = errors.New("неверный scope токена")
)

type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

type JWTService struct {
	*config.JWTConfig
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{cfg}
}

// signingMethod возвращает алгоритм подписи из конфигурации
func (service *JWTService) signingMethod() (jwt.SigningMethod, error) {
	switch service.Algorithm {
	case "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512", "":
		return jwt.SigningMethodHS512, nil
	}
	return nil, fmt.Errorf("неизвестный алгоритм подписи: %s", service.Algorithm)
}

// CreateAccessToken выпускает короткоживущий access-токен для пользователя
func (service *JWTService) CreateAccessToken(email string) (string, error) {
	ttl, err := time.ParseDuration(service.AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("ошибка парсинга access_token_ttl: %w", err)
	}
	return service.createToken(email, ScopeAccess, ttl)
}

// CreateRefreshToken выпускает долгоживущий refresh-токен для пользователя
func (service *JWTService) CreateRefreshToken(email string) (string, error) {
	ttl, err := time.ParseDuration(service.RefreshTokenTTL)
	if err != nil {
		return "", fmt.Errorf("ошибка парсинга refresh_token_ttl: %w", err)
	}
	return service.createToken(email, ScopeRefresh, ttl)
}

func (service *JWTService) createToken(email string, scope string, ttl time.Duration) (string, error) {
	method, err := service.signingMethod()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "image-sharing-server",
		},
	}

	jwtToken := jwt.NewWithClaims(method, claims)
	signed, err := jwtToken.SignedString([]byte(service.SecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return signed, nil
}

// GenerateTokensPair выпускает пару access/refresh токенов для пользователя
func (service *JWTService) GenerateTokensPair(email string) (*model.TokensPair, error) {
	accessToken, err := service.CreateAccessToken(email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := service.CreateRefreshToken(email)
	if err != nil {
		return nil, err
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// DecodeToken проверяет подпись и срок действия токена, затем сверяет scope.
// Подпись и срок проверяются атомарно внутри jwt.ParseWithClaims
func (service *JWTService) DecodeToken(tokenStr string, expectedScope string) (*Claims, error) {
	method, err := service.signingMethod()
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	jwtToken, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != method.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return []byte(service.SecretKey), nil
	})

	if err != nil || !jwtToken.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Scope != expectedScope {
		return nil, ErrWrongScope
	}

	return claims, nil
}
