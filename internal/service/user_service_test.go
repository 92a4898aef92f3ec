package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"image-sharing-server/internal/model"
	"image-sharing-server/internal/repository"
	"image-sharing-server/internal/security"
	"image-sharing-server/internal/service"
)

func newTestUserService() (*service.UserService, *MockUserRepository) {
	mockUserRepo := new(MockUserRepository)
	return service.NewUserService(mockUserRepo), mockUserRepo
}

// 1. Первый зарегистрированный пользователь становится администратором
func TestSignup_FirstUserBecomesAdmin(t *testing.T) {
	svc, mockUserRepo := newTestUserService()
	ctx := context.Background()

	mockUserRepo.On("CountUsers", ctx).Return(0, nil)
	mockUserRepo.On("CreateUser", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Role == model.RoleAdmin && u.Username == "first_user"
	})).Return(&model.User{UUID: "u1", Username: "first_user", Role: model.RoleAdmin}, nil)

	user, err := svc.Signup(ctx, "first_user", "first@example.com", "secret1")

	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	mockUserRepo.AssertExpectations(t)
}

// 2. Все последующие получают роль user
func TestSignup_SubsequentUsersGetUserRole(t *testing.T) {
	svc, mockUserRepo := newTestUserService()
	ctx := context.Background()

	mockUserRepo.On("CountUsers", ctx).Return(5, nil)
	mockUserRepo.On("CreateUser", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Role == model.RoleUser
	})).Return(&model.User{UUID: "u2", Role: model.RoleUser}, nil)

	user, err := svc.Signup(ctx, "second_user", "second@example.com", "secret1")

	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	mockUserRepo.AssertExpectations(t)
}

// 3. Пароль в базу попадает только в виде хэша
func TestSignup_PasswordIsHashed(t *testing.T) {
	svc, mockUserRepo := newTestUserService()
	ctx := context.Background()

	mockUserRepo.On("CountUsers", ctx).Return(1, nil)
	mockUserRepo.On("CreateUser", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.PasswordHash != "secret1" && security.CheckPassword("secret1", u.PasswordHash)
	})).Return(&model.User{UUID: "u1"}, nil)

	_, err := svc.Signup(ctx, "someuser", "user@example.com", "secret1")

	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
}

// 4. Валидация username, email и пароля
func TestSignup_Validation(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "ab", "user@example.com", "secret1")
	assert.Error(t, err)

	_, err = svc.Signup(ctx, "bad name!", "user@example.com", "secret1")
	assert.Error(t, err)

	_, err = svc.Signup(ctx, "gooduser", "not-an-email", "secret1")
	assert.Error(t, err)

	_, err = svc.Signup(ctx, "gooduser", "user@example.com", "12345")
	assert.Error(t, err)
}

// 4a. Длина username считается в рунах, а не в байтах
func TestSignup_CyrillicUsernameWithinLimit(t *testing.T) {
	svc, mockUserRepo := newTestUserService()
	ctx := context.Background()

	// 20 символов, 39 байт
	username := "пользовательпример_б"

	mockUserRepo.On("CountUsers", ctx).Return(2, nil)
	mockUserRepo.On("CreateUser", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Username == username
	})).Return(&model.User{UUID: "u3", Username: username, Role: model.RoleUser}, nil)

	_, err := svc.Signup(ctx, username, "cyr@example.com", "secret1")

	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
}

// 5. Конфликт уникальности транслируется в ErrAlreadyExists
func TestSignup_DuplicateUser(t *testing.T) {
	svc, mockUserRepo := newTestUserService()
	ctx := context.Background()

	mockUserRepo.On("CountUsers", ctx).Return(3, nil)
	mockUserRepo.On("CreateUser", ctx, mock.Anything).
		Return(nil, repository.ErrUniqueViolation)

	_, err := svc.Signup(ctx, "taken_name", "taken@example.com", "secret1")

	assert.ErrorIs(t, err, service.ErrAlreadyExists)
	mockUserRepo.AssertExpectations(t)
}

// 6. Понижение последнего администратора отклоняется
func TestChangeRole_LastAdmin(t *testing.T) {
	svc, mockUserRepo := newTestUserService()
	ctx := context.Background()

	admin := &model.User{UUID: "a1", Role: model.RoleAdmin}

	mockUserRepo.On("FindByUUID", ctx, "a1").Return(admin, nil)
	mockUserRepo.On("CountAdmins", ctx).Return(1, nil)

	err := svc.ChangeRole(ctx, "a1", model.RoleUser)

	assert.ErrorIs(t, err, service.ErrLastAdmin)
	mockUserRepo.AssertExpectations(t)
}

// 7. Понижение админа при наличии второго проходит
func TestChangeRole_AdminWithBackup(t *testing.T) {
	svc, mockUserRepo := newTestUserService()
	ctx := context.Background()

	admin := &model.User{UUID: "a1", Role: model.RoleAdmin}

	mockUserRepo.On("FindByUUID", ctx, "a1").Return(admin, nil)
	mockUserRepo.On("CountAdmins", ctx).Return(2, nil)
	mockUserRepo.On("UpdateRole", ctx, "a1", model.RoleModerator).Return(nil)

	err := svc.ChangeRole(ctx, "a1", model.RoleModerator)

	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
}

// 8. Неизвестная роль
func TestChangeRole_UnknownRole(t *testing.T) {
	svc, _ := newTestUserService()

	err := svc.ChangeRole(context.Background(), "u1", model.Role("superuser"))

	assert.Error(t, err)
}

// 9. Смена роли несуществующего пользователя
func TestChangeRole_UserNotFound(t *testing.T) {
	svc, mockUserRepo := newTestUserService()
	ctx := context.Background()

	mockUserRepo.On("FindByUUID", ctx, "ghost").Return(nil, sql.ErrNoRows)

	err := svc.ChangeRole(ctx, "ghost", model.RoleModerator)

	assert.ErrorIs(t, err, service.ErrNotFound)
	mockUserRepo.AssertExpectations(t)
}

// 10. Бан последнего администратора отклоняется
func TestSetBanned_LastAdmin(t *testing.T) {
	svc, mockUserRepo := newTestUserService()
	ctx := context.Background()

	admin := &model.User{UUID: "a1", Role: model.RoleAdmin}

	mockUserRepo.On("FindByUUID", ctx, "a1").Return(admin, nil)
	mockUserRepo.On("CountAdmins", ctx).Return(1, nil)

	err := svc.SetBanned(ctx, "a1", true)

	assert.ErrorIs(t, err, service.ErrLastAdmin)
	mockUserRepo.AssertExpectations(t)
}

// 11. Бан обычного пользователя
func TestSetBanned_RegularUser(t *testing.T) {
	svc, mockUserRepo := newTestUserService()
	ctx := context.Background()

	user := &model.User{UUID: "u1", Role: model.RoleUser}

	mockUserRepo.On("FindByUUID", ctx, "u1").Return(user, nil)
	mockUserRepo.On("UpdateBanned", ctx, "u1", true).Return(nil)

	err := svc.SetBanned(ctx, "u1", true)

	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
}

// 12. Разблокировка не требует проверки числа админов
func TestSetBanned_UnbanAdmin(t *testing.T) {
	svc, mockUserRepo := newTestUserService()
	ctx := context.Background()

	admin := &model.User{UUID: "a1", Role: model.RoleAdmin, Banned: true}

	mockUserRepo.On("FindByUUID", ctx, "a1").Return(admin, nil)
	mockUserRepo.On("UpdateBanned", ctx, "a1", false).Return(nil)

	err := svc.SetBanned(ctx, "a1", false)

	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
}

// 13. Ограничение размера страницы списка пользователей
func TestListUsers_LimitClamped(t *testing.T) {
	svc, mockUserRepo := newTestUserService()
	ctx := context.Background()

	mockUserRepo.On("ListUsers", ctx, "", 20).
		Return([]*model.User{}, "", nil)

	_, _, err := svc.ListUsers(ctx, "", 500)

	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
}
