package service

import "errors"

// Таксономия ошибок сервисного слоя. Обработчики сопоставляют их
// с HTTP-статусами через errors.Is
var (
	// ErrInvalidCredentials : любая причина отказа аутентификации — неверный пароль,
	// неизвестный email, невалидный/просроченный/отозванный токен. Причина наружу
	// не уточняется, чтобы ответ не работал оракулом для перебора
	ErrInvalidCredentials = errors.New("не удалось проверить учетные данные")

	// ErrUserBanned : заблокированный пользователь с верным паролем получает
	// на login именно 403, а не 401
	ErrUserBanned = errors.New("пользователь заблокирован")

	// ErrForbidden : личность установлена, роли недостаточно
	ErrForbidden = errors.New("операция запрещена")

	// ErrLastAdmin : в системе всегда должен оставаться хотя бы один администратор
	ErrLastAdmin = errors.New("нельзя понизить последнего администратора")

	// ErrNotFound : запрошенная запись отсутствует
	ErrNotFound = errors.New("не найдено")

	// ErrAlreadyExists : дубликат username/email при регистрации или имени тега
	ErrAlreadyExists = errors.New("учетная запись уже существует")
)
