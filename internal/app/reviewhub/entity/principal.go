package entity

import "github.com/google/uuid"

// Principal - аутентифицированный пользователь текущего запроса
// Явная замена динамической проверке атрибутов: роль фиксируется
// один раз при разборе токена и дальше используется чистыми проверками
type Principal struct {
	UserID   uuid.UUID
	Username string
	Admin    bool
}

// CanModerate возвращает true если principal может выполнять действия модерации
func (p Principal) CanModerate() bool {
	return p.Admin
}

// Owns возвращает true если principal является автором комментария
func (p Principal) Owns(c *Comment) bool {
	return p.UserID == c.UserID
}

// CanObserve возвращает true если комментарий виден principal
// Администратор видит все, обычный пользователь - только свои
func (p Principal) CanObserve(c *Comment) bool {
	return p.Admin || p.Owns(c)
}

// CanDelete возвращает true если principal может удалить комментарий
// Удалять может автор или администратор
func (p Principal) CanDelete(c *Comment) bool {
	return p.Admin || p.Owns(c)
}
