package util

import "golang.org/x/crypto/bcrypt"

// HashPassword возвращает bcrypt-хеш пароля для хранения в таблице пользователей
// Стоимости по умолчанию достаточно для интерактивного входа
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword сравнивает пароль с хешем из хранилища
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
