// Package password реализует функции для безопасного хеширования и проверки паролей.
//
// GetHash создает bcrypt-хеш пароля (bcrypt сам генерирует соль, поэтому два хеша
// одного пароля различаются). CompareHash сравнивает хеш с введённым паролем.
// IsStrong проверяет пароль на соответствие политике сложности.
package password

import (
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// MinLength минимальная длина пароля в символах.
const MinLength = 8

// MaxBytes предел bcrypt: длинные пароли GenerateFromPassword отклоняет.
const MaxBytes = 72

// FitsBcrypt сообщает, что пароль не длиннее MaxBytes байт.
func FitsBcrypt(password string) bool {
	return len(password) <= MaxBytes
}

// GetHash принимает пароль пользователя и возвращает его bcrypt‑хэш со стоимостью cost.
func GetHash(password string, cost int) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу, иначе ошибку.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IsStrong сообщает, удовлетворяет ли пароль политике: не короче MinLength,
// есть строчная и заглавная буквы, цифра и спецсимвол.
func IsStrong(password string) bool {
	if len([]rune(password)) < MinLength {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}
