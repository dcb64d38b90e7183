// Package models содержит доменные модели HealthMate: пользователя, медицинский
// отчёт с полями от AI-анализа и запись показателей здоровья.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
// Хеш пароля никогда не сериализуется в JSON.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstname"`
	LastName     string    `json:"lastname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
