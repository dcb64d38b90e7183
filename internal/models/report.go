package models

import "time"

// Report загруженный пользователем медицинский документ и результат его AI-анализа.
// После создания не изменяется, только удаляется.
type Report struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user"`
	Filename           string    `json:"filename"`
	FileURL            string    `json:"fileUrl"`
	StorageID          string    `json:"storageId,omitempty"`
	MimeType           string    `json:"mimeType"`
	Title              string    `json:"title"`
	DateSeen           string    `json:"dateSeen"`
	Summary            string    `json:"summary"`
	ExplanationEN      string    `json:"explanation_en"`
	ExplanationRO      string    `json:"explanation_ro"` // Roman Urdu
	SuggestedQuestions []string  `json:"suggested_questions"`
	CreatedAt          time.Time `json:"createdAt"`
}

// Insight сокращённое представление отчёта для страницы инсайтов.
type Insight struct {
	ID            string `json:"id"`
	ReportTitle   string `json:"reportTitle"`
	Summary       string `json:"summary"`
	ExplanationEN string `json:"explanation_en"`
	ExplanationRO string `json:"explanation_ro"`
}
