package models

import "time"

// Vitals запись показателей: давление, сахар, вес и заметка на дату.
// Хотя бы одно из BP, Sugar, Weight непустое.
type Vitals struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	BP        string    `json:"bp,omitempty"`
	Sugar     string    `json:"sugar,omitempty"`
	Weight    string    `json:"weight,omitempty"`
	Note      string    `json:"note"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasMeasurement сообщает, заполнено ли хотя бы одно измерение.
func (v Vitals) HasMeasurement() bool {
	return v.BP != "" || v.Sugar != "" || v.Weight != ""
}
