package models

import "time"

// Task は「動詞 + 目的語」で表される作業の単位です。Owner に一つだけ割り当てられます。
type Task struct {
	ID           int64     `json:"id,omitempty" db:"taskid"`
	Verb         string    `json:"verb" db:"verb"`
	DirectObject string    `json:"direct_object" db:"direct_object"`
	OwnerID      int64     `json:"owner_id" db:"owner_id"`
	CreatedAt    time.Time `json:"created_at" db:"createdat"`
	UpdatedAt    time.Time `json:"updated_at" db:"updatedat"`
}
