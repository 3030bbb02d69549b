// Package models はOwnerとTaskを定義します。
package models

// Owner はタスクを割り当てられる人を表します。
type Owner struct {
	ID    int64  `json:"id,omitempty" db:"owner_id"`
	Name  string `json:"name" db:"owner_name"`
	Email string `json:"email,omitempty" db:"owner_email"`
}
