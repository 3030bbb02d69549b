package services

import (
	"fmt"
	"strconv"

	"beekeeper/internal/models"
)

// OwnerOption は選択リストの一項目です。Value (Owner ID) で送信され、Label は表示専用です。
type OwnerOption struct {
	Value string
	Label string
	ID    int64
}

// OwnerLookup は選択値から Owner ID を引くための表です。
type OwnerLookup struct {
	Options []OwnerOption
	byID    map[int64]struct{}
}

// NewOwnerLookup は Owner 一覧から選択肢を組み立てます。
// 同名の Owner が複数いる場合は表示名を "名前 (#ID)" にして区別します。
func NewOwnerLookup(owners []models.Owner) *OwnerLookup {
	count := make(map[string]int, len(owners))
	for _, o := range owners {
		count[o.Name]++
	}

	l := &OwnerLookup{byID: make(map[int64]struct{}, len(owners))}
	for _, o := range owners {
		label := o.Name
		if count[o.Name] > 1 {
			label = fmt.Sprintf("%s (#%d)", o.Name, o.ID)
		}
		l.Options = append(l.Options, OwnerOption{
			Value: strconv.FormatInt(o.ID, 10),
			Label: label,
			ID:    o.ID,
		})
		l.byID[o.ID] = struct{}{}
	}
	return l
}

// Resolve は送信された選択値 (Owner ID) が現在の一覧にあればその ID を返します。
func (l *OwnerLookup) Resolve(value string) (int64, bool) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false
	}
	if _, ok := l.byID[id]; !ok {
		return 0, false
	}
	return id, true
}
