package models

// ReturnReason is a categorized, severity-ranked cause code for a complaint.
// Severity ranges from 1 (minor) to 5 (critical).
type ReturnReason struct {
	ID       uint   `gorm:"primaryKey"`
	Code     string `gorm:"size:20;uniqueIndex;not null"`
	Name     string `gorm:"size:100;not null"`
	Severity int    `gorm:"not null;default:1"`
	Category string `gorm:"size:50"`
}

func (r *ReturnReason) TableName() string {
	return "return_reasons"
}
