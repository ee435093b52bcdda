package models

import "time"

// ComplaintStatus is the processing state of a complaint.
type ComplaintStatus string

const (
	StatusNew        ComplaintStatus = "new"
	StatusInProgress ComplaintStatus = "in_progress"
	StatusResolved   ComplaintStatus = "resolved"
)

// Valid reports whether s is one of the known statuses.
func (s ComplaintStatus) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// Complaint is a single customer-reported product return.
// ProductID and ReasonID are enforced by foreign keys.
type Complaint struct {
	ID             uint            `gorm:"primaryKey"`
	Number         string          `gorm:"column:complaint_number;size:50;uniqueIndex;not null"`
	ProductID      uint            `gorm:"not null;index"`
	Product        Product         `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	ReasonID       uint            `gorm:"not null;index"`
	Reason         ReturnReason    `gorm:"foreignKey:ReasonID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CustomerName   string          `gorm:"size:100"`
	CustomerRegion string          `gorm:"size:50"`
	Description    string          `gorm:"type:text"`
	Status         ComplaintStatus `gorm:"size:20;not null;default:'new'"`
	ComplaintDate  time.Time       `gorm:"not null;index"`
	CreatedAt      time.Time
}

func (c *Complaint) TableName() string {
	return "complaints"
}
