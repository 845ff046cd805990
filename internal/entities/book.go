package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Book is a single catalog entry. The ID is assigned by the store on create
// and never changes afterwards.
type Book struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Title     string    `gorm:"not null;size:512" json:"title"`
	Year      int       `gorm:"not null" json:"year"`
	Category  string    `gorm:"not null;size:256" json:"category"`
	Rating    int       `gorm:"not null;check:rating_range,rating >= 1 AND rating <= 5" json:"rating"`
	Favorite  bool      `gorm:"not null;default:false" json:"favorite"`
	CreatedAt time.Time `gorm:"index" json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Book) TableName() string {
	return "books"
}

// BeforeCreate assigns a fresh identifier unless the caller already set one
// (seeding and tests do).
func (b *Book) BeforeCreate(_ *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
