package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the athlete profile. Point aggregates are mutated only through
// approval transitions; deletion is an external admin action, never this core.
type User struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email         string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	DisplayName   string         `gorm:"size:100" json:"display_name"`
	Role          string         `gorm:"size:20;default:'user'" json:"role"`
	BodyweightKg  float64        `gorm:"type:numeric(5,1);default:0" json:"bodyweight_kg"`
	Region        string         `gorm:"size:50;index" json:"region"`
	TotalPoints   float64        `gorm:"type:numeric(12,2);default:0" json:"total_points"`
	WeeklyPoints  float64        `gorm:"type:numeric(12,2);default:0" json:"weekly_points"`
	Rank          int            `gorm:"default:0" json:"rank"`
	CurrentStreak int            `gorm:"default:0" json:"current_streak"`
	LongestStreak int            `gorm:"default:0" json:"longest_streak"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
