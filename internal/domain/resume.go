package domain

import (
	"context"
	"time"
)

type Resume struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID     string    `gorm:"type:varchar(36);not null;index" json:"userId"`
	FileName   string    `gorm:"size:255;not null" json:"fileName"` // original client name
	FilePath   string    `gorm:"size:400;not null" json:"filePath"` // storage key
	UploadedAt time.Time `json:"uploadedAt"`
}

type ResumeRepository interface {
	Create(ctx context.Context, r *Resume) error
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
}

type ResumeUsecase interface {
	Upload(ctx context.Context, file *Upload, caller Identity) (*Resume, error)
	ListMine(ctx context.Context, caller Identity) ([]Resume, error)
}
