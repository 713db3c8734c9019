package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessRecord is the per-request metering row written for every
// completed dispatch, success or translation failure alike. It carries
// no input content.
type AccessRecord struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	SrcLang     string    `json:"src_lang" gorm:"type:varchar(10);index;not null"`
	TgtLang     string    `json:"tgt_lang" gorm:"type:varchar(10);index;not null"`
	Author      string    `json:"author" gorm:"type:varchar(100)"`
	Frontend    string    `json:"frontend" gorm:"type:varchar(100)"`
	InputNFCLen int       `json:"input_nfc_len"`
	DurationUS  int64     `json:"duration_us"`
	InputType   string    `json:"input_type" gorm:"type:varchar(50)"`
	AppVersion  string    `json:"app_version" gorm:"type:varchar(50)"`
	UserLang    string    `json:"user_lang" gorm:"type:varchar(10)"`
	CreatedAt   time.Time `json:"created_at"`
}

// ContentRecord captures the source and translated text of a request
// that opted in with logInput=true. Best-effort only.
type ContentRecord struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	SrcLang        string    `json:"src_lang" gorm:"type:varchar(10);index;not null"`
	TgtLang        string    `json:"tgt_lang" gorm:"type:varchar(10);index;not null"`
	SourceText     string    `json:"source_text" gorm:"type:text"`
	TranslatedText string    `json:"translated_text" gorm:"type:text"`
	Author         string    `json:"author" gorm:"type:varchar(100)"`
	Frontend       string    `json:"frontend" gorm:"type:varchar(100)"`
	IPAddress      string    `json:"ip_address" gorm:"type:varchar(64)"`
	InputType      string    `json:"input_type" gorm:"type:varchar(50)"`
	AppVersion     string    `json:"app_version" gorm:"type:varchar(50)"`
	UserLang       string    `json:"user_lang" gorm:"type:varchar(10)"`
	CreatedAt      time.Time `json:"created_at"`
}

func (r *AccessRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *ContentRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
