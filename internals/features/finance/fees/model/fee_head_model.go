package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/money"
)

// FeeHead is a shared catalog entry ("Tuition", "Library Fee"). Many
// structure-specific FeeStructureHead rows may reference one head.
type FeeHead struct {
	FeeHeadID            uuid.UUID `gorm:"column:fee_head_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"fee_head_id"`
	FeeHeadInstitutionID uuid.UUID `gorm:"column:fee_head_institution_id;type:uuid;not null;uniqueIndex:uniq_fee_head_code,priority:1" json:"fee_head_institution_id"`

	FeeHeadName        string  `gorm:"column:fee_head_name;type:varchar(120);not null" json:"fee_head_name"`
	FeeHeadCode        string  `gorm:"column:fee_head_code;type:varchar(60);not null;uniqueIndex:uniq_fee_head_code,priority:2" json:"fee_head_code"`
	FeeHeadDescription *string `gorm:"column:fee_head_description" json:"fee_head_description,omitempty"`

	FeeHeadDefaultAmount money.Amount `gorm:"column:fee_head_default_amount;type:numeric(14,2);not null;default:0" json:"fee_head_default_amount"`
	FeeHeadIsMandatory   bool         `gorm:"column:fee_head_is_mandatory;not null;default:true" json:"fee_head_is_mandatory"`
	FeeHeadCurrency      string       `gorm:"column:fee_head_currency;type:varchar(8);not null;default:'INR'" json:"fee_head_currency"`

	FeeHeadCreatedAt time.Time      `gorm:"column:fee_head_created_at;not null;default:now()" json:"fee_head_created_at"`
	FeeHeadUpdatedAt time.Time      `gorm:"column:fee_head_updated_at;not null;default:now()" json:"fee_head_updated_at"`
	FeeHeadDeletedAt gorm.DeletedAt `gorm:"column:fee_head_deleted_at;index" json:"-"`
}

func (FeeHead) TableName() string { return "fee_heads" }

func (m *FeeHead) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.FeeHeadCreatedAt.IsZero() {
		m.FeeHeadCreatedAt = now
	}
	m.FeeHeadUpdatedAt = now
	return nil
}

func (m *FeeHead) BeforeUpdate(tx *gorm.DB) (err error) {
	m.FeeHeadUpdatedAt = time.Now()
	return nil
}
