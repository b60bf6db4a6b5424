package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* =========================================================
   GATEWAY EVENT — audit journal for every inbound callback,
   verified or not. Balance changes only ever happen through
   the settlement path, so this table is free to record
   rejected/forged callbacks too.
========================================================= */

type FeeGatewayEvent struct {
	FeeGatewayEventID uuid.UUID `gorm:"column:fee_gateway_event_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"fee_gateway_event_id"`

	FeeGatewayEventOrderID   string  `gorm:"column:fee_gateway_event_order_id;type:varchar(100);not null;index" json:"fee_gateway_event_order_id"`
	FeeGatewayEventPaymentID *string `gorm:"column:fee_gateway_event_payment_id;type:varchar(100)" json:"fee_gateway_event_payment_id,omitempty"`

	FeeGatewayEventVerified bool    `gorm:"column:fee_gateway_event_verified;not null" json:"fee_gateway_event_verified"`
	FeeGatewayEventOutcome  string  `gorm:"column:fee_gateway_event_outcome;type:varchar(40);not null" json:"fee_gateway_event_outcome"`
	FeeGatewayEventError    *string `gorm:"column:fee_gateway_event_error" json:"fee_gateway_event_error,omitempty"`

	FeeGatewayEventPayload datatypes.JSON `gorm:"column:fee_gateway_event_payload;type:jsonb" json:"fee_gateway_event_payload,omitempty"`

	FeeGatewayEventCreatedAt time.Time `gorm:"column:fee_gateway_event_created_at;not null;default:now()" json:"fee_gateway_event_created_at"`
}

func (FeeGatewayEvent) TableName() string { return "fee_gateway_events" }
