package models

import (
	"gorm.io/gorm"
)

type TransactionStatus string

const (
	TxPending TransactionStatus = "pending"
	TxSuccess TransactionStatus = "success"
	TxFailed  TransactionStatus = "failed"
)

// PaymentMethod is a catalog entry (cards, digital wallets).
type PaymentMethod struct {
	gorm.Model
	Name        string `json:"name"`
	Type        string `json:"type"` // "cards" or "digital_wallets"
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
}

// PaymentTransaction records a simulated payment. There is no real
// gateway behind this; processing flips the status to success.
type PaymentTransaction struct {
	gorm.Model
	Reference       string            `json:"reference" gorm:"uniqueIndex"`
	PaymentMethodID uint              `json:"payment_method_id"`
	PaymentMethod   PaymentMethod     `json:"payment_method" gorm:"foreignKey:PaymentMethodID"`
	AppointmentID   *uint             `json:"appointment_id,omitempty"`
	Amount          float64           `json:"amount" gorm:"type:decimal(10,2)"`
	Status          TransactionStatus `json:"status"`
}
