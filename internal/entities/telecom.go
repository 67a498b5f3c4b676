package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subscriber owns its invoices; the service links live in subscriber_services.
type Subscriber struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	Name     string          `gorm:"size:255;not null" json:"name"`
	Phone    string          `gorm:"uniqueIndex;size:32;not null" json:"phone"`
	Balance  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance"` // Negative balance is debt
	Blocked  bool            `gorm:"column:is_blocked;not null" json:"blocked"`
	Services []Service       `gorm:"many2many:subscriber_services;" json:"services,omitempty"`
	Invoices []Invoice       `gorm:"foreignKey:SubscriberID;constraint:OnDelete:CASCADE;" json:"invoices,omitempty"`
}

type Service struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Subscribers []Subscriber    `gorm:"many2many:subscriber_services;" json:"-"`
}

// Invoice belongs to exactly one subscriber; SubscriberID and Amount are fixed at creation.
type Invoice struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	IssueDate    time.Time       `gorm:"type:date;not null" json:"issue_date"`
	Paid         bool            `gorm:"column:is_paid;not null;index" json:"paid"`
	SubscriberID uint            `gorm:"not null;index" json:"subscriber_id"`
	Subscriber   *Subscriber     `gorm:"foreignKey:SubscriberID" json:"subscriber,omitempty"`
}

// SubscriberServicesTable is the link table behind Subscriber.Services.
const SubscriberServicesTable = "subscriber_services"

func NewSubscriber(name, phone string, balance decimal.Decimal, blocked bool) *Subscriber {
	return &Subscriber{Name: name, Phone: phone, Balance: balance, Blocked: blocked}
}

func NewService(name string, price decimal.Decimal) *Service {
	return &Service{Name: name, Price: price}
}

func NewInvoice(amount decimal.Decimal, issueDate time.Time, paid bool, subscriber *Subscriber) *Invoice {
	inv := &Invoice{Amount: amount, IssueDate: issueDate, Paid: paid, Subscriber: subscriber}
	if subscriber != nil {
		inv.SubscriberID = subscriber.ID
	}
	return inv
}

func (Subscriber) TableName() string {
	return "subscribers"
}

func (Service) TableName() string {
	return "services"
}

func (Invoice) TableName() string {
	return "invoices"
}
