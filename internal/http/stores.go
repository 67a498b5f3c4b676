package http

import (
	"context"

	"github.com/mrlokans/telecom/internal/entities"
)

// Each controller depends on the narrow store it needs; the database
// repositories satisfy them.

type SubscriberStore interface {
	FindByID(ctx context.Context, id uint) (*entities.Subscriber, error)
	FindAll(ctx context.Context) ([]entities.Subscriber, error)
	Block(ctx context.Context, id uint) error
	Add(ctx context.Context, sub *entities.Subscriber) (*entities.Subscriber, error)
}

type ServiceStore interface {
	FindAll(ctx context.Context) ([]entities.Service, error)
	FindBySubscriberID(ctx context.Context, subscriberID uint) ([]entities.Service, error)
	Add(ctx context.Context, svc *entities.Service) (*entities.Service, error)
	LinkServiceToSubscriber(ctx context.Context, subscriberID, serviceID uint) error
}

type InvoiceStore interface {
	FindBySubscriberID(ctx context.Context, subscriberID uint) ([]entities.Invoice, error)
	FindUnpaid(ctx context.Context) ([]entities.Invoice, error)
	Pay(ctx context.Context, invoiceID uint) (bool, error)
	Add(ctx context.Context, inv *entities.Invoice) (*entities.Invoice, error)
}

type Seeder interface {
	InsertInitialData(ctx context.Context) error
}

type Authenticator interface {
	Register(ctx context.Context, login, password string) (*entities.User, error)
	Authenticate(ctx context.Context, login, password string) (*entities.User, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}
