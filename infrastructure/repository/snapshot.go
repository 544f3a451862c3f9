package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/crm-intelligence-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-intelligence-api/internal/domain"
)

// SnapshotLoader monta o recorte completo das coleções consumido pelo motor
// de inteligência
type SnapshotLoader interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
}

type snapshotLoader struct {
	customers CustomerRepository
	orders    OrderRepository
	quotes    QuoteRepository
	payments  PaymentRepository
	meetings  MeetingRepository
	products  ProductRepository
}

func NewSnapshotLoader(conn *postgres.Connection) SnapshotLoader {
	return &snapshotLoader{
		customers: NewCustomerRepository(conn),
		orders:    NewOrderRepository(conn),
		quotes:    NewQuoteRepository(conn),
		payments:  NewPaymentRepository(conn),
		meetings:  NewMeetingRepository(conn),
		products:  NewProductRepository(conn),
	}
}

// Load carrega as seis coleções em sequência. Não há transação: o snapshot é
// um recorte de leitura e pequenas divergências entre coleções são toleradas
// pelo motor.
func (l *snapshotLoader) Load(ctx context.Context) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	customers, err := l.customers.ListCustomers()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar clientes")
	}

	orders, err := l.orders.ListOrders()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar pedidos")
	}

	quotes, err := l.quotes.ListQuotes()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar orçamentos")
	}

	payments, err := l.payments.ListPayments()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar pagamentos")
	}

	meetings, err := l.meetings.ListMeetings()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar reuniões")
	}

	products, err := l.products.ListProducts()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar produtos")
	}

	return &domain.Snapshot{
		Customers: customers,
		Orders:    orders,
		Quotes:    quotes,
		Payments:  payments,
		Meetings:  meetings,
		Products:  products,
	}, nil
}
