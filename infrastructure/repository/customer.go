package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/crm-intelligence-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-intelligence-api/internal/domain"
)

const customersTable = "customers c"

type CustomerRepository interface {
	GetCustomerByID(customerID string) (*domain.Customer, error)
	ListCustomers() ([]*domain.Customer, error)
}

type customerRepository struct {
	conn *postgres.Connection
}

func NewCustomerRepository(conn *postgres.Connection) CustomerRepository {
	return &customerRepository{
		conn: conn,
	}
}

func (r *customerRepository) GetCustomerByID(customerID string) (*domain.Customer, error) {
	customerSQL, customerArgs, err := squirrel.
		Select("c.id, c.name, c.deleted, c.created_at").
		From(customersTable).
		Where(squirrel.Eq{"c.id": customerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(customerSQL, customerArgs...)

	customer := &domain.Customer{}
	if err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.Deleted,
		&customer.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return customer, nil
}

// ListCustomers retorna todos os clientes, inclusive os excluídos: o motor
// de inteligência é quem decide o que fica de fora
func (r *customerRepository) ListCustomers() ([]*domain.Customer, error) {
	customersSQL, customersArgs, err := squirrel.
		Select("c.id, c.name, c.deleted, c.created_at").
		From(customersTable).
		OrderBy("c.created_at ASC, c.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(customersSQL, customersArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	customers := make([]*domain.Customer, 0)

	for rows.Next() {
		customer := &domain.Customer{}
		if err := rows.Scan(
			&customer.ID,
			&customer.Name,
			&customer.Deleted,
			&customer.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar o cliente: %w", err)
		}

		customers = append(customers, customer)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return customers, nil
}
