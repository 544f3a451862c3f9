package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/crm-intelligence-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-intelligence-api/internal/domain"
)

const quotesTable = "quotes q"

type QuoteRepository interface {
	ListQuotes() ([]*domain.Quote, error)
}

type quoteRepository struct {
	conn *postgres.Connection
}

func NewQuoteRepository(conn *postgres.Connection) QuoteRepository {
	return &quoteRepository{
		conn: conn,
	}
}

func (r *quoteRepository) ListQuotes() ([]*domain.Quote, error) {
	quotesSQL, quotesArgs, err := squirrel.
		Select("q.id, q.customer_id, q.quote_date, q.status, q.total_amount, q.currency, q.deleted").
		From(quotesTable).
		OrderBy("q.quote_date ASC NULLS FIRST, q.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(quotesSQL, quotesArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	quotes := make([]*domain.Quote, 0)

	for rows.Next() {
		quote := &domain.Quote{}
		var quoteDate sql.NullTime

		if err := rows.Scan(
			&quote.ID,
			&quote.CustomerID,
			&quoteDate,
			&quote.Status,
			&quote.TotalAmount,
			&quote.Currency,
			&quote.Deleted,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar o orçamento: %w", err)
		}

		quote.QuoteDate = quoteDate.Time

		quotes = append(quotes, quote)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return quotes, nil
}
