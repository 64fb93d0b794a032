package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozanyld/cinema-reservation-api/internal/domain"
)

type PostgresOrderRepository struct {
	db *pgxpool.Pool
}

func NewPostgresOrderRepository(db *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db: db,
	}
}

// Create inserts the order and all of its tickets in one transaction. The
// unique constraint over (movie_session_id, seat_row, seat_num) is the final
// arbiter between concurrent orders: a violation on any ticket rolls back the
// whole batch, including the order row itself.
func (p *PostgresOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO orders (user_id, total_price)
			VALUES ($1, $2)
			RETURNING id, created_at
		`

		err := tx.QueryRow(ctx, query, order.UserID, order.TotalPrice).Scan(&order.ID, &order.CreatedAt)
		if err != nil {
			return err
		}

		query = `
			INSERT INTO tickets (order_id, movie_session_id, seat_row, seat_num)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`

		for i := range order.Tickets {
			ticket := &order.Tickets[i]
			ticket.OrderID = order.ID

			err := tx.QueryRow(ctx, query, order.ID, ticket.SessionID, ticket.Row, ticket.Seat).Scan(&ticket.ID)
			if err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
					return &domain.SeatTakenError{
						TicketIndex: i,
						SessionID:   ticket.SessionID,
						Row:         ticket.Row,
						Seat:        ticket.Seat,
					}
				}

				return err
			}
		}

		return nil
	})
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

func (p *PostgresOrderRepository) GetAllByUserId(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.OrderSummary, *domain.Metadata, error) {

	query := `
		SELECT
			count(*) OVER(),
			o.id,
			o.created_at,
			o.total_price,
			(SELECT count(*) FROM tickets t WHERE t.order_id = o.id)
		FROM orders o
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, userID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	orders := make([]domain.OrderSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var order domain.OrderSummary

		err := rows.Scan(
			&totalRecords,
			&order.ID,
			&order.CreatedAt,
			&order.TotalPrice,
			&order.TicketCount,
		)
		if err != nil {
			return nil, nil, err
		}

		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return orders, metadata, nil
}

func (p *PostgresOrderRepository) GetByIdAndUserId(ctx context.Context, orderID, userID int) (*domain.Order, error) {
	query := `
		SELECT id, user_id, created_at, total_price
		FROM orders
		WHERE id = $1 AND user_id = $2
	`

	var order domain.Order

	err := p.db.QueryRow(ctx, query, orderID, userID).Scan(
		&order.ID,
		&order.UserID,
		&order.CreatedAt,
		&order.TotalPrice,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	tickets, err := p.retrieveTickets(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	order.Tickets = tickets

	return &order, nil
}

func (p *PostgresOrderRepository) retrieveTickets(ctx context.Context, orderID int) ([]domain.Ticket, error) {
	query := `
		SELECT id, order_id, movie_session_id, seat_row, seat_num
		FROM tickets
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)

	for rows.Next() {
		var ticket domain.Ticket

		err := rows.Scan(
			&ticket.ID,
			&ticket.OrderID,
			&ticket.SessionID,
			&ticket.Row,
			&ticket.Seat,
		)
		if err != nil {
			return nil, err
		}

		tickets = append(tickets, ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}
