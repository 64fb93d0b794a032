package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozanyld/cinema-reservation-api/internal/domain"
)

type PostgresSessionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSessionRepository(db *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{
		db: db,
	}
}

func (p *PostgresSessionRepository) GetAll(
	ctx context.Context,
	filters domain.SessionFilters) ([]domain.SessionSummary, *domain.Metadata, error) {

	// tickets_available reads only committed rows, so it can never observe a
	// partially inserted order.
	query := `
		SELECT
			count(*) OVER(),
			s.id,
			s.show_time,
			m.title,
			h.name,
			h.seat_rows * h.seats_in_row,
			s.base_price,
			h.seat_rows * h.seats_in_row - (SELECT count(*) FROM tickets t WHERE t.movie_session_id = s.id)
		FROM movie_sessions s
		JOIN movies m ON s.movie_id = m.id
		JOIN cinema_halls h ON s.cinema_hall_id = h.id
		WHERE ($1::date IS NULL OR s.show_time::date = $1)
			AND ($2 = 0 OR s.movie_id = $2)
		ORDER BY s.show_time, s.id
		LIMIT $3 OFFSET $4
	`

	rows, err := p.db.Query(ctx, query, filters.Date, filters.MovieID, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	sessions := make([]domain.SessionSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var session domain.SessionSummary

		err := rows.Scan(
			&totalRecords,
			&session.ID,
			&session.ShowTime,
			&session.MovieTitle,
			&session.HallName,
			&session.HallCapacity,
			&session.BasePrice,
			&session.TicketsAvailable,
		)
		if err != nil {
			return nil, nil, err
		}

		sessions = append(sessions, session)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return sessions, metadata, nil
}

func (p *PostgresSessionRepository) GetWithHall(ctx context.Context, id int) (*domain.MovieSession, error) {
	query := `
		SELECT s.id, s.movie_id, s.show_time, s.base_price, h.id, h.name, h.seat_rows, h.seats_in_row
		FROM movie_sessions s
		JOIN cinema_halls h ON s.cinema_hall_id = h.id
		WHERE s.id = $1
	`

	var session domain.MovieSession

	err := p.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.MovieID,
		&session.ShowTime,
		&session.BasePrice,
		&session.Hall.ID,
		&session.Hall.Name,
		&session.Hall.SeatRows,
		&session.Hall.SeatsInRow,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &session, nil
}

func (p *PostgresSessionRepository) GetDetail(ctx context.Context, id int) (*domain.SessionDetail, error) {
	query := `
		SELECT
			s.id, s.movie_id, s.show_time, s.base_price,
			h.id, h.name, h.seat_rows, h.seats_in_row,
			m.id, m.title, m.description, m.duration, m.release_date, m.poster_url
		FROM movie_sessions s
		JOIN cinema_halls h ON s.cinema_hall_id = h.id
		JOIN movies m ON s.movie_id = m.id
		WHERE s.id = $1
	`

	var detail domain.SessionDetail

	err := p.db.QueryRow(ctx, query, id).Scan(
		&detail.Session.ID,
		&detail.Session.MovieID,
		&detail.Session.ShowTime,
		&detail.Session.BasePrice,
		&detail.Session.Hall.ID,
		&detail.Session.Hall.Name,
		&detail.Session.Hall.SeatRows,
		&detail.Session.Hall.SeatsInRow,
		&detail.Movie.ID,
		&detail.Movie.Title,
		&detail.Movie.Description,
		&detail.Movie.Duration,
		&detail.Movie.ReleaseDate,
		&detail.Movie.PosterUrl,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	takenPlaces, err := p.GetTakenSeats(ctx, id)
	if err != nil {
		return nil, err
	}

	detail.TakenPlaces = takenPlaces

	return &detail, nil
}

func (p *PostgresSessionRepository) GetTakenSeats(ctx context.Context, sessionID int) ([]domain.SeatPosition, error) {
	query := `
		SELECT seat_row, seat_num
		FROM tickets
		WHERE movie_session_id = $1
		ORDER BY seat_row, seat_num
	`

	rows, err := p.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.SeatPosition, 0)

	for rows.Next() {
		var seat domain.SeatPosition

		err := rows.Scan(&seat.Row, &seat.Seat)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (p *PostgresSessionRepository) CountTickets(ctx context.Context, sessionID int) (int, error) {
	query := `SELECT count(*) FROM tickets WHERE movie_session_id = $1`

	var count int

	err := p.db.QueryRow(ctx, query, sessionID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
