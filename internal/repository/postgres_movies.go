package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozanyld/cinema-reservation-api/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), m.id, m.title, m.description, m.duration, m.release_date, m.poster_url
		FROM movies m
		WHERE ($1 = '' OR m.title ILIKE '%%' || $1 || '%%')
			AND (cardinality($2::int[]) = 0
				OR EXISTS (SELECT 1 FROM movie_genres mg WHERE mg.movie_id = m.id AND mg.genre_id = ANY($2)))
			AND (cardinality($3::int[]) = 0
				OR EXISTS (SELECT 1 FROM movie_actors ma WHERE ma.movie_id = m.id AND ma.actor_id = ANY($3)))
		ORDER BY %s %s, m.id
		LIMIT $4 OFFSET $5`, filters.SortColumn(), filters.SortDirection())

	genreIDs := filters.GenreIDs
	if genreIDs == nil {
		genreIDs = []int{}
	}

	actorIDs := filters.ActorIDs
	if actorIDs == nil {
		actorIDs = []int{}
	}

	rows, err := p.db.Query(ctx, query, filters.Term, genreIDs, actorIDs, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	movies := []*domain.Movie{}

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.Duration,
			&movie.ReleaseDate,
			&movie.PosterUrl,
		)

		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `
		SELECT id, title, description, duration, release_date, poster_url
		FROM movies
		WHERE id = $1
	`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Duration,
		&movie.ReleaseDate,
		&movie.PosterUrl,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	genres, err := p.retrieveGenres(ctx, id)
	if err != nil {
		return nil, err
	}

	actors, err := p.retrieveActors(ctx, id)
	if err != nil {
		return nil, err
	}

	movie.Genres = genres
	movie.Actors = actors

	return &movie, nil
}

func (p *PostgresMovieRepository) retrieveGenres(ctx context.Context, movieId int) ([]domain.Genre, error) {
	query := `
		SELECT g.id, g.name
		FROM genres g
		JOIN movie_genres mg
			ON g.id = mg.genre_id AND mg.movie_id = $1
		ORDER BY g.name
	`

	rows, err := p.db.Query(ctx, query, movieId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := make([]domain.Genre, 0)

	for rows.Next() {
		var genre domain.Genre

		err := rows.Scan(&genre.ID, &genre.Name)
		if err != nil {
			return nil, err
		}

		genres = append(genres, genre)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return genres, nil
}

func (p *PostgresMovieRepository) retrieveActors(ctx context.Context, movieId int) ([]domain.Actor, error) {
	query := `
		SELECT a.id, a.first_name, a.last_name
		FROM actors a
		JOIN movie_actors ma
			ON a.id = ma.actor_id AND ma.movie_id = $1
		ORDER BY a.last_name, a.first_name
	`

	rows, err := p.db.Query(ctx, query, movieId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	actors := make([]domain.Actor, 0)

	for rows.Next() {
		var actor domain.Actor

		err := rows.Scan(&actor.ID, &actor.FirstName, &actor.LastName)
		if err != nil {
			return nil, err
		}

		actors = append(actors, actor)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return actors, nil
}
