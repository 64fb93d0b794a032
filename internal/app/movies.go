package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ozanyld/cinema-reservation-api/api"
	"github.com/ozanyld/cinema-reservation-api/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	DefaultSort     = "id"
)

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request, params api.GetMoviesParams) {
	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filters := toMovieFilters(params)

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies:   toMovieSummaries(movies),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovie(w http.ResponseWriter, r *http.Request, movieId int) {
	if movieId < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("movie ID must be greater than zero"))
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), movieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.MovieResponse{
		Id:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		Duration:    movie.Duration,
		ReleaseDate: movie.ReleaseDate,
		PosterUrl:   movie.PosterUrl,
		Genres:      toApiGenres(movie.Genres),
		Actors:      toApiActors(movie.Actors),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toMovieFilters(params api.GetMoviesParams) domain.MovieFilters {
	filters := domain.MovieFilters{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		Sort:     DefaultSort,
	}

	if params.Page != nil {
		filters.Page = *params.Page
	}
	if params.PageSize != nil {
		filters.PageSize = *params.PageSize
	}
	if params.Sort != nil {
		filters.Sort = *params.Sort
	}
	if params.Term != nil {
		filters.Term = *params.Term
	}

	filters.GenreIDs = params.Genres
	filters.ActorIDs = params.Actors

	return filters
}

func toMovieSummaries(movies []*domain.Movie) []api.MovieSummary {
	summaries := make([]api.MovieSummary, len(movies))

	for i, movie := range movies {
		summaries[i] = api.MovieSummary{
			Id:          movie.ID,
			Title:       movie.Title,
			Description: movie.Description,
			Duration:    movie.Duration,
			ReleaseDate: movie.ReleaseDate,
			PosterUrl:   movie.PosterUrl,
		}
	}

	return summaries
}

func toApiGenres(genres []domain.Genre) []api.Genre {
	apiGenres := make([]api.Genre, len(genres))

	for i, genre := range genres {
		apiGenres[i] = api.Genre{
			Id:   genre.ID,
			Name: genre.Name,
		}
	}

	return apiGenres
}

func toApiActors(actors []domain.Actor) []api.Actor {
	apiActors := make([]api.Actor, len(actors))

	for i, actor := range actors {
		apiActors[i] = api.Actor{
			Id:        actor.ID,
			FirstName: actor.FirstName,
			LastName:  actor.LastName,
		}
	}

	return apiActors
}

func toApiMetadata(metadata *domain.Metadata) *api.Metadata {
	if metadata == nil {
		return nil
	}

	return &api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
