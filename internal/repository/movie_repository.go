package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/iliyamo/theater-staff/internal/model"
)

// MovieRow mirrors the 'movies' table.  Categories and Screenings are stored
// as JSON text and only decoded by DecodeMovies.
type MovieRow struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Duration   string `json:"duration"`
	PosterURL  string `json:"poster_url"`
	Categories string `json:"categories"`
	Screenings string `json:"screenings"`
}

// MovieRepo reads the movie catalogue.
type MovieRepo struct{ DB *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{DB: db} }

const movieColumns = "id,title,duration,poster_url,categories,screenings"

// FetchRows returns every movie row, undecoded, ordered by title.
func (r *MovieRepo) FetchRows(ctx context.Context) ([]MovieRow, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+movieColumns+" FROM movies ORDER BY title")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []MovieRow{}
	for rows.Next() {
		var m MovieRow
		if err := rows.Scan(&m.ID, &m.Title, &m.Duration, &m.PosterURL, &m.Categories, &m.Screenings); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchMovies returns the decoded catalogue.  One undecodable record fails
// the whole call.
func (r *MovieRepo) FetchMovies(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.FetchRows(ctx)
	if err != nil {
		return nil, err
	}
	return DecodeMovies(rows)
}

// DecodeMovies decodes every row, failing on the first bad one.
func DecodeMovies(rows []MovieRow) ([]model.Movie, error) {
	out := make([]model.Movie, 0, len(rows))
	for _, row := range rows {
		m, err := DecodeMovie(row)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// DecodeMovie turns a stored row into a Movie.  categories must be a JSON
// array of strings.  An empty screenings column means no screenings.
func DecodeMovie(row MovieRow) (model.Movie, error) {
	m := model.Movie{
		ID:        row.ID,
		Title:     row.Title,
		Duration:  row.Duration,
		PosterURL: row.PosterURL,
	}
	if err := json.Unmarshal([]byte(row.Categories), &m.Categories); err != nil {
		return model.Movie{}, fmt.Errorf("%w: movie %s categories: %v", ErrDecode, row.ID, err)
	}
	if m.Categories == nil {
		m.Categories = []string{}
	}
	if row.Screenings != "" {
		if err := json.Unmarshal([]byte(row.Screenings), &m.Screenings); err != nil {
			return model.Movie{}, fmt.Errorf("%w: movie %s screenings: %v", ErrDecode, row.ID, err)
		}
	}
	if m.Screenings == nil {
		m.Screenings = []model.Screening{}
	}
	return m, nil
}
