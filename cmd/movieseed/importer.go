package main

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"moviecatalog/postgres"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	batchSize = 500
	noGenres  = "(no genres listed)"
)

type movieRow struct {
	ID     int
	Title  string
	Genres []string
}

type importStats struct {
	Movies int
	Genres int
	Links  int
}

// importMovies upserts genres, movies and their genre links in one
// transaction. MovieLens ids are kept as movie ids.
func importMovies(ctx context.Context, db *gorm.DB, r io.Reader, limit int) (importStats, error) {
	var stats importStats

	rows, err := readMovieRows(r, limit)
	if err != nil {
		return stats, err
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		genreIDs, err := upsertGenres(tx, genreNames(rows))
		if err != nil {
			return err
		}
		stats.Genres = len(genreIDs)

		movies := make([]postgres.MovieModel, len(rows))
		var links []postgres.MovieGenreModel
		for i, row := range rows {
			movies[i] = postgres.MovieModel{ID: row.ID, Title: row.Title}
			for pos, name := range row.Genres {
				links = append(links, postgres.MovieGenreModel{
					MovieID:  row.ID,
					GenreID:  genreIDs[strings.ToLower(name)],
					Position: pos,
				})
			}
		}

		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title"}),
		}).CreateInBatches(&movies, batchSize).Error
		if err != nil {
			return err
		}
		stats.Movies = len(movies)

		if len(links) > 0 {
			err = tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&links, batchSize).Error
			if err != nil {
				return err
			}
		}
		stats.Links = len(links)

		return tx.Exec("SELECT setval(pg_get_serial_sequence('movies', 'id'), (SELECT COALESCE(MAX(id), 1) FROM movies))").Error
	})
	if err != nil {
		return importStats{}, err
	}
	return stats, nil
}

// upsertGenres returns genre ids keyed by lower-cased name.
func upsertGenres(tx *gorm.DB, names []string) (map[string]int, error) {
	ids := make(map[string]int, len(names))
	if len(names) == 0 {
		return ids, nil
	}

	models := make([]postgres.GenreModel, len(names))
	for i, name := range names {
		models[i] = postgres.GenreModel{Name: name}
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&models).Error
	if err != nil {
		return nil, err
	}

	var stored []postgres.GenreModel
	if err := tx.Where("name IN ?", names).Find(&stored).Error; err != nil {
		return nil, err
	}
	for _, g := range stored {
		ids[strings.ToLower(g.Name)] = g.ID
	}
	return ids, nil
}

func readMovieRows(r io.Reader, limit int) ([]movieRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	idxMovieID, idxTitle, idxGenres, err := parseMovieCSVHeader(reader)
	if err != nil {
		return nil, err
	}

	// A movieId seen twice keeps its first position and its last values;
	// one batched upsert cannot touch the same row twice.
	var rows []movieRow
	seen := make(map[int]int)
	for limit <= 0 || len(rows) < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row, ok := parseMovieRecord(record, idxMovieID, idxTitle, idxGenres)
		if !ok {
			continue
		}
		if i, dup := seen[row.ID]; dup {
			rows[i] = row
			continue
		}
		seen[row.ID] = len(rows)
		rows = append(rows, row)
	}
	return rows, nil
}

func parseMovieCSVHeader(reader *csv.Reader) (int, int, int, error) {
	header, err := reader.Read()
	if err != nil {
		return 0, 0, 0, err
	}

	idxMovieID, idxTitle, idxGenres := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "movieId":
			idxMovieID = i
		case "title":
			idxTitle = i
		case "genres":
			idxGenres = i
		}
	}
	if idxMovieID == -1 || idxTitle == -1 || idxGenres == -1 {
		return 0, 0, 0, errors.New("missing required columns in csv header")
	}

	return idxMovieID, idxTitle, idxGenres, nil
}

func parseMovieRecord(record []string, idxMovieID, idxTitle, idxGenres int) (movieRow, bool) {
	if idxMovieID >= len(record) || idxTitle >= len(record) || idxGenres >= len(record) {
		return movieRow{}, false
	}

	movieID, err := strconv.Atoi(strings.TrimSpace(record[idxMovieID]))
	if err != nil || movieID <= 0 {
		return movieRow{}, false
	}
	title := strings.TrimSpace(record[idxTitle])
	if title == "" {
		return movieRow{}, false
	}
	return movieRow{ID: movieID, Title: title, Genres: splitGenres(record[idxGenres])}, true
}

// splitGenres splits the pipe separated genre column, dropping blanks,
// duplicates and the MovieLens placeholder for movies without genres.
func splitGenres(raw string) []string {
	var genres []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, "|") {
		name := strings.TrimSpace(part)
		if name == "" || name == noGenres {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		genres = append(genres, name)
	}
	return genres
}

// genreNames returns every distinct genre name in first-seen order.
func genreNames(rows []movieRow) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, row := range rows {
		for _, name := range row.Genres {
			key := strings.ToLower(name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}
