package main

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"movieapi/movie"
)

// noGenres is what MovieLens writes when a title has no genre.
const noGenres = "(no genres listed)"

// titleYear matches the trailing "(1999)" of a MovieLens title.
var titleYear = regexp.MustCompile(`^(.*?)\s*\((\d{4})\)\s*$`)

type columns struct {
	title  int
	genres int
}

type seedKey struct {
	title string
	year  int
}

func keyOf(m movie.Movie) seedKey {
	return seedKey{title: m.Title, year: m.ReleaseYear}
}

// importMovies creates one movie per CSV row and returns how many were
// created. Rows that cannot be parsed are skipped, and so are movies whose
// title and release year are already stored, which makes re-runs safe.
func importMovies(ctx context.Context, svc movie.Service, r io.Reader, limit int) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	cols, err := parseMovieCSVHeader(reader)
	if err != nil {
		return 0, err
	}

	existing, err := svc.ListMovies(ctx)
	if err != nil {
		return 0, err
	}
	seen := make(map[seedKey]struct{}, len(existing))
	for _, m := range existing {
		seen[keyOf(m)] = struct{}{}
	}

	count := 0
	for limit <= 0 || count < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, err
		}

		m, ok := parseMovieRecord(record, cols)
		if !ok {
			continue
		}
		if _, dup := seen[keyOf(m)]; dup {
			continue
		}
		seen[keyOf(m)] = struct{}{}
		if _, err := svc.CreateMovie(ctx, m); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

func parseMovieCSVHeader(reader *csv.Reader) (columns, error) {
	header, err := reader.Read()
	if err != nil {
		return columns{}, err
	}

	cols := columns{title: -1, genres: -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "title":
			cols.title = i
		case "genres":
			cols.genres = i
		}
	}
	if cols.title == -1 || cols.genres == -1 {
		return columns{}, errors.New("missing required columns in csv header")
	}

	return cols, nil
}

func parseMovieRecord(record []string, cols columns) (movie.Movie, bool) {
	if cols.title >= len(record) || cols.genres >= len(record) {
		return movie.Movie{}, false
	}

	title := strings.TrimSpace(record[cols.title])
	if title == "" {
		return movie.Movie{}, false
	}

	var year int
	if match := titleYear.FindStringSubmatch(title); match != nil {
		title = match[1]
		year, _ = strconv.Atoi(match[2])
	}

	genre := strings.TrimSpace(strings.SplitN(record[cols.genres], "|", 2)[0])
	if genre == noGenres {
		genre = ""
	}

	return movie.Movie{
		Title:       title,
		ReleaseYear: year,
		Genre:       genre,
	}, true
}
