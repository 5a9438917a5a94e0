package formatter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleItems() []ExportItem {
	return []ExportItem{
		{
			Category: "movies",
			ID:       "27205",
			Title:    "Inception",
			Overview: "A thief who steals corporate secrets.",
			Date:     "2010-07-16",
			Rating:   8.4,
			Page:     "https://www.themoviedb.org/movie/27205",
		},
		{
			Category: "tv",
			ID:       "1399",
			Title:    "Game of Thrones",
			Date:     "2011-04-17",
			Rating:   8.5,
			Page:     "https://www.themoviedb.org/tv/1399",
		},
		{
			Category: "actors",
			ID:       "6193",
			Title:    "Leonardo DiCaprio",
			Date:     "1974-11-11",
		},
	}
}

func TestItemsToCSV(t *testing.T) {
	data, err := ItemsToCSV(sampleItems())
	if err != nil {
		t.Fatalf("failed to convert items to CSV: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse generated CSV: %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("expected header plus 3 records, got %d rows", len(records))
	}

	if records[0][0] != "Category" {
		t.Errorf("expected Category header, got %s", records[0][0])
	}

	if records[1][2] != "Inception" {
		t.Errorf("expected Inception in first record, got %s", records[1][2])
	}

	if records[3][4] != "" {
		t.Errorf("expected empty rating for person, got %s", records[3][4])
	}
}

func TestItemsToMarkdown(t *testing.T) {
	data, err := ItemsToMarkdown(sampleItems())
	if err != nil {
		t.Fatalf("failed to convert items to markdown: %v", err)
	}

	output := string(data)

	if !strings.Contains(output, "# Favorites") {
		t.Error("expected Favorites heading")
	}

	if !strings.Contains(output, "## movies") {
		t.Error("expected movies section heading")
	}

	if !strings.Contains(output, "[Inception (2010) [8.4/10]](https://www.themoviedb.org/movie/27205)") {
		t.Errorf("expected linked movie entry, got:\n%s", output)
	}

	if !strings.Contains(output, "- Leonardo DiCaprio (1974)") {
		t.Errorf("expected plain person entry, got:\n%s", output)
	}
}

func TestItemsToText(t *testing.T) {
	data, err := ItemsToText(sampleItems())
	if err != nil {
		t.Fatalf("failed to convert items to text: %v", err)
	}

	output := string(data)

	if !strings.Contains(output, "Favorites: 3") {
		t.Error("expected item count header")
	}

	if !strings.Contains(output, "1. [movies] Inception (2010)") {
		t.Errorf("expected numbered movie line, got:\n%s", output)
	}
}

func TestWriteFavoritesExport(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "favorites")

		path, err := WriteFavoritesExport(sampleItems(), "json", base)
		if err != nil {
			t.Fatalf("failed to write export: %v", err)
		}

		if path != base+".json" {
			t.Errorf("expected .json extension, got %s", path)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read export file: %v", err)
		}

		if !strings.Contains(string(content), `"title": "Inception"`) {
			t.Error("expected JSON export to contain movie title")
		}
	})

	t.Run("DefaultFormatIsJSON", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "favorites")

		path, err := WriteFavoritesExport(sampleItems(), "", base)
		if err != nil {
			t.Fatalf("failed to write export: %v", err)
		}

		if !strings.HasSuffix(path, ".json") {
			t.Errorf("expected .json extension for default format, got %s", path)
		}
	})

	t.Run("Markdown", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "favorites")

		path, err := WriteFavoritesExport(sampleItems(), "markdown", base)
		if err != nil {
			t.Fatalf("failed to write export: %v", err)
		}

		if !strings.HasSuffix(path, ".md") {
			t.Errorf("expected .md extension, got %s", path)
		}
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "favorites")

		if _, err := WriteFavoritesExport(sampleItems(), "yaml", base); err == nil {
			t.Fatal("expected error for unsupported format")
		}
	})
}
