// package formatter provides functions to export favorites data to various formats (JSON, CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/desertthunder/marquee/internal/shared"
)

// ExportItem is one hydrated favorite in an export file. Title holds the
// movie title, show name, or person name depending on Category.
type ExportItem struct {
	Category string  `json:"category"`
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Overview string  `json:"overview,omitempty"`
	Date     string  `json:"date,omitempty"`
	Rating   float64 `json:"rating,omitempty"`
	Poster   string  `json:"poster,omitempty"`
	Page     string  `json:"page,omitempty"`
}

// ItemsToJSON converts export items to indented JSON.
func ItemsToJSON(items []ExportItem) ([]byte, error) {
	return shared.MarshalJSON(items, true)
}

// ItemsToCSV converts export items to CSV format with columns: Category, ID, Title, Date, Rating, Page
func ItemsToCSV(items []ExportItem) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Category", "ID", "Title", "Date", "Rating", "Page"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range items {
		rating := ""
		if item.Rating > 0 {
			rating = shared.FormatRating(item.Rating)
		}
		record := []string{
			item.Category,
			item.ID,
			item.Title,
			item.Date,
			rating,
			item.Page,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ItemsToMarkdown converts export items to Markdown, grouped by category.
func ItemsToMarkdown(items []ExportItem) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Favorites\n\n")
	buf.WriteString(fmt.Sprintf("**Items**: %d\n", len(items)))

	current := ""
	for _, item := range items {
		if item.Category != current {
			current = item.Category
			buf.WriteString(fmt.Sprintf("\n## %s\n\n", current))
		}

		line := item.Title
		if year := shared.YearOf(item.Date); year != "" {
			line += fmt.Sprintf(" (%s)", year)
		}
		if item.Rating > 0 {
			line += fmt.Sprintf(" [%s]", shared.FormatRating(item.Rating))
		}
		if item.Page != "" {
			buf.WriteString(fmt.Sprintf("- [%s](%s)\n", line, item.Page))
		} else {
			buf.WriteString(fmt.Sprintf("- %s\n", line))
		}
	}

	return buf.Bytes(), nil
}

// ItemsToText converts export items to plain text format.
func ItemsToText(items []ExportItem) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Favorites: %d\n\n", len(items)))
	for i, item := range items {
		buf.WriteString(fmt.Sprintf("%d. [%s] %s", i+1, item.Category, item.Title))
		if year := shared.YearOf(item.Date); year != "" {
			buf.WriteString(fmt.Sprintf(" (%s)", year))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// WriteFavoritesExport renders items in the requested format and writes the
// file at basePath plus the format's extension, returning the written path.
func WriteFavoritesExport(items []ExportItem, format, basePath string) (string, error) {
	var (
		data []byte
		ext  string
		err  error
	)

	switch format {
	case "", "json":
		data, err = ItemsToJSON(items)
		ext = ".json"
	case "csv":
		data, err = ItemsToCSV(items)
		ext = ".csv"
	case "markdown", "md":
		data, err = ItemsToMarkdown(items)
		ext = ".md"
	case "txt", "text":
		data, err = ItemsToText(items)
		ext = ".txt"
	default:
		return "", fmt.Errorf("%w: unsupported export format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return "", err
	}

	path := basePath + ext
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// ExportManifest summarizes one export run alongside the export file.
type ExportManifest struct {
	Format     string   `json:"format"`
	OutputPath string   `json:"output_path"`
	TotalItems int      `json:"total_items"`
	Exported   int      `json:"exported"`
	Failed     int      `json:"failed"`
	Failures   []string `json:"failures,omitempty"`
	ExportedAt string   `json:"exported_at"`
}

// WriteExportManifest writes the manifest as indented JSON next to the
// export file.
func WriteExportManifest(manifest ExportManifest, path string) error {
	manifest.ExportedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// WritePoster downloads a poster image and writes it to path.
func WritePoster(url, path string) error {
	data, err := DownloadImage(url)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write poster: %w", err)
	}
	return nil
}
