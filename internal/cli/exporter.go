package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mindjek007/XenForo-Scraper/internal/models"
)

type Exporter struct {
	exportPath string
}

func NewExporter(exportPath string) *Exporter {
	return &Exporter{
		exportPath: exportPath,
	}
}

// threadJSON is the export envelope. Downstream tooling depends on these
// exact field names; renaming any of them is a breaking change.
type threadJSON struct {
	ThreadID    string           `json:"thread_id"`
	Title       string           `json:"title"`
	URL         string           `json:"url"`
	StartDate   string           `json:"start_date"`
	Tags        []string         `json:"tags"`
	Prefixes    []string         `json:"prefixes"`
	SocialLinks []socialLinkJSON `json:"social_links"`
	TotalPages  int              `json:"total_pages"`
	TotalPosts  int              `json:"total_posts"`
	Posts       []models.Post    `json:"posts"`
}

type socialLinkJSON struct {
	URL      string `json:"url"`
	Text     string `json:"text"`
	Platform string `json:"platform"`
}

func (e *Exporter) ExportThreadJSON(t *models.Thread) (string, error) {
	if err := os.MkdirAll(e.exportPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}

	out := threadJSON{
		ThreadID:    t.ThreadID,
		Title:       t.Title,
		URL:         t.URL,
		StartDate:   t.StartDate,
		Tags:        emptyIfNil(t.Tags),
		Prefixes:    emptyIfNil(t.Prefixes),
		SocialLinks: []socialLinkJSON{},
		TotalPages:  t.TotalPages,
		TotalPosts:  len(t.Posts),
		Posts:       exportPosts(t.Posts),
	}
	for _, link := range t.SocialLinks {
		out.SocialLinks = append(out.SocialLinks, socialLinkJSON{
			URL:      link.URL,
			Text:     link.Text,
			Platform: link.LinkType,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode thread: %w", err)
	}

	filename := filepath.Join(e.exportPath,
		fmt.Sprintf("thread_%s_%s.json", t.ThreadID, time.Now().Format("20060102_150405")))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return filename, nil
}

func (e *Exporter) ExportPostsCSV(t *models.Thread) (string, error) {
	if err := os.MkdirAll(e.exportPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}

	filename := filepath.Join(e.exportPath,
		fmt.Sprintf("thread_%s_%s.csv", t.ThreadID, time.Now().Format("20060102_150405")))

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"PostID", "Author", "Date", "Reactions",
		"Attachments", "MediaEmbeds", "Links", "Content",
	}
	if err := writer.Write(header); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	for _, post := range t.Posts {
		record := []string{
			post.PostID,
			post.Author.Username,
			post.Date,
			strconv.Itoa(post.Reactions),
			strconv.Itoa(len(post.Attachments)),
			strconv.Itoa(len(post.MediaEmbeds)),
			strconv.Itoa(len(post.Links)),
			post.Content,
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write record: %w", err)
		}
	}

	return filename, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// exportPosts copies the posts with every collection initialized, so a post
// with no attachments, embeds, or links exports [] rather than null.
func exportPosts(posts []models.Post) []models.Post {
	out := make([]models.Post, len(posts))
	for i, p := range posts {
		if p.Attachments == nil {
			p.Attachments = []models.Attachment{}
		}
		if p.MediaEmbeds == nil {
			p.MediaEmbeds = []models.MediaEmbed{}
		}
		if p.Links == nil {
			p.Links = []models.Link{}
		}
		out[i] = p
	}
	return out
}
