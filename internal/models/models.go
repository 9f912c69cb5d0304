package models

import (
	"time"
)

// User is a per-post snapshot of the posting member. Optional fields stay
// nil when the markup does not carry them.
type User struct {
	Username      string  `json:"username"`
	UserID        *string `json:"user_id"`
	ProfileURL    *string `json:"profile_url"`
	UserTitle     *string `json:"user_title"`
	Messages      *int    `json:"messages"`
	ReactionScore *int    `json:"reaction_score"`
	Points        *int    `json:"points"`
}

// Attachment is a file attached to a post. FileType is one of
// image/video/document/unknown, classified from the filename extension.
type Attachment struct {
	AttachmentID string `json:"attachment_id"`
	Filename     string `json:"filename"`
	URL          string `json:"url"`
	FileType     string `json:"file_type"`
}

// MediaEmbed is an embedded player (iframe or lazy-loaded placeholder).
// RawHTML is kept only for embeds whose host is not in the provider table.
type MediaEmbed struct {
	MediaType string  `json:"media_type"`
	EmbedURL  string  `json:"embed_url"`
	MediaID   *string `json:"media_id"`
	RawHTML   string  `json:"raw_html,omitempty"`
}

// Link is a hyperlink found in post content. LinkType is
// external/internal/image_link for post links; the social aggregator reuses
// the field for the platform name.
type Link struct {
	URL      string `json:"url"`
	Text     string `json:"text"`
	LinkType string `json:"link_type"`
}

type Post struct {
	PostID      string       `json:"post_id"`
	Author      User         `json:"author"`
	Content     string       `json:"content"`
	Date        string       `json:"date"`
	Reactions   int          `json:"reactions"`
	Attachments []Attachment `json:"attachments"`
	MediaEmbeds []MediaEmbed `json:"media_embeds"`
	Links       []Link       `json:"links"`
}

type Thread struct {
	ThreadID    string
	Title       string
	URL         string
	StartDate   string
	Tags        []string
	Prefixes    []string
	SocialLinks []Link
	Posts       []Post
	TotalPages  int
	CurrentPage int
}

type ThreadRecord struct {
	ThreadID   string    `db:"thread_id"`
	Title      string    `db:"title"`
	URL        string    `db:"url"`
	StartDate  string    `db:"start_date"`
	TotalPages int       `db:"total_pages"`
	TotalPosts int       `db:"total_posts"`
	ScrapedAt  time.Time `db:"scraped_at"`
}

type ScrapeJob struct {
	ID           int        `db:"id"`
	ThreadURL    string     `db:"thread_url"`
	StartedAt    time.Time  `db:"started_at"`
	CompletedAt  *time.Time `db:"completed_at"`
	Status       string     `db:"status"`
	PostsScraped int        `db:"posts_scraped"`
	ErrorMessage *string    `db:"error_message"`
}
