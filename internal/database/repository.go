package database

import (
	"database/sql"
	"time"

	"github.com/mindjek007/XenForo-Scraper/internal/models"
)

type Repository struct {
	db *sql.DB
}

func NewRepository() *Repository {
	return &Repository{
		db: GetDB(),
	}
}

// thread operations

func (r *Repository) SaveThread(t *models.Thread) error {
	query := `
		INSERT INTO threads (thread_id, title, url, start_date, total_pages, total_posts, scraped_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (thread_id) DO UPDATE SET
			title = EXCLUDED.title,
			total_pages = EXCLUDED.total_pages,
			total_posts = EXCLUDED.total_posts,
			scraped_at = EXCLUDED.scraped_at`

	_, err := r.db.Exec(query,
		t.ThreadID, t.Title, t.URL, t.StartDate,
		t.TotalPages, len(t.Posts), time.Now(),
	)
	if err != nil {
		return err
	}

	for i := range t.Posts {
		if err := r.insertPost(t.ThreadID, &t.Posts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) insertPost(threadID string, p *models.Post) error {
	query := `
		INSERT INTO posts (post_id, thread_id, author, content, post_date, reactions, attachment_count, scraped_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (post_id) DO UPDATE SET
			content = EXCLUDED.content,
			reactions = EXCLUDED.reactions,
			attachment_count = EXCLUDED.attachment_count,
			scraped_at = EXCLUDED.scraped_at`

	_, err := r.db.Exec(query,
		p.PostID, threadID, p.Author.Username, p.Content,
		p.Date, p.Reactions, len(p.Attachments), time.Now(),
	)
	return err
}

func (r *Repository) GetRecentThreads(limit int) ([]models.ThreadRecord, error) {
	query := `
		SELECT thread_id, title, url, start_date, total_pages, total_posts, scraped_at
		FROM threads
		ORDER BY scraped_at DESC
		LIMIT $1`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var threads []models.ThreadRecord
	for rows.Next() {
		var t models.ThreadRecord
		err := rows.Scan(&t.ThreadID, &t.Title, &t.URL, &t.StartDate,
			&t.TotalPages, &t.TotalPosts, &t.ScrapedAt)
		if err != nil {
			return nil, err
		}
		threads = append(threads, t)
	}

	return threads, rows.Err()
}

func (r *Repository) GetThreadCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM threads").Scan(&count)
	return count, err
}

func (r *Repository) GetPostCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count)
	return count, err
}

// scrape job operations

func (r *Repository) CreateScrapeJob(threadURL string) (int, error) {
	var jobID int
	query := `
		INSERT INTO scrape_jobs (thread_url, started_at, status)
		VALUES ($1, $2, 'running')
		RETURNING id`

	err := r.db.QueryRow(query, threadURL, time.Now()).Scan(&jobID)
	return jobID, err
}

func (r *Repository) UpdateScrapeJob(jobID int, status string, postsScraped int, errorMsg string) error {
	query := `
		UPDATE scrape_jobs
		SET status = $1, posts_scraped = $2, error_message = NULLIF($3, ''),
		    completed_at = CURRENT_TIMESTAMP
		WHERE id = $4`

	_, err := r.db.Exec(query, status, postsScraped, errorMsg, jobID)
	return err
}

func (r *Repository) GetLastScrapeJob() (*models.ScrapeJob, error) {
	var job models.ScrapeJob
	query := `
		SELECT id, thread_url, started_at, completed_at, status, posts_scraped, error_message
		FROM scrape_jobs
		WHERE status = 'completed'
		ORDER BY completed_at DESC
		LIMIT 1`

	err := r.db.QueryRow(query).Scan(
		&job.ID, &job.ThreadURL, &job.StartedAt, &job.CompletedAt,
		&job.Status, &job.PostsScraped, &job.ErrorMessage)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}
