package cli

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/mindjek007/XenForo-Scraper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleThread() *models.Thread {
	userID := "42"
	return &models.Thread{
		ThreadID:   "7",
		Title:      "Demo Thread",
		URL:        "https://sameforum.com/threads/demo.7/",
		StartDate:  "2024-01-01T00:00:00Z",
		Tags:       []string{"leak"},
		Prefixes:   []string{"Request"},
		TotalPages: 2,
		SocialLinks: []models.Link{
			{URL: "https://onlyfans.com/user", Text: "her page", LinkType: "onlyfans"},
		},
		Posts: []models.Post{
			{
				PostID:    "101",
				Author:    models.User{Username: "alice", UserID: &userID},
				Content:   "hello",
				Date:      "2024-01-01T00:00:00Z",
				Reactions: 3,
				Attachments: []models.Attachment{
					{AttachmentID: "55", Filename: "pic.jpg", URL: "https://sameforum.com/attachments/pic-jpg.55/", FileType: "image"},
				},
			},
		},
	}
}

func TestExportThreadJSONContract(t *testing.T) {
	exporter := NewExporter(t.TempDir())

	filename, err := exporter.ExportThreadJSON(sampleThread())
	require.NoError(t, err)

	data, err := os.ReadFile(filename)
	require.NoError(t, err)

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &out))

	// the envelope field names are a contract; downstream tooling breaks if
	// any of them change
	for _, key := range []string{
		"thread_id", "title", "url", "start_date", "tags", "prefixes",
		"social_links", "total_pages", "total_posts", "posts",
	} {
		assert.Contains(t, out, key)
	}

	var posts []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out["posts"], &posts))
	require.Len(t, posts, 1)
	for _, key := range []string{
		"post_id", "author", "content", "date", "reactions",
		"attachments", "media_embeds", "links",
	} {
		assert.Contains(t, posts[0], key)
	}

	var author map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(posts[0]["author"], &author))
	for _, key := range []string{
		"username", "user_id", "profile_url", "user_title",
		"messages", "reaction_score", "points",
	} {
		assert.Contains(t, author, key)
	}

	var social []map[string]string
	require.NoError(t, json.Unmarshal(out["social_links"], &social))
	require.Len(t, social, 1)
	assert.Equal(t, "onlyfans", social[0]["platform"])

	var totalPosts int
	require.NoError(t, json.Unmarshal(out["total_posts"], &totalPosts))
	assert.Equal(t, 1, totalPosts)
}

func TestExportThreadJSONEmptyCollections(t *testing.T) {
	exporter := NewExporter(t.TempDir())

	thread := &models.Thread{ThreadID: "1", Title: "Empty"}
	filename, err := exporter.ExportThreadJSON(thread)
	require.NoError(t, err)

	data, err := os.ReadFile(filename)
	require.NoError(t, err)

	// empty collections export as [], not null
	assert.Contains(t, string(data), `"tags": []`)
	assert.Contains(t, string(data), `"posts": []`)
	assert.Contains(t, string(data), `"social_links": []`)
}

func TestExportThreadJSONEmptyPostCollections(t *testing.T) {
	exporter := NewExporter(t.TempDir())

	thread := &models.Thread{
		ThreadID: "1",
		Posts:    []models.Post{{PostID: "101", Author: models.User{Username: "alice"}}},
	}
	filename, err := exporter.ExportThreadJSON(thread)
	require.NoError(t, err)

	data, err := os.ReadFile(filename)
	require.NoError(t, err)

	// per-post collections follow the same rule as the thread-level ones
	content := string(data)
	assert.Contains(t, content, `"attachments": []`)
	assert.Contains(t, content, `"media_embeds": []`)
	assert.Contains(t, content, `"links": []`)
	assert.NotContains(t, content, `"links": null`)
}

func TestExportPostsCSV(t *testing.T) {
	exporter := NewExporter(t.TempDir())

	filename, err := exporter.ExportPostsCSV(sampleThread())
	require.NoError(t, err)

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "PostID,Author,Date,Reactions")
	assert.Contains(t, content, "101,alice")
}
