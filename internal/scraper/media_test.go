package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyEmbedProviders(t *testing.T) {
	tests := []struct {
		src       string
		mediaType string
		mediaID   string
	}{
		{"https://www.youtube.com/embed/abc123", "youtube", "abc123"},
		{"https://youtu.be/embed/xyz?autoplay=1", "youtube", "xyz"},
		{"https://saint2.cr/embed/deadbeef", "saint_video", "deadbeef"},
		{"https://www.redgifs.com/watch/clipname", "redgifs", "clipname"},
		{"https://imgur.com/a/gallery", "imgur", ""},
	}

	for _, tt := range tests {
		embed := classifyEmbed(tt.src)
		assert.Equal(t, tt.mediaType, embed.MediaType, tt.src)
		if tt.mediaID == "" {
			assert.Nil(t, embed.MediaID, tt.src)
		} else {
			require.NotNil(t, embed.MediaID, tt.src)
			assert.Equal(t, tt.mediaID, *embed.MediaID, tt.src)
		}
	}
}

func TestUnknownHostFallsBackToIframeWithRawMarkup(t *testing.T) {
	page := `<html><body>
	<article class="message" data-content="post-1">
	  <div class="bbWrapper">
	    <iframe src="https://player.unknownhost.example/v/1"></iframe>
	  </div>
	</article>
	</body></html>`
	posts := NewExtractor(forumBase(t), nil).ExtractPosts(docFrom(t, page))

	require.Len(t, posts, 1)
	require.Len(t, posts[0].MediaEmbeds, 1)
	embed := posts[0].MediaEmbeds[0]
	assert.Equal(t, "iframe", embed.MediaType)
	assert.Contains(t, embed.RawHTML, "<iframe")
	assert.Contains(t, embed.RawHTML, "player.unknownhost.example")
}

func TestLazyLoadedEmbedRecoveredFromOnclick(t *testing.T) {
	page := `<html><body>
	<article class="message" data-content="post-1">
	  <div class="bbWrapper">
	    <span onclick="loadMedia(this, 'https://www.redgifs.com/watch/clip')">
	      <div class="iframe-wrapper-redgifs"></div>
	    </span>
	  </div>
	</article>
	</body></html>`
	posts := NewExtractor(forumBase(t), nil).ExtractPosts(docFrom(t, page))

	require.Len(t, posts, 1)
	require.Len(t, posts[0].MediaEmbeds, 1)
	embed := posts[0].MediaEmbeds[0]
	assert.Equal(t, "redgifs", embed.MediaType)
	assert.Equal(t, "https://www.redgifs.com/watch/clip", embed.EmbedURL)
}
