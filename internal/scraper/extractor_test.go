package scraper

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/mindjek007/XenForo-Scraper/internal/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threadPage = `<html><body>
<h1 class="p-title-value">Demo Thread</h1>
<article class="message" data-content="post-101">
  <section class="message-user">
    <a class="username" href="/members/alice.42/">alice</a>
    <h5 class="userTitle message-userTitle">Member</h5>
    <dl><dd>1,204</dd></dl>
    <dl><dd>350</dd></dl>
    <dl><dd>97</dd></dl>
  </section>
  <time datetime="2024-01-05T10:00:00Z" class="u-dt">Jan 5, 2024</time>
  <div class="bbWrapper">
    Hello <b>world</b>, check
    <a href="/threads/other-thread.99/">this thread</a> and
    <a href="https://otherhost.com/image.jpg">a picture</a> and
    <a href="https://example.org/page">an article</a> and
    <a href="https://onlyfans.com/someone">her page</a>.
    <blockquote class="bbCodeBlock--quote">quoted text that must not leak</blockquote>
    <iframe src="https://www.youtube.com/embed/abc123"></iframe>
  </div>
  <ul class="attachmentList">
    <li class="attachment"><a href="/attachments/pic-jpg.55/">pic.jpg</a></li>
  </ul>
  <div class="reactionsBar">alice, bob and 11 others</div>
</article>
<article class="message">
  <div class="bbWrapper">post without any id attribute</div>
</article>
<article class="message" data-content="post-103">
  <div class="bbWrapper">third post</div>
</article>
</body></html>`

func forumBase(t *testing.T) *url.URL {
	t.Helper()
	base, err := url.Parse("https://sameforum.com")
	require.NoError(t, err)
	return base
}

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractPostsEndToEnd(t *testing.T) {
	ex := NewExtractor(forumBase(t), nil)
	posts := ex.ExtractPosts(docFrom(t, threadPage))

	require.Len(t, posts, 2)
	first := posts[0]

	assert.Equal(t, "101", first.PostID)
	assert.Equal(t, "2024-01-05T10:00:00Z", first.Date)
	assert.Equal(t, 11, first.Reactions)

	// author snapshot
	assert.Equal(t, "alice", first.Author.Username)
	require.NotNil(t, first.Author.UserID)
	assert.Equal(t, "42", *first.Author.UserID)
	require.NotNil(t, first.Author.ProfileURL)
	assert.Equal(t, "https://sameforum.com/members/alice.42/", *first.Author.ProfileURL)
	require.NotNil(t, first.Author.UserTitle)
	assert.Equal(t, "Member", *first.Author.UserTitle)
	require.NotNil(t, first.Author.Messages)
	assert.Equal(t, 1204, *first.Author.Messages)
	require.NotNil(t, first.Author.ReactionScore)
	assert.Equal(t, 350, *first.Author.ReactionScore)
	require.NotNil(t, first.Author.Points)
	assert.Equal(t, 97, *first.Author.Points)

	// one image attachment
	require.Len(t, first.Attachments, 1)
	assert.Equal(t, "55", first.Attachments[0].AttachmentID)
	assert.Equal(t, "pic.jpg", first.Attachments[0].Filename)
	assert.Equal(t, "image", first.Attachments[0].FileType)
	assert.Equal(t, "https://sameforum.com/attachments/pic-jpg.55/", first.Attachments[0].URL)

	// one youtube embed
	require.Len(t, first.MediaEmbeds, 1)
	assert.Equal(t, "youtube", first.MediaEmbeds[0].MediaType)
	require.NotNil(t, first.MediaEmbeds[0].MediaID)
	assert.Equal(t, "abc123", *first.MediaEmbeds[0].MediaID)
	assert.Empty(t, first.MediaEmbeds[0].RawHTML)
}

func TestExtractSkipsPostWithoutIDPreservingOrder(t *testing.T) {
	ex := NewExtractor(forumBase(t), nil)
	posts := ex.ExtractPosts(docFrom(t, threadPage))

	require.Len(t, posts, 2)
	assert.Equal(t, "101", posts[0].PostID)
	assert.Equal(t, "103", posts[1].PostID)
}

func TestContentIsPlainTextWithoutQuotes(t *testing.T) {
	ex := NewExtractor(forumBase(t), nil)
	posts := ex.ExtractPosts(docFrom(t, threadPage))

	require.Len(t, posts, 2)
	content := posts[0].Content
	assert.NotContains(t, content, "<")
	assert.NotContains(t, content, ">")
	assert.Contains(t, content, "Hello world")
	assert.NotContains(t, content, "quoted text")
}

func TestLinkClassification(t *testing.T) {
	ex := NewExtractor(forumBase(t), nil)
	posts := ex.ExtractPosts(docFrom(t, threadPage))
	require.Len(t, posts, 2)

	byURL := map[string]string{}
	for _, link := range posts[0].Links {
		byURL[link.URL] = link.LinkType
	}

	assert.Equal(t, LinkInternal, byURL["https://sameforum.com/threads/other-thread.99/"])
	// image extension wins over the internal/external split
	assert.Equal(t, LinkImageLink, byURL["https://otherhost.com/image.jpg"])
	assert.Equal(t, LinkExternal, byURL["https://example.org/page"])
	assert.Equal(t, LinkExternal, byURL["https://onlyfans.com/someone"])
}

func TestDefaultFallbackEquivalence(t *testing.T) {
	// a pattern omitting a role must extract identically to one that spells
	// out the catalog defaults for that role
	defaults := pattern.DefaultPattern()

	omitting := &pattern.SitePattern{
		Version: pattern.SchemaVersion,
		Selectors: map[string][]string{
			pattern.RolePostContainer: defaults.RoleSelectors(pattern.RolePostContainer),
		},
	}
	explicit := &pattern.SitePattern{
		Version: pattern.SchemaVersion,
		Selectors: map[string][]string{
			pattern.RolePostContainer: defaults.RoleSelectors(pattern.RolePostContainer),
			pattern.RoleAuthor:        defaults.RoleSelectors(pattern.RoleAuthor),
			pattern.RoleDate:          defaults.RoleSelectors(pattern.RoleDate),
			pattern.RoleReactions:     defaults.RoleSelectors(pattern.RoleReactions),
			pattern.RoleAttachments:   defaults.RoleSelectors(pattern.RoleAttachments),
		},
		Classes:    map[string][]string{pattern.ClassContentWrapper: defaults.ContentClasses()},
		Attributes: map[string]string{pattern.AttrPostID: defaults.PostIDAttr()},
	}

	base := forumBase(t)
	fromOmitting := NewExtractor(base, omitting).ExtractPosts(docFrom(t, threadPage))
	fromExplicit := NewExtractor(base, explicit).ExtractPosts(docFrom(t, threadPage))

	assert.Equal(t, fromExplicit, fromOmitting)
}

func TestFirstHitWinsContainerPolicy(t *testing.T) {
	// both selectors in the list match elements, only the first is used
	page := `<html><body>
	<div class="message" data-content="post-1"><div class="bbWrapper">a</div></div>
	<div class="post" data-content="post-2"><div class="bbWrapper">b</div></div>
	</body></html>`

	pat := &pattern.SitePattern{
		Version: pattern.SchemaVersion,
		Selectors: map[string][]string{
			pattern.RolePostContainer: {".message", ".post"},
		},
	}
	posts := NewExtractor(forumBase(t), pat).ExtractPosts(docFrom(t, page))

	require.Len(t, posts, 1)
	assert.Equal(t, "1", posts[0].PostID)
}

func TestExtractPostsEmptyPage(t *testing.T) {
	ex := NewExtractor(forumBase(t), nil)
	posts := ex.ExtractPosts(docFrom(t, `<html><body><p>no posts here</p></body></html>`))
	assert.Empty(t, posts)
}

func TestPostIDFallsBackToIDAttribute(t *testing.T) {
	page := `<html><body>
	<article class="message" id="post-77"><div class="bbWrapper">hi</div></article>
	</body></html>`
	posts := NewExtractor(forumBase(t), nil).ExtractPosts(docFrom(t, page))

	require.Len(t, posts, 1)
	assert.Equal(t, "77", posts[0].PostID)
}

func TestReactionsDefaultToZero(t *testing.T) {
	page := `<html><body>
	<article class="message" data-content="post-5">
	  <div class="bbWrapper">quiet post</div>
	  <div class="reactionsBar">no numbers in here</div>
	</article>
	<article class="message" data-content="post-6">
	  <div class="bbWrapper">no reactions markup at all</div>
	</article>
	</body></html>`
	posts := NewExtractor(forumBase(t), nil).ExtractPosts(docFrom(t, page))

	require.Len(t, posts, 2)
	assert.Equal(t, 0, posts[0].Reactions)
	assert.Equal(t, 0, posts[1].Reactions)
}

func TestDateFallsBackToVisibleText(t *testing.T) {
	page := `<html><body>
	<article class="message" data-content="post-9">
	  <div class="bbWrapper">text</div>
	  <span class="u-dt">Jan 7, 2024</span>
	</article>
	</body></html>`
	posts := NewExtractor(forumBase(t), nil).ExtractPosts(docFrom(t, page))

	require.Len(t, posts, 1)
	assert.Equal(t, "Jan 7, 2024", posts[0].Date)
}

func TestUsernameRequiredOtherFieldsOptional(t *testing.T) {
	page := `<html><body>
	<article class="message" data-content="post-3">
	  <span class="username">bob</span>
	  <div class="bbWrapper">bare author markup</div>
	</article>
	</body></html>`
	posts := NewExtractor(forumBase(t), nil).ExtractPosts(docFrom(t, page))

	require.Len(t, posts, 1)
	author := posts[0].Author
	assert.Equal(t, "bob", author.Username)
	assert.Nil(t, author.UserID)
	assert.Nil(t, author.ProfileURL)
	assert.Nil(t, author.UserTitle)
	assert.Nil(t, author.Messages)
	assert.Nil(t, author.ReactionScore)
	assert.Nil(t, author.Points)
}
