package pattern

// Semantic roles a selector can be detected for.
const (
	RolePostContainer = "post_container"
	RoleAuthor        = "author"
	RoleDate          = "date"
	RoleReactions     = "reactions"
	RoleAttachments   = "attachments"
	RolePagination    = "pagination"
)

// Catalog is the built-in table of candidate CSS selectors per role,
// ordered by confidence. The detector probes these against a sample page;
// extraction falls back to DefaultPattern when a role was never detected.
type Catalog struct {
	Selectors      map[string][]string
	ContentClasses []string
	PostIDAttrs    []string
}

// DefaultCatalog returns the candidate table covering the XenForo theme
// variants seen in the wild.
func DefaultCatalog() Catalog {
	return Catalog{
		Selectors: map[string][]string{
			RolePostContainer: {".message", ".post", ".message--post"},
			RoleAuthor:        {".username", ".author", ".message-name", "[data-user-id] a"},
			RoleDate:          {"time[datetime]", "time", ".u-dt", ".DateTime", ".message-date"},
			RoleReactions:     {".reactionsBar", ".reactions", ".likes", ".message-reactions"},
			RoleAttachments:   {".attachment", ".attachmentList", ".message-attachments"},
			RolePagination:    {".pageNav", ".pagination", ".page-nav"},
		},
		ContentClasses: []string{"bbWrapper", "messageText", "message-body", "post-content"},
		PostIDAttrs:    []string{"data-content", "id", "data-post-id"},
	}
}

// DefaultPattern is the fallback used for any role a stored pattern omits.
func DefaultPattern() SitePattern {
	return SitePattern{
		Version: SchemaVersion,
		Selectors: map[string][]string{
			RolePostContainer: {".message", "article.message"},
			RoleAuthor:        {".username"},
			RoleDate:          {"time[datetime]", ".u-dt"},
			RoleReactions:     {".reactionsBar"},
			RoleAttachments:   {".attachment"},
			RolePagination:    {".pageNav"},
		},
		Classes: map[string][]string{
			ClassContentWrapper: {"bbWrapper"},
		},
		Attributes: map[string]string{
			AttrPostID: "data-content",
		},
	}
}
