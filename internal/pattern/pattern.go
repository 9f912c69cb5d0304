package pattern

// SchemaVersion is written into every detected pattern so stored files can
// be migrated if the shape ever changes.
const SchemaVersion = "1.0"

// Keys into the Classes and Attributes maps.
const (
	ClassContentWrapper = "content_wrapper"
	AttrPostID          = "post_id"
)

// SitePattern is the per-site selector configuration produced by the
// detector. Role lists are ordered by preference; a role that is absent from
// the maps means "use the catalog defaults". Read-only once stored.
type SitePattern struct {
	Version    string              `json:"version" yaml:"version"`
	SampleURL  string              `json:"thread_url_sample,omitempty" yaml:"thread_url_sample,omitempty"`
	Selectors  map[string][]string `json:"selectors" yaml:"selectors"`
	Classes    map[string][]string `json:"classes" yaml:"classes"`
	Attributes map[string]string   `json:"attributes" yaml:"attributes"`
}

// RoleSelectors returns the detected selector list for a role, or nil when
// the role was omitted. Safe on a nil pattern.
func (p *SitePattern) RoleSelectors(role string) []string {
	if p == nil || p.Selectors == nil {
		return nil
	}
	return p.Selectors[role]
}

// ContentClasses returns the detected content wrapper class names, or nil.
func (p *SitePattern) ContentClasses() []string {
	if p == nil || p.Classes == nil {
		return nil
	}
	return p.Classes[ClassContentWrapper]
}

// PostIDAttr returns the detected post id attribute name, or "".
func (p *SitePattern) PostIDAttr() string {
	if p == nil || p.Attributes == nil {
		return ""
	}
	return p.Attributes[AttrPostID]
}

// IsEmpty reports whether detection found nothing at all, i.e. every role
// is omitted and extraction will run entirely on defaults.
func (p *SitePattern) IsEmpty() bool {
	if p == nil {
		return true
	}
	return len(p.Selectors) == 0 && len(p.Classes) == 0 && len(p.Attributes) == 0
}
