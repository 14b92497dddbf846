package garagekb

// ContentType is a closed set of labels describing how an article's content
// is consumed.
type ContentType string

// Content type labels.
const (
	ContentVideo     ContentType = "video"
	ContentForumPost ContentType = "forum-post"
	ContentArticle   ContentType = "article"
	ContentReference ContentType = "reference"
)

// UncategorizedTag is the fallback problem tag assigned when no taxonomy
// category matches an article's text. Problem tags are never empty.
const UncategorizedTag = "uncategorized"

// Article is the canonical, classified, tagged content unit produced by the
// pipeline. Every article that survives classification has a non-empty ID
// and Title.
type Article struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Summary     string      `json:"summary"`
	Link        string      `json:"link"`
	Source      string      `json:"source"`
	SourceType  SourceKind  `json:"sourceType"`
	ContentType ContentType `json:"contentType"`
	Category    string      `json:"category"`
	ProblemTags []string    `json:"problemTags"`
	ErrorCodes  []string    `json:"errorCodes"`
	Brands      []string    `json:"brands"`
	Symptoms    []string    `json:"symptoms"`
	Image       string      `json:"image,omitempty"`

	// Published is an RFC 3339 UTC timestamp string, or empty when the
	// source date was missing or unparseable. Articles are ordered by
	// comparing these strings directly; uniform RFC 3339 formatting makes
	// lexicographic order chronological, and empty sorts as oldest.
	Published string `json:"published"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.ID == "" {
		return Errorf(EINVALID, "article ID required")
	}
	if a.Title == "" {
		return Errorf(EINVALID, "article title required")
	}
	return nil
}
