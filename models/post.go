package models

// Category enum
type Category string

const (
	Safety       Category = "Safety"
	UrgentHelp   Category = "Urgent Help"
	Giveaway     Category = "Giveaway"
	SocialImpact Category = "Social Impact"
	General      Category = "General"
)

// Categories returns every valid category in display order.
func Categories() []Category {
	return []Category{Safety, UrgentHelp, Giveaway, SocialImpact, General}
}

// ParseCategory validates a raw category string against the enum.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case Safety, UrgentHelp, Giveaway, SocialImpact, General:
		return Category(s), true
	}
	return "", false
}

// MediaType enum
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Location is a geotag attached to a post. It is either fully absent or
// carries both coordinates; the address is advisory text only.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

// Media is an attached photo or video, as a data URL or remote URL.
type Media struct {
	URL  string    `json:"url"`
	Type MediaType `json:"type"`
}

// Reply is a response under a post. Replies are append-only and immutable
// once created.
type Reply struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// Post represents a neighborhood announcement. Category is fixed at
// creation; IsSolved is the only field that changes afterwards, and only
// from false to true. Timestamps are epoch milliseconds to stay compatible
// with snapshots written by earlier clients.
type Post struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	Category    Category  `json:"category"`
	AuthorAlias string    `json:"authorAlias"`
	Location    *Location `json:"location,omitempty"`
	Media       *Media    `json:"media,omitempty"`
	Replies     []Reply   `json:"replies"`
	Timestamp   int64     `json:"timestamp"`
	IsSolved    bool      `json:"isSolved,omitempty"`
}
