package domain

import "time"

type Topic struct {
	ID            string     `json:"id" bson:"_id"`
	Slug          string     `json:"slug" bson:"slug"`
	Title         string     `json:"title" bson:"title"`
	Content       string     `json:"content" bson:"content"`
	Space         string     `json:"space" bson:"space"`
	Tags          []string   `json:"tags" bson:"tags"`
	AuthorID      string     `json:"author_id" bson:"author_id"`
	AuthorName    string     `json:"author_name" bson:"author_name"`
	Upvoters      []string   `json:"upvoters" bson:"upvoters"`
	Downvoters    []string   `json:"downvoters" bson:"downvoters"`
	ViewsCount    int64      `json:"views_count" bson:"views_count"`
	TotalComments int64      `json:"total_comments" bson:"total_comments"`
	ImageURL      *string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Poll          *Poll      `json:"poll,omitempty" bson:"poll,omitempty"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
}

type Poll struct {
	Question  string       `json:"question" bson:"question"`
	Options   []PollOption `json:"options" bson:"options"`
	VoterIDs  []string     `json:"voter_ids" bson:"voter_ids"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
}

type PollOption struct {
	Text  string `json:"text" bson:"text"`
	Votes int64  `json:"votes" bson:"votes"`
}

type CreateTopicInput struct {
	Title    string           `json:"title"`
	Content  string           `json:"content"`
	Space    string           `json:"space"`
	Tags     []string         `json:"tags"`
	ImageURL *string          `json:"image_url"`
	Poll     *CreatePollInput `json:"poll"`
}

type CreatePollInput struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	DurationDays int      `json:"duration_days"`
}

// TopicListParams filters and paginates the topic index.
// Sort is one of: latest, popular, most_replied, most_upvoted.
type TopicListParams struct {
	Search string
	Space  string
	Sort   string
	Page   int
	Limit  int
}

func (p *TopicListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > 100 {
		p.Limit = 10
	}
}

func (p TopicListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type TopicPage struct {
	Topics      []Topic `json:"topics"`
	CurrentPage int     `json:"current_page"`
	TotalPages  int     `json:"total_pages"`
	TotalTopics int64   `json:"total_topics"`
}

// Contributor is one row of the most-active-topic-authors aggregation.
type Contributor struct {
	AuthorID   string `json:"author_id" bson:"_id"`
	AuthorName string `json:"author_name" bson:"author_name"`
	Count      int64  `json:"count" bson:"count"`
}
