package adapter

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dghubble/go-twitter/twitter"
)

// Event is one inbound stream message: Post, Follow or Other.
type Event interface {
	kind() string
}

// Post is a tweet seen on the stream.
type Post struct {
	ID        int64
	Text      string
	Author    string
	Source    string // client name
	Retweeted *Post  // set when this post is a retweet
}

// Follow reports that Source started following Target.
type Follow struct {
	Source string
	Target string
}

// Other is every stream message the adapter does not act on.
type Other struct {
	Name string
}

func (Post) kind() string { return "post" }
func (Follow) kind() string { return "follow" }
func (Other) kind() string { return "other" }

// classifier maps raw go-twitter stream messages to Events.
type classifier struct {
	demux twitter.SwitchDemux
	last  Event
}

func newClassifier() *classifier {
	c := &classifier{}
	c.demux = twitter.NewSwitchDemux()
	c.demux.Tweet = func(t *twitter.Tweet) {
		c.last = postFromTweet(t)
	}
	c.demux.Event = func(e *twitter.Event) {
		if e.Event != "follow" {
			c.last = Other{Name: e.Event}
			return
		}
		c.last = Follow{
			Source: screenName(e.Source),
			Target: screenName(e.Target),
		}
	}
	c.demux.StatusDeletion = func(*twitter.StatusDeletion) { c.last = Other{Name: "delete"} }
	c.demux.StreamLimit = func(*twitter.StreamLimit) { c.last = Other{Name: "limit"} }
	c.demux.Warning = func(*twitter.StallWarning) { c.last = Other{Name: "warning"} }
	c.demux.FriendsList = func(*twitter.FriendsList) { c.last = Other{Name: "friends"} }
	return c
}

func (c *classifier) classify(message interface{}) Event {
	c.last = Other{Name: "unknown"}
	c.demux.Handle(message)
	return c.last
}

func postFromTweet(t *twitter.Tweet) Post {
	p := Post{
		ID:     t.ID,
		Text:   t.Text,
		Author: screenName(t.User),
		Source: clientName(t.Source),
	}
	// Streamed tweets over 140 characters carry the untruncated text here.
	if t.ExtendedTweet != nil && t.ExtendedTweet.FullText != "" {
		p.Text = t.ExtendedTweet.FullText
	}
	if t.RetweetedStatus != nil {
		rt := postFromTweet(t.RetweetedStatus)
		p.Retweeted = &rt
	}
	return p
}

func screenName(u *twitter.User) string {
	if u == nil {
		return ""
	}
	return u.ScreenName
}

// clientName reduces a tweet's HTML source attribute, eg:
// <a href="http://twitter.com/download/iphone" rel="nofollow">Twitter for iPhone</a>
// to its link text.
func clientName(source string) string {
	if !strings.Contains(source, "<") {
		return source
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return source
	}
	if a := doc.Find("a").First(); a.Length() > 0 {
		return strings.TrimSpace(a.Text())
	}
	return strings.TrimSpace(doc.Text())
}
