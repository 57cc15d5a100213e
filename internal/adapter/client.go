package adapter

import (
	"context"
	"net/http"

	"github.com/dghubble/go-twitter/twitter"
	"github.com/dghubble/oauth1"
)

// RESTClient is the part of the Twitter REST API the adapter needs.
type RESTClient interface {
	// UpdateStatus posts text, replying to inReplyTo unless it is 0, and
	// returns the new status id.
	UpdateStatus(text string, inReplyTo int64) (int64, error)
	Follow(screenName string) error
}

// Streamer delivers inbound events to handle until ctx is done, the stream
// ends, or handle returns an error.
type Streamer interface {
	Subscribe(ctx context.Context, handle func(Event) error) error
}

type Credentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

// NewHTTPClient returns an OAuth1-signing HTTP client for creds.
func NewHTTPClient(creds Credentials) *http.Client {
	config := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)
	return config.Client(context.Background(), token)
}

// NewClients builds both facades over one go-twitter client.
func NewClients(httpClient *http.Client) (RESTClient, Streamer) {
	client := twitter.NewClient(httpClient)
	return &restClient{client: client}, &userStream{client: client}
}

type restClient struct {
	client *twitter.Client
}

func (c *restClient) UpdateStatus(text string, inReplyTo int64) (int64, error) {
	tweet, _, err := c.client.Statuses.Update(text, &twitter.StatusUpdateParams{
		InReplyToStatusID: inReplyTo,
	})
	if err != nil {
		return 0, err
	}
	return tweet.ID, nil
}

func (c *restClient) Follow(screenName string) error {
	_, _, err := c.client.Friendships.Create(&twitter.FriendshipCreateParams{
		ScreenName: screenName,
	})
	return err
}
