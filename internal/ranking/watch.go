package ranking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path"

	"github.com/gorilla/websocket"
)

// WatchURL derives the websocket feed URL from a ranking endpoint.
func WatchURL(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("ranking: invalid endpoint: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("ranking: unsupported scheme %q", u.Scheme)
	}
	u.Path = path.Join("/", u.Path, "ws")
	u.RawQuery = ""
	return u.String(), nil
}

// Watch connects to a leaderboard feed and calls fn for every update until
// ctx is cancelled or the connection drops.
func Watch(ctx context.Context, feedURL string, fn func([]Record)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, feedURL, nil)
	if err != nil {
		return fmt.Errorf("ranking: dial %s: %w", feedURL, err)
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("ranking: read feed: %w", err)
		}

		var upd Update
		if err := json.Unmarshal(data, &upd); err != nil {
			return fmt.Errorf("ranking: decode update: %w", err)
		}
		if upd.Type == "leaderboard" {
			fn(upd.Records)
		}
	}
}
