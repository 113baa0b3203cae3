package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/lmehner/blockworld/internal/model"
)

func newEventsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Stream live world events",
		Long: `Connect to the websocket event endpoint and stream events in
real-time.

Event types:
  - join:    a player joined the server
  - leave:   a player left the server
  - message: a player sent a chat message
  - other:   an unclassified server event

Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return streamEvents(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// wireFrame mirrors the server's websocket event message
type wireFrame struct {
	Type    model.EventType `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func streamEvents(jsonOutput bool) error {
	wsURL, err := eventsURL(cfg.ServerURL)
	if err != nil {
		return err
	}

	header := http.Header{}
	if cfg.Token != "" {
		header.Set("Authorization", "Bearer "+cfg.Token)
	}

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("failed to connect (HTTP %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() { _ = conn.Close() }()

	fmt.Fprintf(os.Stderr, "Connected to %s (Ctrl+C to disconnect)\n", wsURL)

	// Close the connection on Ctrl+C, which unblocks the read loop
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		_ = conn.Close()
	}()

	for {
		var frame wireFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			// A closed connection after Ctrl+C is the normal exit path
			return nil
		}
		printFrame(frame, jsonOutput)
	}
}

func printFrame(frame wireFrame, jsonOutput bool) {
	if jsonOutput {
		data, _ := json.Marshal(frame)
		fmt.Println(string(data))
		return
	}

	switch frame.Type {
	case model.EventJoin:
		var e model.JoinEvent
		if json.Unmarshal(frame.Payload, &e) == nil {
			fmt.Printf("JOIN    %s (%s) join #%d\n", e.Player.Name, e.Address, e.Player.JoinCount)
			return
		}
	case model.EventLeave:
		var e model.LeaveEvent
		if json.Unmarshal(frame.Payload, &e) == nil {
			fmt.Printf("LEAVE   %s\n", e.Player.Name)
			return
		}
	case model.EventMessage:
		var e model.MessageEvent
		if json.Unmarshal(frame.Payload, &e) == nil {
			fmt.Printf("MESSAGE <%s> %s\n", e.Player.Name, e.Text)
			return
		}
	case model.EventOther:
		var e model.OtherEvent
		if json.Unmarshal(frame.Payload, &e) == nil {
			fmt.Printf("OTHER   %s\n", e.Raw)
			return
		}
	}
	fmt.Printf("%s %s\n", strings.ToUpper(string(frame.Type)), string(frame.Payload))
}

// eventsURL converts the configured HTTP base URL into the websocket
// endpoint URL.
func eventsURL(base string) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(base, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("invalid server URL scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/v1/events"
	return u.String(), nil
}
