package web

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/trieplace/trieplace/internal/match"
	"github.com/trieplace/trieplace/internal/token"
)

// upgrader mirrors dphaener-conduit's internal/web/websocket.Upgrader
// defaults (open CORS, no compression) scaled down to this server's single
// streaming endpoint.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// chanIterator adapts a channel of tokens fed by a websocket read loop
// into a token.Iterator the streaming matcher can pull from.
type chanIterator struct {
	tokens <-chan string
}

func (c *chanIterator) Next() (string, bool) {
	tok, ok := <-c.tokens
	return tok, ok
}

// handleStream upgrades to a WebSocket connection, tokenizes each incoming
// text frame, and streams Translate's output back frame-by-frame as the
// matcher commits tokens, realizing component D's "emit promptly, online"
// contract over the network.
func (h *Handlers) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	tokens := make(chan string, 256)
	go h.readFrames(conn, tokens)

	translated := match.Translate(h.Dict.Trie(), &chanIterator{tokens: tokens})
	for {
		out, ok := translated.Next()
		if !ok {
			return
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(out)); err != nil {
			h.Logger.Warn("websocket write failed", zap.Error(err))
			return
		}
	}
}

func (h *Handlers) readFrames(conn *websocket.Conn, tokens chan<- string) {
	defer close(tokens)
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		it := h.Tokenizer.Tokenize([]rune(string(data)))
		for {
			tok, ok := it.Next()
			if !ok {
				break
			}
			tokens <- tok
		}
	}
}

var _ token.Iterator = (*chanIterator)(nil)
