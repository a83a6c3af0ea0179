package solana

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// WSConfig configures LogStream behavior.
type WSConfig struct {
	// ReconnectDelay is the initial delay before a reconnect attempt.
	ReconnectDelay time.Duration
	// MaxReconnectDelay caps the reconnect backoff.
	MaxReconnectDelay time.Duration
	// PingInterval is how often ping frames are sent.
	PingInterval time.Duration
	// ReadTimeout bounds each message read.
	ReadTimeout time.Duration
	// WriteTimeout bounds each message write.
	WriteTimeout time.Duration
	// SubscribeTimeout bounds the wait for the initial subscription
	// confirmation.
	SubscribeTimeout time.Duration
}

// DefaultWSConfig returns the default LogStream configuration.
func DefaultWSConfig() WSConfig {
	return WSConfig{
		ReconnectDelay:    1 * time.Second,
		MaxReconnectDelay: 30 * time.Second,
		PingInterval:      30 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		SubscribeTimeout:  30 * time.Second,
	}
}

// LogStream holds one logsSubscribe subscription over a WebSocket
// connection and delivers notifications on a channel. On connection loss it
// reconnects with exponential backoff and resubscribes with the same filter.
type LogStream struct {
	endpoint string
	filter   LogsFilter
	config   WSConfig

	conn   *websocket.Conn
	connMu sync.Mutex

	closed    atomic.Bool
	requestID atomic.Uint64
	subID     atomic.Int64

	// confirm receives the subscription ID for the initial subscribe.
	confirm chan int64

	// out carries notifications to the consumer. Sends block rather than
	// drop; the buffer absorbs bursts while the consumer writes to storage.
	out chan LogNotification

	done chan struct{}
	wg   sync.WaitGroup
}

// NewLogStream connects to the WebSocket endpoint and subscribes to logs
// matching the filter. The returned stream is live: notifications arrive on
// Logs until Close.
func NewLogStream(ctx context.Context, endpoint string, filter LogsFilter, config *WSConfig) (*LogStream, error) {
	cfg := DefaultWSConfig()
	if config != nil {
		cfg = *config
	}

	s := &LogStream{
		endpoint: endpoint,
		filter:   filter,
		config:   cfg,
		confirm:  make(chan int64, 1),
		out:      make(chan LogNotification, 4096),
		done:     make(chan struct{}),
	}

	if err := s.connect(ctx); err != nil {
		return nil, err
	}

	s.wg.Add(2)
	go s.readLoop()
	go s.pingLoop()

	if err := s.sendSubscribe(); err != nil {
		s.Close()
		return nil, err
	}

	select {
	case id := <-s.confirm:
		s.subID.Store(id)
	case <-time.After(cfg.SubscribeTimeout):
		s.Close()
		return nil, fmt.Errorf("logs subscription timeout after %s", cfg.SubscribeTimeout)
	case <-ctx.Done():
		s.Close()
		return nil, ctx.Err()
	}

	return s, nil
}

// Logs returns the notification channel. It is closed by Close.
func (s *LogStream) Logs() <-chan LogNotification {
	return s.out
}

// Close shuts down the stream and closes the notification channel. Safe to
// call more than once.
func (s *LogStream) Close() error {
	if s.closed.Swap(true) {
		return nil
	}

	close(s.done)

	s.connMu.Lock()
	if s.conn != nil {
		s.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		s.conn.Close()
	}
	s.connMu.Unlock()

	s.wg.Wait()
	close(s.out)
	return nil
}

// connect establishes the WebSocket connection.
func (s *LogStream) connect(ctx context.Context) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, s.endpoint, nil)
	if err != nil {
		return fmt.Errorf("websocket dial: %w", err)
	}

	s.connMu.Lock()
	s.conn = conn
	s.connMu.Unlock()
	return nil
}

// sendSubscribe writes the logsSubscribe request for the stream's filter.
// The confirmation arrives asynchronously through the read loop.
func (s *LogStream) sendSubscribe() error {
	mentions := make(map[string]interface{})
	if len(s.filter.Mentions) > 0 {
		mentions["mentions"] = s.filter.Mentions
	} else {
		mentions["all"] = nil
	}

	req := wsRequest{
		JSONRPC: "2.0",
		ID:      s.requestID.Add(1),
		Method:  "logsSubscribe",
		Params: []interface{}{
			mentions,
			map[string]string{"commitment": "confirmed"},
		},
	}

	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.conn == nil {
		return fmt.Errorf("not connected")
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteJSON(req); err != nil {
		return fmt.Errorf("write subscribe: %w", err)
	}
	return nil
}

// readLoop reads messages and dispatches them; on read failure it
// reconnects with exponential backoff and resubscribes.
func (s *LogStream) readLoop() {
	defer s.wg.Done()

	delay := s.config.ReconnectDelay

	for !s.closed.Load() {
		s.connMu.Lock()
		conn := s.conn
		s.connMu.Unlock()

		if conn == nil {
			if !s.sleep(delay) {
				return
			}
			delay = s.nextDelay(delay)
			s.redial()
			continue
		}

		conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		_, message, err := conn.ReadMessage()
		if err != nil {
			if s.closed.Load() {
				return
			}

			s.connMu.Lock()
			if s.conn != nil {
				s.conn.Close()
				s.conn = nil
			}
			s.connMu.Unlock()

			if !s.sleep(delay) {
				return
			}
			delay = s.nextDelay(delay)
			s.redial()
			continue
		}

		delay = s.config.ReconnectDelay
		s.handleMessage(message)
	}
}

// redial reconnects and resubscribes. Failures are left for the next loop
// iteration to retry.
func (s *LogStream) redial() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.connect(ctx); err != nil {
		return
	}
	if err := s.sendSubscribe(); err != nil {
		log.Printf("[solana-ws] resubscribe failed: %v", err)
	}
}

// sleep waits for d or shutdown; false means the stream is closing.
func (s *LogStream) sleep(d time.Duration) bool {
	select {
	case <-s.done:
		return false
	case <-time.After(d):
		return true
	}
}

func (s *LogStream) nextDelay(d time.Duration) time.Duration {
	d *= 2
	if d > s.config.MaxReconnectDelay {
		d = s.config.MaxReconnectDelay
	}
	return d
}

// handleMessage routes one incoming WebSocket message.
func (s *LogStream) handleMessage(message []byte) {
	var resp wsSubscribeResponse
	if err := json.Unmarshal(message, &resp); err == nil && resp.Result > 0 {
		s.subID.Store(resp.Result)
		select {
		case s.confirm <- resp.Result:
		default:
		}
		return
	}

	var notif wsNotification
	if err := json.Unmarshal(message, &notif); err == nil && notif.Method == "logsNotification" {
		s.handleNotification(&notif)
		return
	}

	var errResp struct {
		Error *rpcError `json:"error"`
	}
	if err := json.Unmarshal(message, &errResp); err == nil && errResp.Error != nil {
		log.Printf("[solana-ws] error response: %v", errResp.Error)
	}
}

// handleNotification forwards one logs notification to the consumer.
func (s *LogStream) handleNotification(notif *wsNotification) {
	if notif.Params == nil {
		return
	}

	value := notif.Params.Result.Value
	out := LogNotification{
		Signature: value.Signature,
		Logs:      value.Logs,
		Err:       value.Err,
	}
	if notif.Params.Result.Context != nil {
		out.Slot = notif.Params.Result.Context.Slot
	}

	// Block until delivered; dropped fills would corrupt the trade history.
	select {
	case s.out <- out:
	case <-s.done:
	}
}

// pingLoop keeps the connection alive with periodic ping frames.
func (s *LogStream) pingLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.connMu.Lock()
			if s.conn != nil {
				s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
				// A failed ping surfaces as a read error; the read loop
				// handles the reconnect.
				s.conn.WriteMessage(websocket.PingMessage, nil)
			}
			s.connMu.Unlock()
		}
	}
}

// WebSocket message types.

type wsRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params,omitempty"`
}

type wsSubscribeResponse struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Result  int64  `json:"result"` // subscription ID
}

type wsNotification struct {
	JSONRPC string                `json:"jsonrpc"`
	Method  string                `json:"method"`
	Params  *wsNotificationParams `json:"params"`
}

type wsNotificationParams struct {
	Subscription int64                `json:"subscription"`
	Result       wsNotificationResult `json:"result"`
}

type wsNotificationResult struct {
	Context *wsContext  `json:"context"`
	Value   wsLogsValue `json:"value"`
}

type wsContext struct {
	Slot int64 `json:"slot"`
}

type wsLogsValue struct {
	Signature string      `json:"signature"`
	Logs      []string    `json:"logs"`
	Err       interface{} `json:"err"`
}
