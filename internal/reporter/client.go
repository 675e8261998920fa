package reporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Meshotron2/monitor/internal/metrics"
	"github.com/Meshotron2/monitor/internal/progress"
)

// State is the connection state of a Client.
type State int

// Client states.
const (
	StateDisconnected State = iota
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// Config controls dialing and writing.
//   - Timeout: bound for each dial and each write; zero means no timeout.
type Config struct {
	Timeout time.Duration
}

// Client reports progress records over a single TCP connection.
type Client struct {
	cfg     Config
	logger  *zap.Logger
	metrics *metrics.Reporter

	conn    net.Conn
	addr    string
	session string
}

// New returns a disconnected Client. logger and m may be nil.
func New(cfg Config, logger *zap.Logger, m *metrics.Reporter) *Client {
	if cfg.Timeout < 0 {
		cfg.Timeout = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{cfg: cfg, logger: logger, metrics: m}
}

// State returns the current connection state.
func (c *Client) State() State {
	if c.conn == nil {
		return StateDisconnected
	}
	return StateConnected
}

// Connect opens a TCP connection to host:port. On failure the client stays
// disconnected and may be retried or discarded.
func (c *Client) Connect(ctx context.Context, host string, port int) error {
	if c.conn != nil {
		return ErrAlreadyConnected
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	dialer := net.Dialer{Timeout: c.cfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	c.metrics.ObserveConnect(err)
	if err != nil {
		c.logger.Warn("monitor connect failed", zap.String("addr", addr), zap.Error(err))
		return &ConnectError{Addr: addr, Err: err}
	}
	c.conn = conn
	c.addr = addr
	c.session = newSessionID()
	c.logger.Debug("monitor connected",
		zap.String("addr", addr),
		zap.String("session", c.session),
		zap.String("local", conn.LocalAddr().String()),
	)
	return nil
}

// Send writes rec in a single write. A short write or transport error is
// returned as *SendError without changing state.
func (c *Client) Send(ctx context.Context, rec progress.Record) error {
	conn := c.conn
	if conn == nil {
		return ErrNotConnected
	}
	if err := ctx.Err(); err != nil {
		c.metrics.ObserveSend(0, 0, err)
		return &SendError{Addr: c.addr, Err: err}
	}
	if err := conn.SetWriteDeadline(writeDeadline(ctx, time.Now(), c.cfg.Timeout)); err != nil {
		return &SendError{Addr: c.addr, Err: fmt.Errorf("set write deadline: %w", err)}
	}
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetWriteDeadline(time.Unix(1, 0))
	})
	defer stop()

	buf := rec.Encode()
	start := time.Now()
	n, err := conn.Write(buf[:])
	if err == nil && n != progress.RecordSize {
		err = io.ErrShortWrite
	}
	if err != nil && ctx.Err() != nil {
		err = errors.Join(ctx.Err(), err)
	}
	c.metrics.ObserveSend(n, time.Since(start), err)
	if err != nil {
		c.logger.Warn("progress record send failed",
			zap.String("addr", c.addr),
			zap.String("session", c.session),
			zap.Int("written", n),
			zap.Error(err),
		)
		return &SendError{Addr: c.addr, Written: n, Err: err}
	}
	c.logger.Debug("progress record sent",
		zap.String("session", c.session),
		zap.Int32("worker_id", rec.WorkerID),
		zap.Float32("percentage", rec.Percentage),
	)
	return nil
}

// Close releases the connection. Closing a client that is not connected is a
// no-op.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	conn, addr, session := c.conn, c.addr, c.session
	c.conn, c.addr, c.session = nil, "", ""
	if err := conn.Close(); err != nil {
		return fmt.Errorf("close monitor connection %s: %w", addr, err)
	}
	c.logger.Debug("monitor connection closed", zap.String("addr", addr), zap.String("session", session))
	return nil
}

// Report connects, sends rec and closes, one connection per record. The
// connection is closed on every path; a close failure is only returned when
// the send succeeded.
func (c *Client) Report(ctx context.Context, host string, port int, rec progress.Record) (err error) {
	if err := c.Connect(ctx, host, port); err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return c.Send(ctx, rec)
}

// writeDeadline returns the earlier of now+timeout and the ctx deadline. The
// zero time clears any deadline.
func writeDeadline(ctx context.Context, now time.Time, timeout time.Duration) time.Time {
	var deadline time.Time
	if timeout > 0 {
		deadline = now.Add(timeout)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}
	return deadline
}

func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
