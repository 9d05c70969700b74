package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	json "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/pointer"
)

const (
	// maxMessageSize caps one inbound pointer event frame.
	maxMessageSize = 1024
	// outboxSize is the number of gesture events buffered per connection.
	outboxSize = 64
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// SurfaceHandler turns every websocket connection into a gesture surface.
// Clients send pointer events and receive the gesture events they trigger.
type SurfaceHandler struct {
	app    *app.App
	logger *zap.Logger
}

// NewSurfaceHandler creates a new SurfaceHandler backed by a.
func NewSurfaceHandler(a *app.App, logger *zap.Logger) *SurfaceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SurfaceHandler{app: a, logger: logger.Named("surface")}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *SurfaceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	logger := h.logger.With(zap.String("conn", uuid.New().String()))
	logger.Debug("surface connected", zap.String("remote", conn.RemoteAddr().String()))

	if err := h.serve(r.Context(), conn, logger); err != nil {
		logger.Warn("surface connection failed", zap.Error(err))
		return
	}
	logger.Debug("surface disconnected")
}

// serve runs the reader, the pipeline and the writer of one connection. The
// reader stops the pipeline when the client goes away, the pipeline closes
// the outbox once it has applied every queued event and the writer flushes
// the outbox and closes the connection.
func (h *SurfaceHandler) serve(ctx context.Context, conn *websocket.Conn, logger *zap.Logger) error {
	s, err := h.app.NewSurface(conn.RemoteAddr().String())
	if err != nil {
		return err
	}
	pipeline := h.app.NewPipeline(s)

	g, gctx := errgroup.WithContext(ctx)

	outbox := make(chan gesture.Event, outboxSize)
	s.OnGesture(func(e gesture.Event) {
		select {
		case outbox <- e:
		case <-gctx.Done():
		}
	})

	g.Go(func() error {
		pipeline.Start(gctx)
		<-pipeline.Done()
		close(outbox)
		return nil
	})

	g.Go(func() error {
		defer pipeline.Stop()
		return h.read(gctx, conn, pipeline, logger)
	})

	g.Go(func() error {
		defer conn.Close()
		return h.write(conn, outbox, logger)
	})

	return g.Wait()
}

func (h *SurfaceHandler) read(ctx context.Context, conn *websocket.Conn, pipeline *app.Pipeline, logger *zap.Logger) error {
	conn.SetReadLimit(maxMessageSize)
	// The writer answers the client's close frame once the outbox is flushed.
	conn.SetCloseHandler(func(code int, text string) error { return nil })
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("surface read ended", zap.Error(err))
			}
			return nil
		}

		var e pointer.Event
		if err := json.Unmarshal(data, &e); err != nil {
			logger.Debug("dropping malformed pointer event", zap.Error(err))
			continue
		}

		if err := pipeline.Submit(ctx, e); err != nil {
			if errors.Is(err, app.ErrPipelineStopped) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

func (h *SurfaceHandler) write(conn *websocket.Conn, outbox <-chan gesture.Event, logger *zap.Logger) error {
	for e := range outbox {
		msg, err := json.Marshal(e)
		if err != nil {
			return err
		}
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return err
		}
	}
	// The client may already be gone.
	err := conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if err != nil {
		logger.Debug("close frame not sent", zap.Error(err))
	}
	return nil
}
