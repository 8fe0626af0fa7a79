package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/fabricofdreams/falcon9dash/internal/dashboard"
	"github.com/fabricofdreams/falcon9dash/internal/model"
	"github.com/fabricofdreams/falcon9dash/internal/reactive"
)

// inputMessage is an input change sent by the browser.
//
//	{"input":"site","site":"CCAFS LC-40"}
//	{"input":"payload","payload":[2000,8000]}
type inputMessage struct {
	Input   string    `json:"input"`
	Site    string    `json:"site,omitempty"`
	Payload []float64 `json:"payload,omitempty"`
}

// cellMessage carries a recomputed chart spec to the browser.
type cellMessage struct {
	Cell string `json:"cell"`
	Spec any    `json:"spec"`
}

// errInvalidMessage is reported back for malformed input messages.
var errInvalidMessage = errors.New("invalid input message")

// event converts an input message into a loop event.
func (s *Server) event(msg inputMessage) (reactive.Event, error) {
	input, err := reactive.ParseInput(msg.Input)
	if err != nil {
		return reactive.Event{}, err
	}

	switch input {
	case reactive.InputSite:
		site, err := s.dash.ParseSite(msg.Site)
		if err != nil {
			return reactive.Event{}, err
		}
		return reactive.SiteChanged(site), nil
	default:
		if len(msg.Payload) != 2 {
			return reactive.Event{}, fmt.Errorf("%w: payload needs two bounds, got %d", errInvalidMessage, len(msg.Payload))
		}
		rng, err := model.NewPayloadRange(msg.Payload[0], msg.Payload[1])
		if err != nil {
			return reactive.Event{}, err
		}
		return reactive.PayloadChanged(rng), nil
	}
}

// handleSession upgrades to a websocket and runs one reactive loop for the
// connection. Both charts are pushed on connect; afterwards only the cells
// depending on a changed input are pushed again.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "request_id", RequestID(r.Context()), "error", err)
		return
	}
	defer conn.CloseNow()

	id := RequestID(r.Context())
	logger := s.logger.With("request_id", id)
	logger.Debug("session opened")

	loop := s.dash.Loop(dashboard.Sinks{
		Pie: func(ctx context.Context, spec model.PieSpec) error {
			return wsjson.Write(ctx, conn, cellMessage{Cell: dashboard.CellPie, Spec: spec})
		},
		Scatter: func(ctx context.Context, spec model.ScatterSpec) error {
			return wsjson.Write(ctx, conn, cellMessage{Cell: dashboard.CellScatter, Spec: spec})
		},
	}, reactive.WithLogger(logger))

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		return loop.Run(ctx)
	})
	g.Go(func() error {
		defer loop.Close()
		return s.readInputs(ctx, conn, loop)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("session ended", "error", err)
		conn.Close(websocket.StatusInternalError, "session failed")
		return
	}
	logger.Debug("session closed")
	conn.Close(websocket.StatusNormalClosure, "")
}

// readInputs feeds browser messages into loop until the peer closes.
// Invalid messages are answered with an error message and skipped.
func (s *Server) readInputs(ctx context.Context, conn *websocket.Conn, loop *reactive.Loop) error {
	for {
		var msg inputMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}
			return err
		}

		ev, err := s.event(msg)
		if err != nil {
			if werr := wsjson.Write(ctx, conn, errorBody{Error: err.Error()}); werr != nil {
				return werr
			}
			continue
		}
		if err := loop.Submit(ctx, ev); err != nil {
			return err
		}
	}
}
