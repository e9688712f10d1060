package debugfeed

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformcore/motion"
	"gonum.org/v1/gonum/floats/scalar"
)

func testInspection() motion.Inspection {
	bounds := motion.Bounds{Center: cp.Vector{X: 2, Y: 3}, Size: cp.Vector{X: 1, Y: 2}}
	return motion.Inspection{
		Active:       true,
		Position:     cp.Vector{X: 2, Y: 2},
		Bounds:       bounds,
		Rays:         motion.CalculateRayFans(bounds, 0.1),
		RayCount:     3,
		RayLength:    0.1,
		Contacts:     motion.Contacts{Down: true},
		Displacement: cp.Vector{X: 0.1},
		Future:       bounds,
	}
}

func TestNewFrame(t *testing.T) {
	f := NewFrame("player", testInspection(), motion.Snapshot{Tick: 4, Grounded: true})
	if f.Type != "inspect" || f.Tick != 4 || f.Actor != "player" || !f.Grounded {
		t.Fatalf("unexpected frame header %+v", f)
	}
	if len(f.Rays) != 12 {
		t.Fatalf("expected 4 fans x 3 rays, got %d", len(f.Rays))
	}
	if f.Bounds.Min != (Vec{X: 1.5, Y: 2}) || f.Bounds.Max != (Vec{X: 2.5, Y: 4}) {
		t.Fatalf("unexpected bounds %+v", f.Bounds)
	}
	down := f.Rays[6]
	if down.Side != "down" || down.Dir != (Vec{X: 0, Y: -1}) ||
		!scalar.EqualWithinAbs(down.Origin.X, 1.6, 1e-12) || down.Origin.Y != 2 {
		t.Fatalf("unexpected first down ray %+v", down)
	}
	if !f.Contacts.Down || f.Contacts.Up {
		t.Fatalf("contacts not copied: %+v", f.Contacts)
	}
}

func TestHubStreamsFramesToViewer(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(srv.Close)
	t.Cleanup(hub.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})

	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("viewer never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.Publish(NewFrame("bot", testInspection(), motion.Snapshot{Tick: 9}))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["type"] != "inspect" || got["actor"] != "bot" || got["tick"] != float64(9) {
		t.Fatalf("unexpected payload %v", got)
	}
}

func TestPublishDropsForFullBacklog(t *testing.T) {
	hub := NewHub()
	sub := &subscriber{send: make(chan []byte, 1), done: make(chan struct{})}
	if !hub.register(sub) {
		t.Fatal("register failed")
	}

	for i := 0; i < 3; i++ {
		hub.Publish(Frame{Tick: uint64(i)})
	}
	if hub.Dropped() != 2 {
		t.Fatalf("expected 2 dropped frames, got %d", hub.Dropped())
	}
	if len(sub.send) != 1 {
		t.Fatalf("expected one queued frame, got %d", len(sub.send))
	}
}

func TestClosedHubRefusesViewers(t *testing.T) {
	hub := NewHub()
	hub.Close()
	if hub.register(&subscriber{}) {
		t.Fatal("closed hub accepted a viewer")
	}
	var nilHub *Hub
	nilHub.Publish(Frame{})
}
