package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"skill-gap/internal/domain/skill"
	"skill-gap/internal/session"
	"skill-gap/internal/usecase"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeClient(sessionID uuid.UUID) *Client {
	return &Client{sessionID: sessionID, send: make(chan []byte, 4)}
}

func runHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = h.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return h
}

func TestHub_BroadcastIsScopedToSession(t *testing.T) {
	h := runHub(t)
	a, b := uuid.New(), uuid.New()
	a1, a2, b1 := fakeClient(a), fakeClient(a), fakeClient(b)
	h.Register(a1)
	h.Register(a2)
	h.Register(b1)
	require.Eventually(t, func() bool { return h.ClientCount() == 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, h.SessionClientCount(a))

	h.Broadcast(a, []byte("hello"))

	for _, c := range []*Client{a1, a2} {
		select {
		case msg := <-c.send:
			assert.Equal(t, "hello", string(msg))
		case <-time.After(time.Second):
			t.Fatal("expected message")
		}
	}
	select {
	case <-b1.send:
		t.Fatal("other session must not receive")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h := runHub(t)
	c := fakeClient(uuid.New())
	h.Register(c)
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	h.Unregister(c)
	require.Eventually(t, func() bool { return h.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	_, ok := <-c.send
	assert.False(t, ok)
}

func TestClient_Process(t *testing.T) {
	uc := usecase.NewDashboardUsecase(session.NewMemoryStore(time.Hour), skill.DemoJob, skill.DemoRequirements(), zerolog.Nop())
	c := &Client{sessionID: uuid.New(), uc: uc, send: make(chan []byte, 1), logger: zerolog.Nop()}
	ctx := context.Background()

	view, reply := c.process(ctx, []byte(`{"skill":"Python","level":8}`))
	require.NotNil(t, view)
	assert.Nil(t, reply)
	assert.Equal(t, 8, view.Levels["Python"])

	for _, frame := range []string{`not json`, `{"skill":"Python"}`, `{"skill":"Python","level":11}`, `{"skill":"Cobol","level":3}`} {
		view, reply := c.process(ctx, []byte(frame))
		assert.Nil(t, view, frame)
		var msg Message
		require.NoError(t, json.Unmarshal(reply, &msg), frame)
		assert.Equal(t, TypeError, msg.Type, frame)
		assert.NotEmpty(t, msg.Error, frame)
	}
}

func TestReportFrame(t *testing.T) {
	uc := usecase.NewDashboardUsecase(session.NewMemoryStore(time.Hour), skill.DemoJob, skill.DemoRequirements(), zerolog.Nop())
	view, err := uc.Open(context.Background(), uuid.New())
	require.NoError(t, err)

	b, err := reportFrame(view)
	require.NoError(t, err)
	var msg struct {
		Type string `json:"type"`
		Data struct {
			Completion struct {
				Display string `json:"display"`
			} `json:"completion"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(b, &msg))
	assert.Equal(t, TypeReport, msg.Type)
	assert.Equal(t, "0.00%", msg.Data.Completion.Display)
}
