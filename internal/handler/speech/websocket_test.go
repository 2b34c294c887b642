package speech

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	speechmodel "github.com/eardo-app/eardo/backend/internal/model/speech"
	speechsvc "github.com/eardo-app/eardo/backend/internal/service/speech"
)

func dialTestServer(t *testing.T, svc SpeechService) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(newTestRouter(svc, time.Minute))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/speech/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var hello outgoingMessage
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, "connected", hello.Type)
	assert.NotEmpty(t, hello.ConnID)

	return conn
}

func TestWebSocketGenerate(t *testing.T) {
	svc := &fakeSpeechService{}
	conn := dialTestServer(t, svc)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":      "generate",
		"requestId": "req-1",
		"data":      map[string]any{"text": "你好", "voiceId": "Ethan"},
	}))

	var msg outgoingMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "audio", msg.Type)
	assert.Equal(t, "req-1", msg.RequestID)
	assert.Equal(t, "data:audio/wav;base64,UklGRg==", msg.Audio)

	calls := svc.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Ethan", calls[0].VoiceID)
}

func TestWebSocketProcessesRequestsInOrder(t *testing.T) {
	svc := &fakeSpeechService{generate: func(_ context.Context, req speechmodel.SynthesisRequest) (string, error) {
		return "data:audio/wav;base64," + req.Text, nil
	}}
	conn := dialTestServer(t, svc)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, conn.WriteJSON(map[string]any{
			"type": "generate", "requestId": id, "data": map[string]any{"text": id},
		}))
	}

	for _, id := range []string{"a", "b", "c"} {
		var msg outgoingMessage
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, id, msg.RequestID)
		assert.Equal(t, "data:audio/wav;base64,"+id, msg.Audio)
	}
}

func TestWebSocketReportsErrorKind(t *testing.T) {
	svc := &fakeSpeechService{generate: func(context.Context, speechmodel.SynthesisRequest) (string, error) {
		return "", &speechsvc.UpstreamBusinessError{Code: "InvalidApiKey", Message: "Invalid API-key provided."}
	}}
	conn := dialTestServer(t, svc)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": "generate", "requestId": "req-2", "data": map[string]any{"text": "hi"},
	}))

	var msg outgoingMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, "req-2", msg.RequestID)
	assert.Equal(t, speechsvc.KindUpstreamBusiness, msg.Kind)
	assert.Equal(t, "speech synthesis failed", msg.Message)
}

func TestWebSocketInvalidMessages(t *testing.T) {
	svc := &fakeSpeechService{}
	conn := dialTestServer(t, svc)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":`)))
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "dance", "requestId": "x"}))
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "generate", "requestId": "y", "data": map[string]any{"text": " "}}))
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "ping"}))

	expected := []outgoingMessage{
		{Type: "error", Kind: kindInvalidMessage, Message: "invalid message"},
		{Type: "error", RequestID: "x", Kind: kindInvalidMessage, Message: "unsupported message type: dance"},
		{Type: "error", RequestID: "y", Kind: kindInvalidMessage, Message: "text is required"},
		{Type: "pong"},
	}
	for _, want := range expected {
		var got outgoingMessage
		require.NoError(t, conn.ReadJSON(&got))
		got.Timestamp = 0
		assert.Equal(t, want, got)
	}

	assert.Empty(t, svc.calls())
}

func TestWebSocketCloseCancelsInFlightSynthesis(t *testing.T) {
	started := make(chan struct{})
	cancelled := make(chan error, 1)
	svc := &fakeSpeechService{generate: func(ctx context.Context, _ speechmodel.SynthesisRequest) (string, error) {
		close(started)
		<-ctx.Done()
		cancelled <- ctx.Err()
		return "", &speechsvc.TransportError{Cause: ctx.Err()}
	}}
	conn := dialTestServer(t, svc)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": "generate", "requestId": "slow", "data": map[string]any{"text": "hi"},
	}))

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("synthesis did not start")
	}

	require.NoError(t, conn.Close())

	select {
	case err := <-cancelled:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("in-flight synthesis was not cancelled")
	}
}
