package speech

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeResponse(t *testing.T, body string) *ProviderResponse {
	t.Helper()

	var resp ProviderResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return &resp
}

func TestProviderResponseAudioURL(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
		ok   bool
	}{
		{name: "present", body: `{"output":{"audio":{"url":"https://x/a.wav"}}}`, want: "https://x/a.wav", ok: true},
		{name: "no output", body: `{"request_id":"r1"}`},
		{name: "null output", body: `{"output":null}`},
		{name: "no audio", body: `{"output":{}}`},
		{name: "no url", body: `{"output":{"audio":{}}}`},
		{name: "empty url", body: `{"output":{"audio":{"url":""}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := decodeResponse(t, tt.body).AudioURL().Get()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProviderResponseErr(t *testing.T) {
	resp := decodeResponse(t, `{"code":"InvalidParameter","message":"bad voice","request_id":"r1"}`)

	err := resp.Err()
	require.Error(t, err)

	var bizErr *UpstreamBusinessError
	require.True(t, errors.As(err, &bizErr))
	assert.Equal(t, "InvalidParameter", bizErr.Code)
	assert.Equal(t, "bad voice", bizErr.Message)
	assert.Equal(t, "r1", bizErr.RequestID)
}

func TestProviderResponseErrIgnoresEmptyCode(t *testing.T) {
	assert.NoError(t, decodeResponse(t, `{"code":"","output":{"audio":{"url":"u"}}}`).Err())
	assert.NoError(t, decodeResponse(t, `{"output":{"audio":{"url":"u"}}}`).Err())

	var nilResp *ProviderResponse
	assert.NoError(t, nilResp.Err())
	assert.True(t, nilResp.AudioURL().IsAbsent())
}
