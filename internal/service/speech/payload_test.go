package speech

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	speechmodel "github.com/eardo-app/eardo/backend/internal/model/speech"
)

func TestBuildPayloadMapsTextAndVoice(t *testing.T) {
	payload := BuildPayload("", speechmodel.SynthesisRequest{Text: "你好", VoiceID: "Cherry"})

	assert.Equal(t, DefaultModel, payload.Model)
	assert.Equal(t, "你好", payload.Input.Text)
	assert.Equal(t, "Cherry", payload.Input.Voice)
	assert.Equal(t, languageTypeAuto, payload.Input.LanguageType)
}

func TestBuildPayloadUsesConfiguredModel(t *testing.T) {
	payload := BuildPayload("qwen-tts", speechmodel.SynthesisRequest{Text: "hi", VoiceID: "Ethan"})
	assert.Equal(t, "qwen-tts", payload.Model)
}

func TestBuildPayloadDropsProsodyFields(t *testing.T) {
	cases := []speechmodel.SynthesisRequest{
		{Text: "你好", VoiceID: "Cherry"},
		{Text: "hello", VoiceID: "Ethan", Pitch: 1.5, Speed: 2, Emotion: "happy"},
		{Text: "", VoiceID: "unknown", Pitch: -3, Speed: 0.5, Emotion: "sad"},
	}

	for _, req := range cases {
		raw, err := json.Marshal(BuildPayload("", req))
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(raw, &decoded))

		assert.ElementsMatch(t, []string{"model", "input"}, keysOf(decoded))

		input, ok := decoded["input"].(map[string]any)
		require.True(t, ok)
		assert.ElementsMatch(t, []string{"text", "voice", "language_type"}, keysOf(input))
		assert.Equal(t, req.Text, input["text"])
		assert.Equal(t, req.VoiceID, input["voice"])
	}
}

func keysOf(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
