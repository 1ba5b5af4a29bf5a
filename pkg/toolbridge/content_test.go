package toolbridge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallToolResult_MarshalText(t *testing.T) {
	result := NewTextResult("hello")

	raw, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	content := decoded["content"].([]interface{})
	require.Len(t, content, 1)
	block := content[0].(map[string]interface{})
	assert.Equal(t, "text", block["type"])
	assert.Equal(t, "hello", block["text"])

	// isError omitted when false.
	_, hasIsError := decoded["isError"]
	assert.False(t, hasIsError)
}

func TestCallToolResult_MarshalErrorResult(t *testing.T) {
	raw, err := json.Marshal(NewErrorResult("it broke"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"isError":true`)
}

func TestCallToolResult_RoundTripAllBlocks(t *testing.T) {
	original := &CallToolResult{
		Content: []ContentBlock{
			TextContent{Text: "some text"},
			ImageContent{Data: "aGVsbG8=", MimeType: "image/png"},
			EmbeddedResource{Resource: ResourceContents{
				URI:      "file:///tmp/report.txt",
				MimeType: "text/plain",
				Text:     "report body",
			}},
			ResourceLink{
				URI:         "https://example.com/doc",
				Name:        "doc",
				Description: "external doc",
				MimeType:    "text/html",
			},
		},
		StructuredContent: map[string]interface{}{"count": float64(3)},
	}

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded CallToolResult
	require.NoError(t, json.Unmarshal(raw, &decoded))

	require.Len(t, decoded.Content, 4)
	assert.Equal(t, original.Content[0], decoded.Content[0])
	assert.Equal(t, original.Content[1], decoded.Content[1])
	assert.Equal(t, original.Content[2], decoded.Content[2])
	assert.Equal(t, original.Content[3], decoded.Content[3])
	assert.Equal(t, original.StructuredContent, decoded.StructuredContent)
	assert.False(t, decoded.IsError)
}

func TestCallToolResult_UnmarshalUnknownBlock(t *testing.T) {
	var decoded CallToolResult
	err := json.Unmarshal([]byte(`{"content":[{"type":"video","data":"x"}]}`), &decoded)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown content block type")
}

func TestContentBlock_TypeTagOnWire(t *testing.T) {
	tests := []struct {
		name  string
		block ContentBlock
		tag   string
	}{
		{name: "text", block: TextContent{Text: "t"}, tag: "text"},
		{name: "image", block: ImageContent{Data: "d", MimeType: "image/png"}, tag: "image"},
		{name: "resource", block: EmbeddedResource{Resource: ResourceContents{URI: "u"}}, tag: "resource"},
		{name: "resource link", block: ResourceLink{URI: "u"}, tag: "resource_link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.block)
			require.NoError(t, err)

			var m map[string]interface{}
			require.NoError(t, json.Unmarshal(raw, &m))
			assert.Equal(t, tt.tag, m["type"])
		})
	}
}
