package toolbridge

import (
	"encoding/json"
	"fmt"
)

// Content block type tags.
const (
	ContentTypeText             = "text"
	ContentTypeImage            = "image"
	ContentTypeEmbeddedResource = "resource"
	ContentTypeResourceLink     = "resource_link"
)

// ContentBlock is one element of a tool result's content list. It is a
// sealed tagged union over text, image, embedded-resource, and
// resource-link blocks, discriminated by a "type" field on the wire.
type ContentBlock interface {
	contentType() string
}

// TextContent is a plain text block.
type TextContent struct {
	Text string `json:"text"`
}

func (TextContent) contentType() string { return ContentTypeText }

// ImageContent is a base64-encoded image block.
type ImageContent struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
}

func (ImageContent) contentType() string { return ContentTypeImage }

// ResourceContents is the payload of an embedded resource. Exactly one of
// Text and Blob is normally set; Blob is base64-encoded.
type ResourceContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
	Blob     string `json:"blob,omitempty"`
}

// EmbeddedResource is a resource carried inline in the result.
type EmbeddedResource struct {
	Resource ResourceContents `json:"resource"`
}

func (EmbeddedResource) contentType() string { return ContentTypeEmbeddedResource }

// ResourceLink references a resource by URI without embedding it.
type ResourceLink struct {
	URI         string `json:"uri"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

func (ResourceLink) contentType() string { return ContentTypeResourceLink }

// CallToolResult is the outcome of a tool invocation. IsError marks a
// failure the tool itself reported, as opposed to a transport-level fault
// (those surface as an error from ExecuteTool, never as a result).
type CallToolResult struct {
	Content           []ContentBlock         `json:"content"`
	StructuredContent map[string]interface{} `json:"structuredContent,omitempty"`
	IsError           bool                   `json:"isError,omitempty"`
}

// NewTextResult builds a result with a single text block.
func NewTextResult(text string) *CallToolResult {
	return &CallToolResult{Content: []ContentBlock{TextContent{Text: text}}}
}

// NewErrorResult builds a tool-reported failure with a single text block.
func NewErrorResult(text string) *CallToolResult {
	return &CallToolResult{
		Content: []ContentBlock{TextContent{Text: text}},
		IsError: true,
	}
}

func (t TextContent) MarshalJSON() ([]byte, error) {
	return marshalTagged(t.contentType(), struct {
		Text string `json:"text"`
	}{t.Text})
}

func (i ImageContent) MarshalJSON() ([]byte, error) {
	return marshalTagged(i.contentType(), struct {
		Data     string `json:"data"`
		MimeType string `json:"mimeType"`
	}{i.Data, i.MimeType})
}

func (e EmbeddedResource) MarshalJSON() ([]byte, error) {
	return marshalTagged(e.contentType(), struct {
		Resource ResourceContents `json:"resource"`
	}{e.Resource})
}

func (l ResourceLink) MarshalJSON() ([]byte, error) {
	return marshalTagged(l.contentType(), struct {
		URI         string `json:"uri"`
		Name        string `json:"name,omitempty"`
		Description string `json:"description,omitempty"`
		MimeType    string `json:"mimeType,omitempty"`
	}{l.URI, l.Name, l.Description, l.MimeType})
}

// marshalTagged injects the "type" discriminant alongside the block body.
func marshalTagged(tag string, body interface{}) ([]byte, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	m := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	m["type"] = json.RawMessage(fmt.Sprintf("%q", tag))
	return json.Marshal(m)
}

func (r *CallToolResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		Content           []json.RawMessage      `json:"content"`
		StructuredContent map[string]interface{} `json:"structuredContent"`
		IsError           bool                   `json:"isError"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.StructuredContent = raw.StructuredContent
	r.IsError = raw.IsError
	r.Content = nil

	for _, item := range raw.Content {
		block, err := unmarshalContentBlock(item)
		if err != nil {
			return err
		}
		r.Content = append(r.Content, block)
	}
	return nil
}

func unmarshalContentBlock(data []byte) (ContentBlock, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, err
	}

	switch tag.Type {
	case ContentTypeText:
		var b TextContent
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return b, nil
	case ContentTypeImage:
		var b ImageContent
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return b, nil
	case ContentTypeEmbeddedResource:
		var b EmbeddedResource
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return b, nil
	case ContentTypeResourceLink:
		var b ResourceLink
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown content block type %q", tag.Type)
	}
}
