package fix

import "bytes"

// ApplyEdits applies a sorted, validated slice of edits to content in one
// forward pass. Every edit is positioned against the original content, which
// gives the same result as applying them one at a time from the highest
// offset down. Edits must be prepared with PrepareEdits before calling.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, e := range edits {
		delta += len(e.NewText) - e.Len()
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.Write(content[cursor:])

	return out.Bytes()
}

// Apply prepares edits against content and applies them.
func Apply(content string, edits []TextEdit) (string, error) {
	prepared, err := PrepareEdits(edits, len(content))
	if err != nil {
		return "", err
	}
	return string(ApplyEdits([]byte(content), prepared)), nil
}
