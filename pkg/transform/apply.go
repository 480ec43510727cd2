package transform

import "bytes"

// ApplyEdits applies a sorted, validated slice of edits to content.
// Edits must be prepared with PrepareEdits before calling.
func ApplyEdits(content []byte, edits []Edit) []byte {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, e := range edits {
		delta += len(e.Text) - (e.End - e.Start)
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.Start])
		out.WriteString(e.Text)
		cursor = e.End
	}
	out.Write(content[cursor:])

	return out.Bytes()
}
