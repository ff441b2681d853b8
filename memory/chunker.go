package memory

// span is a half-open byte range [Start, End) into a document's content.
type span struct {
	Start int
	End   int
}

// chunkSpans splits a text of the given length into fixed windows of size
// bytes with the given overlap between consecutive windows.
//
// The windows cover [0, length): every window except possibly the last has
// exactly size bytes, consecutive windows overlap by exactly overlap bytes,
// and the final window always ends at length. A text shorter than size
// yields a single window.
func chunkSpans(length, size, overlap int) []span {
	if length <= 0 {
		return nil
	}

	step := size - overlap
	var spans []span
	for start := 0; start < length; start += step {
		end := start + size
		if end > length {
			end = length
		}
		spans = append(spans, span{Start: start, End: end})
		// The window reaching the end is the last one. Without this a
		// nonzero overlap would keep producing trailing windows forever.
		if end == length {
			break
		}
	}
	return spans
}
