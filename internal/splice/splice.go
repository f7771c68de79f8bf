// Package splice rewrites the marker-bounded region of a document.
package splice

import (
	"bytes"
	"fmt"
)

// Replace substitutes everything strictly between the end of the
// start marker and the beginning of the end marker with content. Both
// markers and all bytes outside them are preserved verbatim. If
// either marker is missing the document is returned unmodified along
// with the error.
func Replace(doc []byte, start, end string, content []byte) ([]byte, error) {
	startIdx := bytes.Index(doc, []byte(start))
	if startIdx < 0 {
		return doc, fmt.Errorf("start marker %q not found", start)
	}
	innerStart := startIdx + len(start)

	endIdx := bytes.Index(doc[innerStart:], []byte(end))
	if endIdx < 0 {
		return doc, fmt.Errorf("end marker %q not found", end)
	}
	endIdx += innerStart

	out := make([]byte, 0, len(doc)-(endIdx-innerStart)+len(content))
	out = append(out, doc[:innerStart]...)
	out = append(out, content...)
	out = append(out, doc[endIdx:]...)
	return out, nil
}
