// Package segmenter splits raw document text into bounded passages.
package segmenter

import "strings"

// MinPassageLen is the minimum passage size in bytes. Shorter paragraphs
// are too small to be useful retrieval units and are discarded.
const MinPassageLen = 30

// MaxPassageLen is the maximum passage size in bytes. Oversized paragraphs
// are re-segmented at sentence granularity.
const MaxPassageLen = 500

// Segment splits text into an ordered sequence of passages.
//
// Paragraphs are delimited by blank lines. A paragraph at or under
// MaxPassageLen becomes one passage verbatim; an oversized paragraph is
// re-segmented by greedily packing ". "-separated sentence units into a
// buffer that is flushed before it would exceed MaxPassageLen. A lone
// sentence longer than MaxPassageLen is kept whole, since no smaller
// split point exists below the sentence granularity.
//
// Segment is pure and deterministic; no state survives a call.
func Segment(text string) []string {
	var passages []string

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if len(para) < MinPassageLen {
			continue
		}
		if len(para) <= MaxPassageLen {
			passages = append(passages, para)
			continue
		}
		passages = append(passages, packSentences(para)...)
	}

	return passages
}

// packSentences re-segments an oversized paragraph by concatenating
// sentence units until adding the next one would exceed MaxPassageLen.
func packSentences(para string) []string {
	var passages []string
	var buf strings.Builder

	flush := func() {
		s := strings.TrimSpace(buf.String())
		if len(s) >= MinPassageLen {
			passages = append(passages, s)
		}
		buf.Reset()
	}

	for _, sent := range strings.Split(para, ". ") {
		sent = strings.TrimSpace(sent)
		if sent == "" {
			continue
		}
		// +2 accounts for the ". " separator that would be re-inserted.
		if buf.Len() > 0 && buf.Len()+len(sent)+2 > MaxPassageLen {
			flush()
		}
		if buf.Len() > 0 {
			buf.WriteString(". ")
		}
		buf.WriteString(sent)
	}
	flush()

	return passages
}
