package extract

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"io"
	"regexp"
	"strings"
)

// PDF extraction works without a structural parser. It walks three tiers:
//
//  1. text-show operators ((...) Tj, [(...)] TJ) inside BT...ET blocks,
//     scanning both the raw bytes and inflated FlateDecode streams
//  2. readable ASCII runs that are not PDF syntax tokens
//  3. an ultra-permissive scan for adjacent alphabetic runs
//
// Each tier only runs when the previous one recovered nothing useful.

var (
	pdfStreamRe  = regexp.MustCompile(`(?s)stream\r?\n(.*?)endstream`)
	pdfBTBlockRe = regexp.MustCompile(`(?s)BT(.*?)ET`)
	pdfTjRe      = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)\s*Tj`)
	pdfTJArrayRe = regexp.MustCompile(`\[((?:[^\[\]\\]|\\.)*)\]\s*TJ`)
	pdfParenRe   = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)`)
	pdfASCIIRe   = regexp.MustCompile(`[\x20-\x7e]{10,}`)
	pdfUltraRe   = regexp.MustCompile(`[A-Za-z]{2,}(?:[ \t]+[A-Za-z]{2,})+`)
)

// ExtractPDF recovers best-effort text from raw PDF bytes.
func ExtractPDF(data []byte) (string, error) {
	buffers := [][]byte{data}
	buffers = append(buffers, inflateStreams(data)...)

	if text := scanTextOperators(buffers); len(text) >= minRecoverable {
		return text, nil
	}
	if text := scanReadableRuns(data); len(text) >= minRecoverable {
		return text, nil
	}
	if text := scanUltra(data); len(text) >= minRecoverable {
		return text, nil
	}
	return "", &ExtractionError{Format: "pdf", Reason: "no recoverable text"}
}

// inflateStreams decodes stream...endstream blocks declared /FlateDecode.
// Both zlib-wrapped and raw deflate payloads occur in the wild.
func inflateStreams(data []byte) [][]byte {
	var out [][]byte
	matches := pdfStreamRe.FindAllSubmatchIndex(data, -1)
	for _, m := range matches {
		body := data[m[2]:m[3]]
		dictStart := m[0] - 512
		if dictStart < 0 {
			dictStart = 0
		}
		dict := data[dictStart:m[0]]
		if !bytes.Contains(dict, []byte("/FlateDecode")) {
			out = append(out, body)
			continue
		}
		if decoded := inflate(body); len(decoded) > 0 {
			out = append(out, decoded)
		}
	}
	return out
}

func inflate(body []byte) []byte {
	if zr, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
		decoded, err := io.ReadAll(io.LimitReader(zr, 8<<20))
		zr.Close()
		if err == nil || len(decoded) > 0 {
			return decoded
		}
	}
	fr := flate.NewReader(bytes.NewReader(body))
	decoded, err := io.ReadAll(io.LimitReader(fr, 8<<20))
	fr.Close()
	if err != nil && len(decoded) == 0 {
		return nil
	}
	return decoded
}

func scanTextOperators(buffers [][]byte) string {
	var parts []string
	for _, buf := range buffers {
		for _, block := range pdfBTBlockRe.FindAllSubmatch(buf, -1) {
			var blockParts []string
			body := block[1]
			for _, m := range pdfTjRe.FindAllSubmatch(body, -1) {
				if s := decodePDFString(string(m[1])); s != "" {
					blockParts = append(blockParts, s)
				}
			}
			for _, m := range pdfTJArrayRe.FindAllSubmatch(body, -1) {
				var segs []string
				for _, seg := range pdfParenRe.FindAllSubmatch(m[1], -1) {
					if s := decodePDFString(string(seg[1])); s != "" {
						segs = append(segs, s)
					}
				}
				if joined := strings.Join(segs, ""); joined != "" {
					blockParts = append(blockParts, joined)
				}
			}
			if len(blockParts) > 0 {
				parts = append(parts, strings.Join(blockParts, " "))
			}
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func scanReadableRuns(data []byte) string {
	var parts []string
	for _, m := range pdfASCIIRe.FindAll(data, -1) {
		run := strings.TrimSpace(string(m))
		if isPDFSyntaxToken(run) || !mostlyLetters(run) {
			continue
		}
		parts = append(parts, run)
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func scanUltra(data []byte) string {
	parts := pdfUltraRe.FindAll(data, -1)
	joined := make([]string, 0, len(parts))
	for _, p := range parts {
		joined = append(joined, string(p))
	}
	return strings.TrimSpace(strings.Join(joined, " "))
}

var pdfSyntaxKeywords = []string{
	"obj", "endobj", "stream", "endstream", "xref", "startxref", "trailer",
	"FlateDecode", "MediaBox", "FontDescriptor", "XObject", "Encoding",
	"Metadata", "StructTreeRoot",
}

func isPDFSyntaxToken(run string) bool {
	if strings.HasPrefix(run, "/") || strings.HasPrefix(run, "<<") || strings.HasPrefix(run, "%") {
		return true
	}
	for _, kw := range pdfSyntaxKeywords {
		if strings.Contains(run, kw) {
			return true
		}
	}
	return false
}

func mostlyLetters(run string) bool {
	letters := 0
	for _, r := range run {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			letters++
		}
	}
	return letters*2 >= len(run)
}

// decodePDFString resolves the escape sequences allowed in PDF literal
// strings. Octal escapes map to a space when non-printable.
func decodePDFString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			break
		}
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '(', ')', '\\':
			b.WriteByte(s[i])
		case '0', '1', '2', '3', '4', '5', '6', '7':
			val := 0
			digits := 0
			for ; i < len(s) && digits < 3 && s[i] >= '0' && s[i] <= '7'; i++ {
				val = val*8 + int(s[i]-'0')
				digits++
			}
			i--
			if val >= 0x20 && val < 0x7f {
				b.WriteByte(byte(val))
			} else {
				b.WriteByte(' ')
			}
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
