package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"regexp"
	"sort"
	"strings"
)

var (
	docxWTRe      = regexp.MustCompile(`(?s)<w:t[^>]*>(.*?)</w:t>`)
	docxTextboxRe = regexp.MustCompile(`(?s)<v:textbox[^>]*>(.*?)</v:textbox>`)
	docxTagRe     = regexp.MustCompile(`<[^>]+>`)
)

// ExtractDOCX recovers text from an OOXML container. The primary path
// walks the zip parts in document order; if the container is unreadable
// it degrades to raw-byte scans.
func ExtractDOCX(data []byte) (string, error) {
	if text := extractDocxParts(data); len(text) >= minRecoverable {
		return text, nil
	}
	if text := scanDocxRaw(data); len(text) >= minRecoverable {
		return text, nil
	}
	if text := scanReadableRuns(data); len(text) >= minRecoverable {
		return text, nil
	}
	return "", &ExtractionError{Format: "docx", Reason: "no recoverable text"}
}

// extractDocxParts reads word/document.xml plus headers, footers and notes,
// document.xml first, preserving paragraph breaks as newlines.
func extractDocxParts(data []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	parts := map[string]*zip.File{}
	var auxNames []string
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			parts[name] = f
			continue
		}
		if strings.HasPrefix(name, "word/header") ||
			strings.HasPrefix(name, "word/footer") ||
			name == "word/footnotes.xml" ||
			name == "word/endnotes.xml" {
			parts[name] = f
			auxNames = append(auxNames, name)
		}
	}
	sort.Strings(auxNames)

	ordered := make([]string, 0, len(parts))
	if _, ok := parts["word/document.xml"]; ok {
		ordered = append(ordered, "word/document.xml")
	}
	ordered = append(ordered, auxNames...)

	var out []string
	for _, name := range ordered {
		raw, err := readZipFile(parts[name])
		if err != nil {
			continue
		}
		if text := paragraphText(raw); text != "" {
			out = append(out, text)
		}
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// paragraphText collects <w:t> character data, emitting a newline at each
// closing <w:p>. The xml decoder resolves the standard entities.
func paragraphText(raw []byte) string {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	var buf strings.Builder
	inT := 0
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ""
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inT++
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				if inT > 0 {
					inT--
				}
			case "p":
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			case "tab":
				buf.WriteString("\t")
			}
		case xml.CharData:
			if inT > 0 {
				buf.Write(t)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// scanDocxRaw is the fallback for broken containers: pull <w:t> and
// <v:textbox> content straight out of the bytes.
func scanDocxRaw(data []byte) string {
	var parts []string
	for _, m := range docxWTRe.FindAllSubmatch(data, -1) {
		if s := decodeXMLEntities(string(m[1])); strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}
	for _, m := range docxTextboxRe.FindAllSubmatch(data, -1) {
		inner := docxTagRe.ReplaceAllString(string(m[1]), " ")
		if s := strings.TrimSpace(decodeXMLEntities(inner)); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

var xmlEntityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

func decodeXMLEntities(s string) string {
	return xmlEntityReplacer.Replace(s)
}
