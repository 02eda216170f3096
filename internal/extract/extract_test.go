package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestExtractPDF_TextShowOperators(t *testing.T) {
	pdf := []byte("%PDF-1.4\n1 0 obj\n<< /Type /Page >>\nBT (Hello World) Tj ET\nBT [(from) (a) (contract)] TJ ET\ntrailer\n")
	text, err := ExtractPDF(pdf)
	if err != nil {
		t.Fatalf("extract pdf: %v", err)
	}
	if !strings.Contains(text, "Hello World") {
		t.Fatalf("expected Hello World in output, got %q", text)
	}
	if !strings.Contains(text, "fromacontract") && !strings.Contains(text, "from") {
		t.Fatalf("expected TJ array content, got %q", text)
	}
}

func TestExtractPDF_EscapedParens(t *testing.T) {
	pdf := []byte("BT (Section 1 \\(Definitions\\)) Tj ET")
	text, err := ExtractPDF(pdf)
	if err != nil {
		t.Fatalf("extract pdf: %v", err)
	}
	if !strings.Contains(text, "Section 1 (Definitions)") {
		t.Fatalf("escapes not decoded: %q", text)
	}
}

func TestExtractPDF_ReadableRunFallback(t *testing.T) {
	raw := []byte("%PDF-1.4\n\x00\x01\x02\x00")
	raw = append(raw, []byte("\x00The parties agree to the following terms and conditions\x00")...)
	text, err := ExtractPDF(raw)
	if err != nil {
		t.Fatalf("extract pdf: %v", err)
	}
	if !strings.Contains(text, "parties agree") {
		t.Fatalf("fallback run scan missed content: %q", text)
	}
}

func TestExtractPDF_NoText(t *testing.T) {
	_, err := ExtractPDF([]byte{0x25, 0x50, 0x44, 0x46, 0x00, 0x01})
	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractDOCX_Paragraphs(t *testing.T) {
	doc := `<?xml version="1.0"?><w:document xmlns:w="x"><w:body>` +
		`<w:p><w:r><w:t>Mutual Non-Disclosure Agreement</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>This agreement is entered into by the parties.</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	text, err := ExtractDOCX(buildDocx(t, doc))
	if err != nil {
		t.Fatalf("extract docx: %v", err)
	}
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected paragraph breaks preserved, got %q", text)
	}
	if lines[0] != "Mutual Non-Disclosure Agreement" {
		t.Fatalf("unexpected first paragraph: %q", lines[0])
	}
}

func TestExtractDOCX_EntityDecode(t *testing.T) {
	doc := `<w:document xmlns:w="x"><w:body><w:p><w:t>Smith &amp; Jones agree on &quot;Confidential Information&quot; terms here</w:t></w:p></w:body></w:document>`
	text, err := ExtractDOCX(buildDocx(t, doc))
	if err != nil {
		t.Fatalf("extract docx: %v", err)
	}
	if !strings.Contains(text, `Smith & Jones agree on "Confidential Information"`) {
		t.Fatalf("entities not decoded: %q", text)
	}
}

func TestExtractDOCX_RawScanOnBrokenZip(t *testing.T) {
	raw := []byte("garbage<w:t>The receiving party shall keep all disclosed material confidential</w:t>garbage")
	text, err := ExtractDOCX(raw)
	if err != nil {
		t.Fatalf("extract docx raw: %v", err)
	}
	if !strings.Contains(text, "receiving party shall keep") {
		t.Fatalf("raw scan missed content: %q", text)
	}
}

func TestCleanText_LetterSpacedCollapse(t *testing.T) {
	got := CleanText("This A g r e e m e n t covers the term 2 0 2 6 period")
	if !strings.Contains(got, "Agreement") {
		t.Fatalf("letter-spaced run not collapsed: %q", got)
	}
	if !strings.Contains(got, "2026") {
		t.Fatalf("digit-spaced run not collapsed: %q", got)
	}
}

func TestCleanText_StripsMarkupAndBlankLines(t *testing.T) {
	got := CleanText("<w:body>Hello</w:body>\n\n\n\nWorld  again")
	if strings.Contains(got, "<") {
		t.Fatalf("markup survived cleaning: %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("blank lines not collapsed: %q", got)
	}
	if strings.Contains(got, "  ") {
		t.Fatalf("double spaces not collapsed: %q", got)
	}
}

func TestValidateText_Boundary(t *testing.T) {
	// 29 characters fails even with ten words.
	short := "ab cd ef gh ij kl mn op qr st"
	if len(short) != 29 {
		t.Fatalf("fixture length %d, want 29", len(short))
	}
	if err := ValidateText(short); err == nil {
		t.Fatal("expected 29-char text to fail validation")
	}

	// 30 alphanumeric characters with >=10 words passes.
	ok := "ab cd ef gh ij kl mn op qr stu"
	if len(ok) != 30 {
		t.Fatalf("fixture length %d, want 30", len(ok))
	}
	if err := ValidateText(ok); err != nil {
		t.Fatalf("expected 30-char text to pass, got %v", err)
	}
}

func TestValidateText_RejectsDegenerate(t *testing.T) {
	if err := ValidateText(strings.Repeat("ab ", 30)); err == nil {
		t.Fatal("expected repeated-byte garbage to fail distinct-character rule")
	}
	if err := ValidateText(""); err == nil {
		t.Fatal("expected empty text to fail")
	}
	var vErr *ValidationError
	if err := ValidateText("x"); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestFromContent_PDFPrefix(t *testing.T) {
	pdf := []byte("BT (This Agreement is made between Acme Corporation and Beta Industries effective today) Tj ET")
	content := "PDF_FILE_BASE64:" + base64.StdEncoding.EncodeToString(pdf)
	res, err := FromContent(context.Background(), content)
	if err != nil {
		t.Fatalf("from content: %v", err)
	}
	if res.Format != "pdf" {
		t.Fatalf("format = %q, want pdf", res.Format)
	}
	if !strings.Contains(res.Text, "Acme Corporation") {
		t.Fatalf("missing extracted text: %q", res.Text)
	}
	if res.WordCount < 10 {
		t.Fatalf("word count = %d", res.WordCount)
	}
}

func TestFromContent_InvalidBase64(t *testing.T) {
	_, err := FromContent(context.Background(), "PDF_FILE_BASE64:!!!not-base64!!!")
	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
}

func TestFromContent_RawTextPassthrough(t *testing.T) {
	res, err := FromContent(context.Background(), "This consulting agreement covers services rendered by the consultant to the client company.")
	if err != nil {
		t.Fatalf("from content: %v", err)
	}
	if res.Format != "text" {
		t.Fatalf("format = %q, want text", res.Format)
	}
}
