package resume

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	pdf "github.com/ledongthuc/pdf"
)

// ParseDocumentText extracts plain text from supported document formats.
// Supports: .pdf, .docx and .txt
func ParseDocumentText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return extractTextFromPDF(data)
	case ".docx", ".doc":
		return extractTextFromDocx(data)
	case ".txt":
		return extractPlainText(data)
	default:
		return "", errors.New("unsupported file format: only pdf, docx and txt are allowed")
	}
}

// ExtractText — best-effort обёртка вокруг ParseDocumentText: любой сбой
// парсинга деградирует в пустой текст. Движок матчинга никогда не видит
// ошибок парсера, «нет текста» для него — валидный ответ с нулевым покрытием.
func ExtractText(filename string, data []byte) string {
	text, err := ParseDocumentText(filename, data)
	if err != nil {
		return ""
	}
	return text
}

func extractTextFromPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	r, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return "", err
	}
	return collapseWhitespace(buf.String()), nil
}

func extractTextFromDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", err
			}
			defer rc.Close()
			docXML, err = io.ReadAll(rc)
			if err != nil {
				return "", err
			}
			break
		}
	}
	if len(docXML) == 0 {
		return "", errors.New("no document.xml found in docx")
	}
	xml := string(docXML)
	// Paragraph boundaries become newlines, then all tags are stripped.
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	reTags := regexp.MustCompile(`<[^>]+>`)
	txt := reTags.ReplaceAllString(xml, " ")
	return collapseWhitespace(txt), nil
}

func extractPlainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		data = bytes.ToValidUTF8(data, nil)
	}
	return collapseWhitespace(string(data)), nil
}

func collapseWhitespace(s string) string {
	re := regexp.MustCompile(`[ \t\r\f\v]+`)
	s = re.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " ", " ")
	// Newlines survive normalization here; full flattening happens in nlp.Normalize.
	reN := regexp.MustCompile(`\s*\n\s*`)
	s = reN.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
