// Package extract pulls plain text out of uploaded documents. Extraction
// is best-effort: every failure yields an empty string, which the caller
// reports to the user as an unreadable document. Nothing here panics or
// returns an error across the package boundary.
package extract

import (
	"bytes"
	"log"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Text extracts the text of the file at path, choosing a reader by
// extension. Unknown extensions fall back to a plain-text read.
func Text(path, ext string) string {
	switch strings.ToLower(ext) {
	case ".pdf":
		return pdfText(path)
	case ".docx":
		return docxText(path)
	default:
		return plainText(path)
	}
}

func pdfText(path string) (text string) {
	// The pdf parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered while reading pdf %s: %v", path, r)
			text = ""
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		log.Printf("Error opening pdf %s: %v", path, err)
		return ""
	}
	defer f.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		log.Printf("Error reading pdf %s: %v", path, err)
		return ""
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		log.Printf("Error reading pdf %s: %v", path, err)
		return ""
	}
	return buf.String()
}

func plainText(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading file %s: %v", path, err)
		return ""
	}
	// Best-effort decoding: drop invalid bytes (Latin-1 and friends) so the
	// text stays valid UTF-8 all the way to the chat transport.
	return strings.ToValidUTF8(string(data), "")
}
