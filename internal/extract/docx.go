package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"io"
	"log"
	"strings"
)

// A .docx file is a zip archive whose main text lives in word/document.xml.
// Walking the XML tokens collects every text run regardless of nesting and
// emits one line per paragraph, matching how word processors lay out text.
func docxText(path string) string {
	archive, err := zip.OpenReader(path)
	if err != nil {
		log.Printf("Error opening docx %s: %v", path, err)
		return ""
	}
	defer archive.Close()

	for _, file := range archive.File {
		if file.Name == "word/document.xml" {
			text, err := documentText(file)
			if err != nil {
				log.Printf("Error reading docx %s: %v", path, err)
				return ""
			}
			return text
		}
	}
	log.Printf("No word/document.xml in %s", path)
	return ""
}

func documentText(file *zip.File) (string, error) {
	rc, err := file.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var b strings.Builder
	decoder := xml.NewDecoder(rc)
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				var run string
				if err := decoder.DecodeElement(&run, &t); err != nil {
					return "", err
				}
				b.WriteString(run)
			}
		case xml.EndElement:
			if t.Name.Local == "p" {
				b.WriteByte('\n')
			}
		}
	}
	return b.String(), nil
}
