package telegram

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

// downloadDocument fetches an uploaded file into a uniquely named temp file
// and returns its path plus the original extension. The caller removes the
// file when done.
func (b *Bot) downloadDocument(doc *tgbotapi.Document) (path, ext string, err error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: doc.FileID})
	if err != nil {
		return "", "", err
	}

	ext = strings.ToLower(filepath.Ext(doc.FileName))
	path = filepath.Join(os.TempDir(), uuid.NewString()+ext)

	resp, err := http.Get(file.Link(b.api.Token))
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	out, err := os.Create(path)
	if err != nil {
		return "", "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(path)
		return "", "", err
	}
	return path, ext, nil
}
