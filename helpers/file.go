package helpers

import (
	"crypto/rand"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// DownloadImage fetches a remote image into ./public/uploads and returns the
// local path, used when a platform API needs a file instead of a URL.
func DownloadImage(imageUrl string) (string, error) {
	filenameExt := getFileExtension(imageUrl)
	randomId, err := generateRandomID(16)
	if err != nil {
		return "", err
	}
	// create folder if not exists
	if _, err := os.Stat("./public/uploads"); os.IsNotExist(err) {
		err := os.MkdirAll("./public/uploads", os.ModePerm)
		if err != nil {
			return "", err
		}
	}
	filename := randomId + filenameExt
	localPath := filepath.Join("./public/uploads", filename)

	response, err := http.Get(imageUrl)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	file, err := os.Create(localPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	_, err = io.Copy(file, response.Body)
	if err != nil {
		return "", err
	}

	return "./" + localPath, nil
}

func generateRandomID(length int) (string, error) {
	randomBytes := make([]byte, length)
	_, err := io.ReadFull(rand.Reader, randomBytes)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", randomBytes[10:]), nil
}

func getFileExtension(url string) string {
	params := strings.Split(url, "?")
	parts := strings.Split(params[0], "/")
	filename := parts[len(parts)-1]
	return filepath.Ext(filename)
}
