package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Bulk loader: walks a directory of extracted text documents and uploads
// each to a running API instance.

func main() {
	dir := flag.String("dir", "./documents", "directory of .txt/.md files to upload")
	baseURL := flag.String("url", "http://localhost:3000/api", "API base URL")
	flag.Parse()

	color.Cyan("Starting bulk document ingestion from %s", *dir)

	var files []string
	err := filepath.WalkDir(*dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".txt" || ext == ".md" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		color.Red("Failed to scan directory: %v", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		color.Yellow("No .txt or .md files found in %s", *dir)
		return
	}

	client := &http.Client{Timeout: 120 * time.Second}
	uploaded := 0

	for _, path := range files {
		color.Yellow("\nUploading %s", path)

		status, body, err := uploadFile(client, *baseURL+"/documents/v1/upload", path)
		if err != nil {
			color.Red("Failed: %v", err)
			continue
		}
		if status >= 300 {
			color.Red("Status %d: %s", status, string(body))
			continue
		}

		color.Green("Status %d", status)
		prettyPrint(body)
		uploaded++
	}

	color.Cyan("\nDone: %d/%d documents uploaded", uploaded, len(files))
}

func uploadFile(client *http.Client, url, path string) (int, []byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, nil, err
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return 0, nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return 0, nil, err
	}
	if err := writer.Close(); err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequest(http.MethodPost, url, &buf)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func prettyPrint(raw []byte) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		fmt.Println(string(raw))
		return
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(string(raw))
		return
	}
	fmt.Println(string(b))
}
