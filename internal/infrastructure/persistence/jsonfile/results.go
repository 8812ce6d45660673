package jsonfile

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"outreach/internal/domain/outreach"
)

const DefaultResultsPath = "generated_emails.json"

var separator = strings.Repeat("=", 80)

// DigestPath returns the text digest path that accompanies a results file.
func DigestPath(resultsPath string) string {
	return strings.TrimSuffix(resultsPath, filepath.Ext(resultsPath)) + ".txt"
}

// Save writes results as indented JSON to path and a text digest next to it.
// It returns the digest path.
func Save(path string, results []outreach.GeneratedEmail) (string, error) {
	if err := WriteResults(path, results); err != nil {
		return "", err
	}

	digest := DigestPath(path)
	if digest == path {
		digest = path + ".txt"
	}
	if err := WriteDigest(digest, results); err != nil {
		return "", err
	}
	return digest, nil
}

func WriteResults(path string, results []outreach.GeneratedEmail) error {
	if results == nil {
		results = []outreach.GeneratedEmail{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	if err := os.WriteFile(path, bytes.TrimRight(buf.Bytes(), "\n"), 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

func ReadResults(path string) ([]outreach.GeneratedEmail, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}

	var results []outreach.GeneratedEmail
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("cannot parse JSON: %w", err)
	}
	return results, nil
}

func WriteDigest(path string, results []outreach.GeneratedEmail) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create digest: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close digest: %w", cerr)
		}
	}()

	w := bufio.NewWriter(f)
	for _, r := range results {
		if err := WriteDigestBlock(w, r); err != nil {
			return fmt.Errorf("write digest: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write digest: %w", err)
	}
	return nil
}

// WriteDigestBlock writes one human-readable record followed by the separator rule.
func WriteDigestBlock(w io.Writer, r outreach.GeneratedEmail) error {
	_, err := fmt.Fprintf(w, "TO: %s <%s>\nSUBJECT: %s\n\n%s\n\n%s\n\n",
		r.Contact, r.EmailAddress, r.Subject, r.Body, separator)
	return err
}
