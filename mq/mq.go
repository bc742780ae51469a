package mq

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/quic-go/quic-go/http3"
)

var index_url = os.Getenv("INDEX_URL")

// Index is the event pushed to the external search indexer whenever an
// admin mutates an entity.
type Index struct {
	EntityType string `json:"entity_type"`
	Action     string `json:"action"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id"`
	ItemType   string `json:"item_type"`
}

// Emit sends the event to the QUIC index server. Failures after the retry
// budget are logged and dropped; indexing lag is acceptable, blocking an
// admin action is not.
func Emit(eventName string, content Index) error {
	if index_url == "" {
		return nil
	}

	jsonData, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("error marshalling JSON: %v", err)
	}

	if err := QUIClient(index_url, jsonData); err != nil {
		log.Printf("mq: %s emit failed: %v", eventName, err)
		return fmt.Errorf("error sending data to QUIC server: %v", err)
	}

	return nil
}

func QUIClient(url string, jsonData []byte) error {
	client := &http.Client{
		Transport: &http3.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // Skip verification for self-signed cert
		},
	}

	// Retry logic: 3 attempts with exponential backoff
	maxRetries := 3
	baseDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
		if err != nil {
			return fmt.Errorf("error creating request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("Attempt %d: request failed: %v", attempt, err)

			if attempt < maxRetries {
				waitTime := baseDelay * (1 << (attempt - 1)) // Exponential backoff
				log.Printf("Retrying in %v...", waitTime)
				time.Sleep(waitTime)
				continue
			}
			return fmt.Errorf("request failed after %d attempts: %v", maxRetries, err)
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil
	}

	return fmt.Errorf("request failed after %d attempts", maxRetries)
}
