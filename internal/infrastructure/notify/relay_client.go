// Package notify forwards application notifications to a remote relay.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
	"github.com/anurag-po/CODSOFT/internal/core/ports"
)

const relayPath = "/api/notify"

// payload is the relay's request body.
type payload struct {
	EmployerEmail string `json:"employerEmail"`
	JobTitle      string `json:"jobTitle"`
	CandidateName string `json:"candidateName"`
	ResumeURL     string `json:"resumeUrl"`
}

// RelayClient posts notifications to a relay process over HTTP.
type RelayClient struct {
	endpoint string
	http     *http.Client
}

func NewRelayClient(baseURL string, httpClient *http.Client) *RelayClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &RelayClient{
		endpoint: strings.TrimRight(baseURL, "/") + relayPath,
		http:     httpClient,
	}
}

func (c *RelayClient) Notify(ctx context.Context, n domain.ApplicationNotification) error {
	body, err := json.Marshal(payload{
		EmployerEmail: n.EmployerEmail,
		JobTitle:      n.JobTitle,
		CandidateName: n.CandidateName,
		ResumeURL:     n.ResumeURL,
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("relay request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			return fmt.Errorf("relay returned %d: %s", resp.StatusCode, e.Error)
		}
		return fmt.Errorf("relay returned %d", resp.StatusCode)
	}
	return nil
}

var _ ports.Notifier = (*RelayClient)(nil)
