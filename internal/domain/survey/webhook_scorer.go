package survey

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// WebhookScorer submits the salary-slip image to an external scoring
// service and expects a plain integer response body. Failures are
// hard errors with no retry.
type WebhookScorer struct {
	url    string
	client *http.Client
}

func NewWebhookScorer(url string, client *http.Client) *WebhookScorer {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &WebhookScorer{url: url, client: client}
}

func (s *WebhookScorer) Score(ctx context.Context, in CreateInput) (int32, error) {
	var image string
	if len(in.SalarySlipImage) > 0 {
		image = base64.StdEncoding.EncodeToString(in.SalarySlipImage)
	}

	payload, err := json.Marshal(map[string]string{"image": image})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("scoring webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("scoring webhook: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return 0, fmt.Errorf("scoring webhook: read response: %w", err)
	}

	score, err := strconv.Atoi(strings.TrimSpace(string(body)))
	if err != nil {
		return 0, fmt.Errorf("scoring webhook: non-integer response %q", strings.TrimSpace(string(body)))
	}
	return int32(score), nil
}
