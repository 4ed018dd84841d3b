package voice

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/mvaldelvira/corredor/internal/config"
)

// SynthesizeRequest holds the parameters for one synthesis call.
type SynthesizeRequest struct {
	Text string
	// Voice selects the speaker preset; empty uses the function default.
	Voice string
	// Speed is the playback rate multiplier; zero uses the function default.
	Speed float64
}

// SynthesizeResponse holds the audio produced for one narration section.
type SynthesizeResponse struct {
	Audio     []byte
	MimeType  string
	LatencyMs int64
}

// Synthesizer turns narration text into audio via the hosted
// speech-synthesis function.
type Synthesizer interface {
	Synthesize(ctx context.Context, req SynthesizeRequest) (*SynthesizeResponse, error)

	// Available checks whether the synthesis endpoint is reachable.
	Available(ctx context.Context) bool
}

// functionClient implements Synthesizer against a named hosted function
// that takes a JSON body and returns base64-encoded audio.
type functionClient struct {
	cfg      config.VoiceConfig
	http     *http.Client
	observer Observer
}

// NewClient creates a Synthesizer that talks to the configured endpoint.
func NewClient(cfg config.VoiceConfig, observer Observer) Synthesizer {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &functionClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// functionRequest is the JSON body sent to POST /functions/{name}.
type functionRequest struct {
	Text  string  `json:"text"`
	Voice string  `json:"voice,omitempty"`
	Speed float64 `json:"speed,omitempty"`
}

// functionResponse is the JSON body returned by the function.
type functionResponse struct {
	AudioBase64 string `json:"audio_base64"`
	MimeType    string `json:"mime_type"`
}

func (c *functionClient) Synthesize(ctx context.Context, req SynthesizeRequest) (*SynthesizeResponse, error) {
	if req.Text == "" {
		return nil, ErrEmptyText
	}

	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	body := functionRequest{
		Text:  req.Text,
		Voice: req.Voice,
		Speed: req.Speed,
	}

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		resp, err := c.doRequest(ctx, body)
		if err == nil {
			audio, err := base64.StdEncoding.DecodeString(resp.AudioBase64)
			if err != nil {
				lastErr = fmt.Errorf("decoding audio: %w", err)
				continue
			}
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(CallEvent{
				Function:  c.cfg.Function,
				TextLen:   len(req.Text),
				AudioLen:  len(audio),
				LatencyMs: latency,
				Success:   true,
			})
			return &SynthesizeResponse{
				Audio:     audio,
				MimeType:  resp.MimeType,
				LatencyMs: latency,
			}, nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout
		if ctx.Err() != nil {
			break
		}
	}

	latency := time.Since(start).Milliseconds()
	c.observer.OnCallComplete(CallEvent{
		Function:  c.cfg.Function,
		TextLen:   len(req.Text),
		LatencyMs: latency,
		Success:   false,
		ErrorCode: errorCode(ctx, lastErr),
	})

	if ctx.Err() != nil {
		return nil, ErrTimeout
	}
	if isConnectionError(lastErr) {
		return nil, ErrUnavailable
	}
	return nil, fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
}

func (c *functionClient) doRequest(ctx context.Context, body functionRequest) (*functionResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.Endpoint + "/functions/" + c.cfg.Function
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("function returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp functionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &resp, nil
}

func (c *functionClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"/healthz", nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(ctx context.Context, err error) string {
	switch {
	case ctx.Err() != nil:
		return "TIMEOUT"
	case isConnectionError(err):
		return "UNAVAILABLE"
	case err == nil:
		return ""
	default:
		return "UNKNOWN"
	}
}
