package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/the-gaffer/internal/domain/media"
	"github.com/riskibarqy/the-gaffer/internal/platform/logging"
	"github.com/riskibarqy/the-gaffer/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash-image"

	promptPrefix  = "Professional football/soccer match highlight editor: "
	promptSuffix  = ". Return only the edited image."
	fallbackMime  = "image/png"
	maxErrorBytes = 4096
)

var (
	errGeminiTransient = crerr.New("gemini transient failure")
	ErrNoImage         = crerr.New("gemini response carried no image")
)

type Config struct {
	BaseURL        string
	APIKey         string
	Model          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client edits images through the generateContent endpoint. Calls are never
// retried.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	model   string
	logger  *logging.Logger
	breaker *resilience.CircuitBreaker
}

func NewClient(cfg Config, logger *logging.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		model:   model,
		logger:  logger,
		breaker: resilience.NewCircuitBreaker(cfg.CircuitBreaker, func(from, to resilience.CircuitState) {
			logger.Warn("gemini circuit breaker state changed", "from", from, "to", to, "model", model)
		}),
	}
}

// Prompt wraps a user instruction in the highlight-editor framing.
func Prompt(instruction string) string {
	return promptPrefix + instruction + promptSuffix
}

func (c *Client) Edit(ctx context.Context, img media.Image, instruction string) (media.Image, error) {
	var out media.Image
	err := c.breaker.Execute(func() error {
		edited, err := c.generate(ctx, img, instruction)
		if err != nil {
			return err
		}
		out = edited
		return nil
	}, isCircuitFailure)
	if err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "gemini circuit breaker rejected request", "state", c.breaker.State())
			return media.Image{}, crerr.Wrap(err, "gemini is temporarily unavailable")
		}
		return media.Image{}, err
	}

	return out, nil
}

func (c *Client) generate(ctx context.Context, img media.Image, instruction string) (media.Image, error) {
	if c.apiKey == "" {
		return media.Image{}, crerr.New("gemini api key is not configured")
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	payload := generateRequest{
		Contents: []content{{
			Parts: []part{
				{InlineData: &inlineData{MimeType: img.MimeType, Data: base64.StdEncoding.EncodeToString(img.Data)}},
				{Text: Prompt(instruction)},
			},
		}},
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		return media.Image{}, crerr.Wrap(err, "marshal gemini request")
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("gemini.model", c.model),
			attribute.Int("gemini.image_bytes", len(img.Data)),
			attribute.String("gemini.image_mime", img.MimeType),
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(buf.B))
	if err != nil {
		return media.Image{}, crerr.Wrap(err, "create gemini request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return media.Image{}, fmt.Errorf("%w: call gemini model=%s: %v", errGeminiTransient, c.model, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		if isRetryableStatus(resp.StatusCode) {
			return media.Image{}, fmt.Errorf("%w: gemini status=%d body=%s", errGeminiTransient, resp.StatusCode, strings.TrimSpace(string(raw)))
		}
		return media.Image{}, crerr.Newf("gemini status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded generateResponse
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return media.Image{}, crerr.Wrap(err, "decode gemini response")
	}

	for _, cand := range decoded.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData == nil || p.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return media.Image{}, crerr.Wrap(err, "decode gemini image")
			}
			mimeType := p.InlineData.MimeType
			if mimeType == "" {
				mimeType = fallbackMime
			}
			c.logger.InfoContext(ctx, "gemini edit completed", "model", c.model, "bytes", len(data))
			return media.Image{MimeType: mimeType, Data: data}, nil
		}
	}

	return media.Image{}, ErrNoImage
}

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errGeminiTransient)
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
