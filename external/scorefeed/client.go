package scorefeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/pompeytony/wff-predictor/internal/platform/logging"
	"github.com/pompeytony/wff-predictor/internal/platform/resilience"
	"github.com/pompeytony/wff-predictor/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	defaultTimeout     = 20 * time.Second
	resultsPath        = "/v1/results"
	statusFinished     = "finished"
	maxBodyPreviewSize = 512
)

var tokenParamRegex = regexp.MustCompile(`token=[^&\s"']+`)
var errFeedTransient = crerr.New("score feed transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches finished scores over HTTP. It implements
// usecase.ScoreFeed.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type resultsEnvelope struct {
	Results []resultItem `json:"results"`
}

type resultItem struct {
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeGoals int    `json:"home_goals"`
	AwayGoals int    `json:"away_goals"`
	Status    string `json:"status"`
}

// FinishedScores returns every feed row whose status is finished. Rows
// without both team names are dropped.
func (c *Client) FinishedScores(ctx context.Context) ([]usecase.FeedScore, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("score feed base url is not configured")
	}

	var envelope resultsEnvelope
	if err := c.doJSON(ctx, resultsPath, &envelope); err != nil {
		return nil, fmt.Errorf("fetch feed results: %w", err)
	}

	out := make([]usecase.FeedScore, 0, len(envelope.Results))
	for _, item := range envelope.Results {
		if !strings.EqualFold(strings.TrimSpace(item.Status), statusFinished) {
			continue
		}
		homeTeam := strings.TrimSpace(item.HomeTeam)
		awayTeam := strings.TrimSpace(item.AwayTeam)
		if homeTeam == "" || awayTeam == "" {
			continue
		}
		if item.HomeGoals < 0 || item.AwayGoals < 0 {
			c.logger.WarnContext(ctx, "feed row has negative goals, dropping",
				"home_team", homeTeam,
				"away_team", awayTeam,
			)
			continue
		}
		out = append(out, usecase.FeedScore{
			HomeTeam:  homeTeam,
			AwayTeam:  awayTeam,
			HomeGoals: item.HomeGoals,
			AwayGoals: item.AwayGoals,
		})
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "score feed circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("score feed is temporarily unavailable: %w", err)
		}
	}

	fullURL := c.baseURL + path

	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errFeedTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode feed payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		if c.token != "" {
			req.Header.Set("authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errFeedTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errFeedTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: feed status=%d body=%s", errFeedTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("feed status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("feed request failed")
	}
	c.logger.WarnContext(ctx, "score feed request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	preview := raw
	if len(preview) > maxBodyPreviewSize {
		preview = preview[:maxBodyPreviewSize]
	}
	_, _ = buf.Write(preview)
	if len(raw) > maxBodyPreviewSize {
		_, _ = buf.WriteString("...")
	}
	return strings.TrimSpace(buf.String())
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return tokenParamRegex.ReplaceAllString(value, "token=REDACTED")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
