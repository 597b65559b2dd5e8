package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wallet_searcher/internal/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JupiterClient defines the interface for requesting swap quotes from the
// Jupiter quote API.
type JupiterClient interface {
	GetQuote(ctx context.Context, inputMint, outputMint, rawAmount string, slippageBps int) (*entity.QuoteResponse, error)
}

// jupiterClientImpl is the implementation of JupiterClient.
type jupiterClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewJupiterClient creates a new instance of jupiterClientImpl. The timeout
// bounds every quote request independently of the caller's context, so a
// stalled upstream never holds a batch run for longer than that.
func NewJupiterClient(baseURL string, timeout time.Duration, logger *zap.Logger) JupiterClient {
	return &jupiterClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("JupiterClient"),
	}
}

// GetQuote implements the JupiterClient interface.
func (c *jupiterClientImpl) GetQuote(ctx context.Context, inputMint, outputMint, rawAmount string, slippageBps int) (*entity.QuoteResponse, error) {
	if inputMint == "" || outputMint == "" || rawAmount == "" {
		return nil, fmt.Errorf("inputMint, outputMint and rawAmount are required")
	}

	requestURL := fmt.Sprintf("%s/quote?inputMint=%s&outputMint=%s&amount=%s&slippageBps=%d",
		c.baseURL, inputMint, outputMint, rawAmount, slippageBps)

	c.logger.Debug("Requesting swap quote from Jupiter", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetContentTypeBytes([]byte("application/json"))

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	// The per-request timeout wins over a later context deadline: the quote
	// path must never wait longer than its own bound.
	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		c.logger.Warn("Failed to execute quote request", zap.String("url", requestURL), zap.Error(err))
		return nil, fmt.Errorf("failed to execute quote request to %s: %w", requestURL, err)
	}

	rawBody := resp.Body()

	if resp.StatusCode() != fasthttp.StatusOK {
		var apiErr entity.QuoteErrorResponse
		if err := json.Unmarshal(rawBody, &apiErr); err == nil && apiErr.Error != "" {
			c.logger.Warn("Jupiter API returned an error",
				zap.Int("statusCode", resp.StatusCode()),
				zap.String("apiError", apiErr.Error),
				zap.String("errorCode", apiErr.ErrorCode))
		} else {
			c.logger.Warn("Jupiter API request failed",
				zap.String("url", requestURL),
				zap.Int("statusCode", resp.StatusCode()),
				zap.ByteString("responseBody", rawBody))
		}
		return nil, fmt.Errorf("Jupiter API request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	var quote entity.QuoteResponse
	if err := json.Unmarshal(rawBody, &quote); err != nil {
		c.logger.Warn("Failed to unmarshal Jupiter quote response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal Jupiter quote response from %s: %w", requestURL, err)
	}

	if quote.OutAmount == "" {
		// A 200 without outAmount carries no usable price; callers treat a
		// nil quote as "unavailable".
		c.logger.Warn("Jupiter quote response missing outAmount",
			zap.String("inputMint", inputMint),
			zap.ByteString("responseBody", rawBody))
		return nil, nil
	}

	c.logger.Debug("Swap quote received",
		zap.String("inputMint", inputMint),
		zap.String("outAmount", quote.OutAmount))
	return &quote, nil
}
