package practicum

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var (
	ErrInvalidResponseCode = errors.New("invalid api response code")
	ErrConnection          = errors.New("api connection error")
)

// ResponseCodeError is returned for any answer other than 200 OK.
type ResponseCodeError struct {
	StatusCode int
	Reason     string
	Body       string
}

func (e *ResponseCodeError) Error() string {
	return fmt.Sprintf("%v: code %d, reason %q, body %q", ErrInvalidResponseCode, e.StatusCode, e.Reason, e.Body)
}

func (e *ResponseCodeError) Unwrap() error {
	return ErrInvalidResponseCode
}

type HomeworkAPI interface {
	GetAPIAnswer(ctx context.Context, timestamp int64) (gjson.Result, error)
}

type ClientConfig struct {
	Endpoint string
	Token    string
	Timeout  time.Duration
}

type Client struct {
	config     ClientConfig
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

func NewClient(config ClientConfig, logger *zap.SugaredLogger) *Client {
	log := logger.Named("practicum")
	log.Debugf("create homework api client, endpoint: (%v)", config.Endpoint)
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     log,
	}
}

// GetAPIAnswer asks for homework statuses changed since timestamp. The answer
// is returned as parsed but otherwise unchecked JSON.
func (c *Client) GetAPIAnswer(ctx context.Context, timestamp int64) (gjson.Result, error) {
	params := url.Values{}
	params.Set("from_date", strconv.FormatInt(timestamp, 10))

	c.logger.Infof("request started: url = %v, params = %v", c.config.Endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return gjson.Result{}, c.connectionError(params, err)
	}
	req.Header.Set("Authorization", "OAuth "+c.config.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gjson.Result{}, c.connectionError(params, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, c.connectionError(params, err)
	}

	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, &ResponseCodeError{
			StatusCode: resp.StatusCode,
			Reason:     reason(resp),
			Body:       string(body),
		}
	}

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, c.connectionError(params, errors.New("response body is not valid json"))
	}

	c.logger.Debugf("request finished: %d bytes", len(body))
	return gjson.ParseBytes(body), nil
}

func (c *Client) connectionError(params url.Values, err error) error {
	return fmt.Errorf("%w: url = %v, params = %v: %w", ErrConnection, c.config.Endpoint, params.Encode(), err)
}

func reason(resp *http.Response) string {
	if r := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); r != "" && r != resp.Status {
		return r
	}
	return http.StatusText(resp.StatusCode)
}
