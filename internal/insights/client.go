// Package insights is a typed HTTP client for the job-market analytics backend.
// Every call is a single independent request; the Client holds no mutable state
// and is safe for concurrent use.
package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/market-insights/internal/observability"
	"github.com/jonathan/market-insights/internal/schemas"
	"github.com/jonathan/market-insights/internal/types"
)

// DefaultBaseURL is used when Options.BaseURL is empty.
const DefaultBaseURL = "http://127.0.0.1:8000"

// DefaultUserAgent is the user agent string sent with every request.
const DefaultUserAgent = "market-insights/1.0"

// Page sizes applied when the caller passes a non-positive limit.
const (
	DefaultMarketLimit  = 20
	DefaultRoleLimit    = 10
	DefaultAnalyzeLimit = 10
	// SimilarJobsLimit is fixed; the caller only picks the page.
	SimilarJobsLimit = 10
)

// Endpoint names used in errors, logs and metric labels.
const (
	EndpointMarketInsights      = "market_insights"
	EndpointRoles               = "roles"
	EndpointRoleInsights        = "role_insights"
	EndpointAnalyzeResume       = "analyze_resume"
	EndpointJobRoleDistribution = "job_roles_distribution"
	EndpointSimilarJobs         = "similar_jobs"
)

// RequestIDHeader carries a fresh uuid on every request.
const RequestIDHeader = "X-Request-ID"

// maxErrorBodyBytes caps how much of a failed response is read for its detail.
const maxErrorBodyBytes = 64 << 10

// Options configures the client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration // 0 leaves the transport default in place
	UserAgent string
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	// SkipValidation turns off schema and field-rule checks of 2xx bodies.
	SkipValidation bool
}

// DefaultOptions returns sensible defaults for talking to a local backend.
func DefaultOptions() *Options {
	return &Options{
		BaseURL:   DefaultBaseURL,
		UserAgent: DefaultUserAgent,
	}
}

// Client performs typed requests against the analytics backend.
type Client struct {
	baseURL        string
	userAgent      string
	httpClient     *http.Client
	logger         *zap.Logger
	metrics        *observability.Metrics
	skipValidation bool
}

// New creates a Client. A nil opts is the same as DefaultOptions().
func New(opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:        baseURL,
		userAgent:      userAgent,
		httpClient:     httpClient,
		logger:         logger,
		metrics:        opts.Metrics,
		skipValidation: opts.SkipValidation,
	}
}

// BaseURL returns the normalized base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetMarketInsights fetches one page of market-wide aggregates.
// Non-positive page and limit fall back to 1 and DefaultMarketLimit.
func (c *Client) GetMarketInsights(ctx context.Context, page, limit int) (*types.MarketInsightsResponse, error) {
	p := types.Page{Number: page, Limit: limit}.Normalize(DefaultMarketLimit)

	var resp types.MarketInsightsResponse
	err := c.get(ctx, EndpointMarketInsights, "/market_insights"+pageQuery(p), schemas.SchemaMarketInsights, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetRoles fetches the list of known job roles.
func (c *Client) GetRoles(ctx context.Context) ([]string, error) {
	var roles []string
	if err := c.get(ctx, EndpointRoles, "/roles", schemas.SchemaRoles, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// GetRoleInsights fetches one page of aggregates for a single role.
// The role is escaped as a single path segment, so "Data/Scientist" stays one segment.
func (c *Client) GetRoleInsights(ctx context.Context, role string, page, limit int) (*types.RoleInsightsResponse, error) {
	if role == "" {
		return nil, &APIError{Endpoint: EndpointRoleInsights, Message: "role is required"}
	}
	p := types.Page{Number: page, Limit: limit}.Normalize(DefaultRoleLimit)

	var resp types.RoleInsightsResponse
	path := "/market_insights/" + EscapePathSegment(role) + pageQuery(p)
	if err := c.get(ctx, EndpointRoleInsights, path, schemas.SchemaRoleInsights, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AnalyzeResume uploads the form and returns the analysis of the resume it carries.
// A limit field is sent after the caller's parts; non-positive limits become DefaultAnalyzeLimit.
func (c *Client) AnalyzeResume(ctx context.Context, form *Form, limit int) (*types.AnalysisResult, error) {
	if form == nil {
		return nil, &APIError{Endpoint: EndpointAnalyzeResume, Message: "form is required"}
	}
	if limit < 1 {
		limit = DefaultAnalyzeLimit
	}

	body, contentType, err := form.encode(formPart{name: "limit", value: strconv.Itoa(limit)})
	if err != nil {
		return nil, &APIError{Endpoint: EndpointAnalyzeResume, Message: err.Error(), Cause: err}
	}

	var result types.AnalysisResult
	err = c.do(ctx, EndpointAnalyzeResume, http.MethodPost, "/analyze_resume", body, contentType,
		schemas.SchemaAnalysisResult, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetJobRoleDistribution fetches the posting count of every role.
func (c *Client) GetJobRoleDistribution(ctx context.Context) ([]types.JobRoleDistribution, error) {
	var dist []types.JobRoleDistribution
	err := c.get(ctx, EndpointJobRoleDistribution, "/job_roles_distribution", schemas.SchemaJobRolesDistribution, &dist)
	if err != nil {
		return nil, err
	}
	return dist, nil
}

// GetMoreSimilarJobs fetches another page of jobs similar to an analyzed resume.
// The page size is always SimilarJobsLimit.
func (c *Client) GetMoreSimilarJobs(ctx context.Context, sessionID string, page int) ([]types.SimilarJob, error) {
	if sessionID == "" {
		return nil, &APIError{Endpoint: EndpointSimilarJobs, Message: "session id is required"}
	}
	p := types.Page{Number: page, Limit: SimilarJobsLimit}.Normalize(SimilarJobsLimit)

	var jobs []types.SimilarJob
	path := "/similar_jobs/" + EscapePathSegment(sessionID) + pageQuery(p)
	if err := c.get(ctx, EndpointSimilarJobs, path, schemas.SchemaSimilarJobs, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// EscapePathSegment percent-encodes s so it can be used as one path segment.
// Spaces become %20 and every reserved character, including '/', is escaped.
func EscapePathSegment(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func pageQuery(p types.Page) string {
	return fmt.Sprintf("?page=%d&limit=%d", p.Number, p.Limit)
}

func (c *Client) get(ctx context.Context, endpoint, path, schema string, out interface{}) error {
	return c.do(ctx, endpoint, http.MethodGet, path, nil, "", schema, out)
}

// do sends one request and decodes a 2xx body into out.
func (c *Client) do(ctx context.Context, endpoint, method, path string, body io.Reader, contentType, schema string, out interface{}) error {
	start := time.Now()
	requestID := uuid.NewString()
	log := c.logger.With(
		zap.String("endpoint", endpoint),
		zap.String("method", method),
		zap.String("request_id", requestID),
	)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		c.metrics.Observe(endpoint, observability.OutcomeTransportError, time.Since(start))
		log.Warn("failed to build request", zap.Error(err))
		return &APIError{Endpoint: endpoint, Message: err.Error(), Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	log.Debug("sending request", zap.String("url", req.URL.String()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.Observe(endpoint, observability.OutcomeTransportError, time.Since(start))
		log.Warn("request failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return &APIError{Endpoint: endpoint, Message: err.Error(), Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		apiErr := &APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, data),
		}
		c.metrics.Observe(endpoint, observability.OutcomeHTTPError, time.Since(start))
		log.Warn("backend returned an error",
			zap.Int("status", resp.StatusCode),
			zap.String("detail", apiErr.Message),
			zap.Duration("duration", time.Since(start)),
		)
		return apiErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.Observe(endpoint, observability.OutcomeTransportError, time.Since(start))
		log.Warn("failed to read response body", zap.Error(err))
		return &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: err.Error(), Cause: err}
	}

	if err := c.decode(endpoint, schema, data, out); err != nil {
		c.metrics.Observe(endpoint, observability.OutcomeMalformed, time.Since(start))
		log.Warn("malformed response", zap.Int("status", resp.StatusCode), zap.Error(err))
		return err
	}

	c.metrics.Observe(endpoint, observability.OutcomeOK, time.Since(start))
	log.Debug("request finished",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// decode checks data against the endpoint schema, unmarshals it and applies field rules.
func (c *Client) decode(endpoint, schema string, data []byte, out interface{}) error {
	if !c.skipValidation {
		if err := schemas.ValidateDocument(schema, data); err != nil {
			return &MalformedResponseError{Endpoint: endpoint, Cause: err}
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &MalformedResponseError{Endpoint: endpoint, Cause: err}
	}

	if c.skipValidation {
		return nil
	}
	if err := validateDecoded(out); err != nil {
		return &MalformedResponseError{Endpoint: endpoint, Cause: err}
	}
	return nil
}

func validateDecoded(out interface{}) error {
	switch v := out.(type) {
	case types.Validatable:
		return v.Validate()
	case *[]types.SimilarJob:
		return types.ValidateSlice(*v)
	case *[]types.JobRoleDistribution:
		return types.ValidateSlice(*v)
	case *[]string:
		return nil
	default:
		return errors.New("no validation rules for response type")
	}
}
