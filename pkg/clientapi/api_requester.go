package clientapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tellor-io/layerprof/pkg/metrics"
	"github.com/tellor-io/layerprof/pkg/utils"
)

var log = logrus.WithField(
	"module", "api-cli",
)

// APIClient talks to a Layer node over its CometBFT RPC and Cosmos REST
// endpoints. It issues single-shot JSON queries; a report run either gets a
// full snapshot or fails.
type APIClient struct {
	ctx context.Context

	rpcEndpoint  string
	restEndpoint string
	timeout      time.Duration

	hc           *http.Client
	promMetrics  *metrics.PrometheusMetrics
	queryMetrics *queryMetrics
}

func NewAPIClient(ctx context.Context, rpcEndpoint string, options ...APIClientOption) (*APIClient, error) {
	if rpcEndpoint == "" {
		return nil, errors.New("rpc endpoint is required")
	}
	log.Debugf("generating api client at %s", rpcEndpoint)

	client := &APIClient{
		ctx:          ctx,
		rpcEndpoint:  strings.TrimRight(rpcEndpoint, "/"),
		timeout:      utils.QueryTimeout,
		queryMetrics: newQueryMetrics(),
	}
	for _, option := range options {
		if err := option(client); err != nil {
			return nil, err
		}
	}

	client.hc = &http.Client{Timeout: client.timeout}
	if client.promMetrics != nil {
		client.promMetrics.AddMetricsModule(client.queryMetrics.getPrometheusMetrics())
	}
	return client, nil
}

type APIClientOption func(*APIClient) error

func WithRESTEndpoint(endpoint string) APIClientOption {
	return func(c *APIClient) error {
		if endpoint == "" {
			return errors.New("rest endpoint cannot be empty")
		}
		c.restEndpoint = strings.TrimRight(endpoint, "/")
		return nil
	}
}

func WithQueryTimeout(timeout time.Duration) APIClientOption {
	return func(c *APIClient) error {
		if timeout <= 0 {
			return errors.Errorf("query timeout %s must be positive", timeout)
		}
		c.timeout = timeout
		return nil
	}
}

func WithPromMetrics(prom *metrics.PrometheusMetrics) APIClientOption {
	return func(c *APIClient) error {
		c.promMetrics = prom
		return nil
	}
}

// getJSON performs a GET against the given url and decodes the JSON body
// into out. All client queries funnel through here.
func (c *APIClient) getJSON(url string, out interface{}) (err error) {
	ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		c.queryMetrics.record(time.Since(start), err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrapf(err, "unable to build request for %s", url)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return errors.Wrapf(err, "query to %s failed", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Errorf("query to %s returned status %d: %s", url, resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "unable to decode response from %s", url)
	}

	log.Tracef("query %s done in %.3fs", url, time.Since(start).Seconds())
	return nil
}

func (c *APIClient) restURL(path string) (string, error) {
	if c.restEndpoint == "" {
		return "", errors.New("no rest endpoint configured")
	}
	return c.restEndpoint + path, nil
}
