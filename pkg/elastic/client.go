package elastic

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const DefaultTimeout = 30 * time.Second

type Config struct {
	URL      string
	Username string
	Password string
	Timeout  time.Duration
}

// Client is a thin wrapper around the official Elasticsearch client
// exposing only the two operations the retention sweep needs: listing
// index names and deleting one index.
type Client struct {
	es      *elasticsearch.Client
	logger  logrus.FieldLogger
	timeout time.Duration
}

func New(config *Config, logger logrus.FieldLogger) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{config.URL},
		Username:  config.Username,
		Password:  config.Password,
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to create elasticsearch client")
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		es:      es,
		logger:  logger,
		timeout: timeout,
	}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return &ConnectionError{Op: "ping", Err: err}
	}
	defer res.Body.Close()

	return classify("ping", res)
}

type catIndex struct {
	Index string `json:"index"`
}

// ListIndices fetches all index names starting with the given prefix
// via the _cat API.
func (c *Client) ListIndices(ctx context.Context, prefix string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.es.Cat.Indices(
		c.es.Cat.Indices.WithContext(ctx),
		c.es.Cat.Indices.WithIndex(prefix+"*"),
		c.es.Cat.Indices.WithFormat("json"),
		c.es.Cat.Indices.WithH("index"),
	)
	if err != nil {
		return nil, &ConnectionError{Op: "list indices", Err: err}
	}
	defer res.Body.Close()

	if err := classify("list indices", res); err != nil {
		return nil, err
	}

	var items []catIndex
	if err := json.NewDecoder(res.Body).Decode(&items); err != nil {
		return nil, &ProtocolError{
			Op:     "list indices",
			Status: res.StatusCode,
			Reason: "unable to decode index listing: " + err.Error(),
		}
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Index)
	}

	c.logger.WithField("total", len(names)).Debug("Fetched index names")

	return names, nil
}

// DeleteIndex irreversibly removes one index. A missing index is
// reported as NotFoundError so callers can treat it as already deleted.
func (c *Client) DeleteIndex(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.es.Indices.Delete(
		[]string{name},
		c.es.Indices.Delete.WithContext(ctx),
	)
	if err != nil {
		return &ConnectionError{Op: "delete index", Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return &NotFoundError{Index: name}
	}

	return classify("delete index", res)
}

func classify(op string, res *esapi.Response) error {
	if res.StatusCode == 401 || res.StatusCode == 403 {
		return &AuthError{Op: op, Status: res.StatusCode}
	}

	if res.IsError() {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 2048))

		return &ProtocolError{
			Op:     op,
			Status: res.StatusCode,
			Reason: string(body),
		}
	}

	return nil
}
