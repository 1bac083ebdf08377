package pxweb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"statcharts/internal/telemetry"
	"statcharts/lib/dataset"
	"statcharts/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

const DefaultBaseURL = "https://api.scb.se/OV0104/v1/doris"

var tracer = otel.Tracer("statcharts/lib/pxweb")

type Options struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	// Language defaults to English.
	Language Language
	// Transport replaces the default http transport, e.g. with a cache.
	Transport http.RoundTripper
	// Output receives http message dumps when debug logging is on.
	Output    restyutil.InstrumentOutput
	Telemetry telemetry.API
}

// Client talks to a PxWeb v1 api. It is safe for concurrent use.
type Client struct {
	http     *resty.Client
	language Language
	tel      telemetry.API
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Language == "" {
		opts.Language = English
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(2 * time.Minute).
		// the api allows 30 requests per 10 seconds per ip
		SetRetryCount(3).
		SetRetryWaitTime(5 * time.Second).
		SetRetryMaxWaitTime(15 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return r != nil && r.StatusCode() == http.StatusTooManyRequests
		})
	if opts.Transport != nil {
		client.SetTransport(opts.Transport)
	}
	restyutil.InstrumentClient(client, tracer, opts.Output)

	return &Client{
		http:     client,
		language: opts.Language,
		tel:      telemetry.NewScopedAPI("pxweb", opts.Telemetry),
	}
}

// WithLanguage returns a client for the same api serving labels in
// another language.
func (c *Client) WithLanguage(lang Language) *Client {
	return &Client{http: c.http, language: lang, tel: c.tel}
}

func (c *Client) Language() Language {
	return c.language
}

func (c *Client) path(endpoint Endpoint) string {
	return fmt.Sprintf("/%s/ssd/%s", c.language, endpoint)
}

// URL is the absolute url of a table.
func (c *Client) URL(endpoint Endpoint) string {
	return c.http.BaseURL + c.path(endpoint)
}

var utf8Bom = []byte{0xef, 0xbb, 0xbf}

func decodeBody(res *resty.Response, out any) error {
	if res.IsError() {
		return newStatusError(res.Request.Method, res.Request.URL, res.StatusCode(), res.Body())
	}
	body := bytes.TrimPrefix(res.Body(), utf8Bom)
	err := json.Unmarshal(body, out)
	if err != nil {
		return fmt.Errorf("decode %s %s: %w", res.Request.Method, res.Request.URL, err)
	}
	return nil
}

// GetMetadata fetches the variables of a table.
func (c *Client) GetMetadata(ctx context.Context, endpoint Endpoint) (Metadata, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(c.path(endpoint))
	if err != nil {
		return Metadata{}, fmt.Errorf("get metadata of %s: %w", endpoint, err)
	}
	var meta Metadata
	err = decodeBody(res, &meta)
	if err != nil {
		return Metadata{}, err
	}
	return meta, nil
}

// PostQuery runs a query against a table.
func (c *Client) PostQuery(ctx context.Context, endpoint Endpoint, query Query) (Response, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(query).
		Post(c.path(endpoint))
	if err != nil {
		return Response{}, fmt.Errorf("query %s: %w", endpoint, err)
	}
	var out Response
	err = decodeBody(res, &out)
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

// GetTable builds a query from the table's metadata and the selected
// values, runs it and decodes the result.
func (c *Client) GetTable(ctx context.Context, endpoint Endpoint, selected map[string][]string) (dataset.Frame, []SourceInfo, error) {
	ctx, span := tracer.Start(ctx, "GetTable")
	defer span.End()

	meta, err := c.GetMetadata(ctx, endpoint)
	if err != nil {
		return dataset.Frame{}, nil, err
	}

	query, warnings := BuildQuery(meta, selected)
	for _, w := range warnings {
		c.tel.ReportWarning("query", string(endpoint), w.String())
	}

	res, err := c.PostQuery(ctx, endpoint, query)
	if err != nil {
		return dataset.Frame{}, nil, err
	}

	frame, err := Decode(res, meta)
	if err != nil {
		c.tel.ReportBroken("decode", string(endpoint), err)
		return dataset.Frame{}, nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	c.tel.ReportCount("records", int64(frame.Len()))

	return frame, res.Metadata, nil
}

// ShowFields writes the variables of a table and their values, one line
// per variable.
func (c *Client) ShowFields(ctx context.Context, endpoint Endpoint, w io.Writer) error {
	meta, err := c.GetMetadata(ctx, endpoint)
	if err != nil {
		return err
	}
	for _, v := range meta.Variables {
		_, err = fmt.Fprintf(w, "%s: [%s]\n", v.Code, strings.Join(v.Values, ", "))
		if err != nil {
			return err
		}
	}
	return nil
}
