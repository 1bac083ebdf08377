// Package worldbank reads World Bank indicator csv files, locally or
// from the bulk download api.
package worldbank

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"statcharts/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

const (
	DefaultBaseURL = "https://api.worldbank.org/v2"
	// GDPPerCapitaPPP is GDP per capita, PPP (current international $).
	GDPPerCapitaPPP = "NY.GDP.PCAP.PP.CD"
)

var tracer = otel.Tracer("statcharts/lib/worldbank")

// StatusError is returned when the download api answers with a non-2xx
// status.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.URL, e.Status)
}

type Options struct {
	BaseURL   string
	Transport http.RoundTripper
	Output    restyutil.InstrumentOutput
}

type Client struct {
	http *resty.Client
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(2 * time.Minute).
		SetRetryCount(2)
	if opts.Transport != nil {
		client.SetTransport(opts.Transport)
	}
	restyutil.InstrumentClient(client, tracer, opts.Output)
	return &Client{http: client}
}

// Download fetches the zipped csv of an indicator and parses the data
// file inside it.
func (c *Client) Download(ctx context.Context, indicator string) ([]Row, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("downloadformat", "csv").
		Get("/en/indicator/" + indicator)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", indicator, err)
	}
	if res.IsError() {
		return nil, &StatusError{URL: res.Request.URL, Status: res.StatusCode()}
	}

	body := res.Body()
	archive, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("open %s archive: %w", indicator, err)
	}
	for _, f := range archive.File {
		name := path.Base(f.Name)
		if !strings.HasPrefix(name, "API_") || !strings.HasSuffix(name, ".csv") {
			continue
		}
		r, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return ReadCSV(r)
	}
	return nil, fmt.Errorf("archive of %s has no data file", indicator)
}

// Load reads the csv at file when it is set, downloading the indicator
// otherwise.
func (c *Client) Load(ctx context.Context, file, indicator string) ([]Row, error) {
	if file == "" {
		return c.Download(ctx, indicator)
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}
