package httpcache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"statcharts/internal/telemetry"
	"statcharts/lib/restyutil"
)

const Schema = `
create table if not exists http_response (
	key text primary key,
	method text not null,
	url text not null,
	status integer not null,
	header text not null,
	body blob not null,
	stored_at integer not null
);
create index if not exists http_response_stored_at on http_response(stored_at);
`

const DefaultTTL = 30 * 24 * time.Hour

type Options struct {
	// TTL defaults to DefaultTTL.
	TTL time.Duration
	// Next defaults to http.DefaultTransport.
	Next      http.RoundTripper
	Telemetry telemetry.API
	// Now is replaced in tests.
	Now func() time.Time
}

type Stats struct {
	Hits    int64
	Misses  int64
	Entries int64
	Expired int64
}

// Transport is a cache-aside http.RoundTripper, successful GET and POST
// responses are stored in a sql database and replayed until they expire.
type Transport struct {
	db   *sql.DB
	next http.RoundTripper
	ttl  time.Duration
	now  func() time.Time
	tel  telemetry.API

	hits   atomic.Int64
	misses atomic.Int64
}

func New(db *sql.DB, opts Options) *Transport {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Next == nil {
		opts.Next = http.DefaultTransport
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Transport{
		db:   db,
		next: opts.Next,
		ttl:  opts.TTL,
		now:  opts.Now,
		tel:  telemetry.NewScopedAPI("httpcache", opts.Telemetry),
	}
}

// Key identifies a request by method, url and body.
func Key(method, url string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(strings.ToUpper(method)))
	h.Write([]byte{0})
	h.Write([]byte(url))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func cacheable(method string) bool {
	return method == http.MethodGet || method == http.MethodPost
}

func readRequestBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	if req.GetBody != nil {
		rc, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	body, err := io.ReadAll(req.Body)
	req.Body.Close()
	if err != nil {
		return nil, err
	}
	req.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !cacheable(req.Method) {
		return t.next.RoundTrip(req)
	}

	body, err := readRequestBody(req)
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	key := Key(req.Method, req.URL.String(), body)

	cached, err := t.lookup(req.Context(), key)
	if err != nil {
		t.tel.ReportBroken("lookup", key, err)
	}
	if cached != nil {
		t.hits.Add(1)
		cached.Request = req
		return cached, nil
	}
	t.misses.Add(1)

	res, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return res, nil
	}

	resBody, err := io.ReadAll(res.Body)
	res.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	res.Body = io.NopCloser(bytes.NewReader(resBody))
	res.ContentLength = int64(len(resBody))
	res.Header.Set(restyutil.CacheHeader, "miss")

	err = t.store(req.Context(), key, req, res, resBody)
	if err != nil {
		t.tel.ReportBroken("store", key, err)
	}
	return res, nil
}

func (t *Transport) lookup(ctx context.Context, key string) (*http.Response, error) {
	var (
		status   int
		header   string
		body     []byte
		storedAt int64
	)
	err := t.db.QueryRowContext(
		ctx,
		"select status, header, body, stored_at from http_response where key = ?",
		key,
	).Scan(&status, &header, &body, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if t.expired(storedAt) {
		return nil, nil
	}

	parsedHeader := http.Header{}
	err = json.Unmarshal([]byte(header), &parsedHeader)
	if err != nil {
		return nil, err
	}
	parsedHeader.Set(restyutil.CacheHeader, "hit")

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        parsedHeader,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
	}, nil
}

func (t *Transport) expired(storedAt int64) bool {
	return t.now().Sub(time.Unix(storedAt, 0)) > t.ttl
}

func (t *Transport) store(ctx context.Context, key string, req *http.Request, res *http.Response, body []byte) error {
	header := res.Header.Clone()
	header.Del(restyutil.CacheHeader)
	serialized, err := json.Marshal(header)
	if err != nil {
		return err
	}
	_, err = t.db.ExecContext(
		ctx,
		`insert into http_response (key, method, url, status, header, body, stored_at)
		values (?, ?, ?, ?, ?, ?, ?)
		on conflict (key) do update set
			status = excluded.status,
			header = excluded.header,
			body = excluded.body,
			stored_at = excluded.stored_at`,
		key, req.Method, req.URL.String(), res.StatusCode, string(serialized), body, t.now().Unix(),
	)
	return err
}

// Stats returns the hits and misses of this transport along with the
// number of stored and expired entries.
func (t *Transport) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{
		Hits:   t.hits.Load(),
		Misses: t.misses.Load(),
	}
	cutoff := t.now().Add(-t.ttl).Unix()
	err := t.db.QueryRowContext(
		ctx,
		"select count(*), coalesce(sum(case when stored_at < ? then 1 else 0 end), 0) from http_response",
		cutoff,
	).Scan(&stats.Entries, &stats.Expired)
	if err != nil {
		return stats, fmt.Errorf("count cache entries: %w", err)
	}
	return stats, nil
}

// Purge deletes expired entries, returning how many were removed.
func (t *Transport) Purge(ctx context.Context) (int64, error) {
	cutoff := t.now().Add(-t.ttl).Unix()
	res, err := t.db.ExecContext(ctx, "delete from http_response where stored_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	t.tel.ReportCount("purged", n)
	return n, nil
}
