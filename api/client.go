package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	go_json "github.com/goccy/go-json"

	"resin_widget/logging"
)

const (
	DefaultBaseURL  = "https://bbs-api-os.hoyolab.com"
	DefaultTimeout  = 10 * time.Second
	DefaultLanguage = "en-us"

	appVersion = "1.5.0"
	clientType = "5"
	userAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// Cookies are the four v2 HoYoLAB cookies.
type Cookies struct {
	LtuidV2       string
	LtokenV2      string
	CookieTokenV2 string
	AccountMidV2  string
}

func (c Cookies) header() string {
	return "ltuid_v2=" + c.LtuidV2 +
		"; ltoken_v2=" + c.LtokenV2 +
		"; cookie_token_v2=" + c.CookieTokenV2 +
		"; account_mid_v2=" + c.AccountMidV2
}

// Client fetches Genshin daily notes for a single account.
type Client struct {
	baseURL    string
	server     string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

type clientConfig struct {
	baseURL    string
	language   string
	server     string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

type Option func(*clientConfig)

func WithBaseURL(baseURL string) Option {
	return func(cfg *clientConfig) { cfg.baseURL = baseURL }
}

func WithLanguage(lang string) Option {
	return func(cfg *clientConfig) { cfg.language = lang }
}

// WithServer pins the region instead of deriving it from the UID.
func WithServer(server string) Option {
	return func(cfg *clientConfig) { cfg.server = server }
}

func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) { cfg.timeout = d }
}

func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) { cfg.httpClient = c }
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) { cfg.logger = logger }
}

func withClock(now func() time.Time) Option {
	return func(cfg *clientConfig) { cfg.now = now }
}

func New(cookies Cookies, opts ...Option) *Client {
	cfg := &clientConfig{
		baseURL:  DefaultBaseURL,
		language: DefaultLanguage,
		timeout:  DefaultTimeout,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.timeout}
	}
	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped := *httpClient
	wrapped.Transport = &hoyolabTransport{
		base:     base,
		cookies:  cookies,
		language: cfg.language,
		now:      cfg.now,
	}

	return &Client{
		baseURL:    cfg.baseURL,
		server:     cfg.server,
		httpClient: &wrapped,
		logger:     cfg.logger,
		now:        cfg.now,
	}
}

// Notes returns the real-time note for the given game UID.
func (c *Client) Notes(ctx context.Context, uid int64) (*Notes, error) {
	const route = "/game_record/genshin/api/dailyNote"

	server := c.server
	if server == "" {
		var err error
		server, err = RecognizeServer(uid)
		if err != nil {
			return nil, err
		}
	}

	query := url.Values{}
	query.Set("role_id", strconv.FormatInt(uid, 10))
	query.Set("server", server)

	var note dailyNote
	if err := c.do(ctx, http.MethodGet, route, query, &note); err != nil {
		return nil, err
	}
	return note.toNotes(c.now()), nil
}

func (c *Client) do(ctx context.Context, method string, path string, query url.Values, result any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("hoyolab request",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		logging.Duration(c.now().Sub(start)),
	)

	if resp.StatusCode >= 400 {
		return parseHTTPError(resp, c.logger)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var env envelope
	if err := go_json.Unmarshal(body, &env); err != nil {
		c.logger.Debug("undecodable hoyolab response", slog.String("path", path), slog.String("body", string(body)))
		return fmt.Errorf("decoding response %q: %w", snippet(body), err)
	}
	if env.Retcode != 0 {
		return &APIError{Retcode: env.Retcode, Message: env.Message}
	}
	if result != nil && len(env.Data) > 0 {
		if err := go_json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("decoding data: %w", err)
		}
	}
	return nil
}

type hoyolabTransport struct {
	base     http.RoundTripper
	cookies  Cookies
	language string
	now      func() time.Time
}

var _ http.RoundTripper = (*hoyolabTransport)(nil)

func (t *hoyolabTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Cookie", t.cookies.header())
	req.Header.Set("DS", dynamicSecret(overseasSalt, t.now(), randomLetters(6)))
	req.Header.Set("x-rpc-app_version", appVersion)
	req.Header.Set("x-rpc-client_type", clientType)
	req.Header.Set("x-rpc-language", t.language)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("round trip: %w", err)
	}
	return resp, nil
}
