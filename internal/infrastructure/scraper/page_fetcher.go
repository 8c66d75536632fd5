package scraper

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

var ErrInvalidURL = errors.New("invalid posting url")

// ErrBlockedHost is returned for postings that resolve to loopback, private or
// link-local addresses.
var ErrBlockedHost = fmt.Errorf("%w: host is not publicly routable", ErrInvalidURL)

// PageFetcher returns the visible text of a job posting page.
type PageFetcher interface {
	FetchText(ctx context.Context, rawURL string) (string, error)
}

type FetcherOption func(*Fetcher)

// WithHeadless enables the headless browser fallback for pages whose static
// HTML has less than minChars of text.
func WithHeadless(minChars int) FetcherOption {
	return func(f *Fetcher) {
		f.headless = true
		if minChars > 0 {
			f.minChars = minChars
		}
	}
}

func WithFetcherLogger(l *zap.Logger) FetcherOption {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithPrivateNetworks lets the fetcher reach loopback and private addresses.
func WithPrivateNetworks() FetcherOption {
	return func(f *Fetcher) { f.allowPrivate = true }
}

type Fetcher struct {
	headless     bool
	allowPrivate bool
	minChars     int
	timeout      time.Duration
	logger       *zap.Logger
	resolver     *net.Resolver
}

func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{minChars: 200, timeout: 25 * time.Second, logger: zap.NewNop(), resolver: net.DefaultResolver}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

func (f *Fetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ErrInvalidURL
	}
	if err := f.checkHost(ctx, u.Hostname()); err != nil {
		return "", err
	}

	text, err := f.fetchStatic(ctx, u)
	if err != nil && !f.headless {
		return "", err
	}
	if f.headless && len(text) < f.minChars {
		f.logger.Debug("static page too thin, using headless browser",
			zap.String("url", u.String()),
			zap.Int("chars", len(text)),
			zap.NamedError("static_error", err),
		)
		return f.fetchHeadless(ctx, u.String())
	}
	return text, err
}

func (f *Fetcher) fetchStatic(ctx context.Context, u *url.URL) (string, error) {
	c := colly.NewCollector(colly.AllowedDomains(hostOnly(u.Host)))
	c.WithTransport(f.transport(ctx))
	c.SetRequestTimeout(f.timeout)

	var (
		text   string
		reqErr error
	)

	c.OnRequest(func(r *colly.Request) {
		for k, v := range httpHeaders() {
			r.Headers.Set(k, v)
		}
	})

	c.OnHTML("body", func(e *colly.HTMLElement) {
		e.DOM.Find("script, style, noscript").Remove()
		text = strings.Join(strings.Fields(e.DOM.Text()), " ")
	})

	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if err := c.Visit(u.String()); err != nil {
		return "", f.fetchError(ctx, err)
	}
	c.Wait()
	if reqErr != nil {
		return "", f.fetchError(ctx, reqErr)
	}
	return text, nil
}

func (f *Fetcher) fetchError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// transport binds every request to ctx and refuses connections to
// non-public addresses, redirects included.
func (f *Fetcher) transport(ctx context.Context) http.RoundTripper {
	base := http.DefaultTransport.(*http.Transport).Clone()
	if !f.allowPrivate {
		dialer := &net.Dialer{
			Timeout: f.timeout,
			Control: func(_, address string, _ syscall.RawConn) error {
				host, _, err := net.SplitHostPort(address)
				if err != nil {
					return err
				}
				if ip := net.ParseIP(host); ip == nil || !publicIP(ip) {
					return ErrBlockedHost
				}
				return nil
			},
		}
		base.DialContext = dialer.DialContext
	}
	return ctxTransport{ctx: ctx, base: base}
}

type ctxTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t ctxTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(r.WithContext(t.ctx))
}

// checkHost rejects a host when any of its addresses is non-public.
func (f *Fetcher) checkHost(ctx context.Context, host string) error {
	if f.allowPrivate {
		return nil
	}
	addrs, err := f.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", host, err)
	}
	for _, a := range addrs {
		if !publicIP(a.IP) {
			return ErrBlockedHost
		}
	}
	return nil
}

func publicIP(ip net.IP) bool {
	return !(ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() || ip.IsMulticast())
}

func (f *Fetcher) fetchHeadless(ctx context.Context, target string) (string, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(httpHeaders()["User-Agent"]),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, f.timeout)
	defer reqCancel()

	var text string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.Evaluate(`document.body.innerText`, &text),
	)
	if err != nil {
		return "", fmt.Errorf("headless fetch: %w", err)
	}
	return strings.Join(strings.Fields(text), " "), nil
}

func httpHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
		"Accept-Language": "en-US,en;q=0.9",
	}
}

func hostOnly(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
