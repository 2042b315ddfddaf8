package amfi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"advisor/src/config"
	"advisor/src/utils"
	"advisor/src/utils/requests"

	"github.com/sethvargo/go-retry"
	"golang.org/x/net/html"
)

const defaultRetryBase = 200 * time.Millisecond

// ErrARNNotFound is returned when the registry has no advisor for the ARN.
var ErrARNNotFound = errors.New("ARN number not found in AMFI website.")

type AMFIServiceClientI interface {
	LookupARN(ctx context.Context, arn int64) (*ARNDetails, error)
}

// AMFIServiceClient queries the AMFI "nearest financial advisors" page.
type AMFIServiceClient struct {
	API          *requests.ExternalAPIService
	URL          string
	CacheHandler utils.CacheHandlerI
	CacheTTL     time.Duration
	MaxRetries   uint64
	RetryBase    time.Duration
}

// NewClient creates a new instance of AMFIServiceClient
func NewClient(cfg *config.Config, cacheHandler utils.CacheHandlerI) *AMFIServiceClient {
	return &AMFIServiceClient{
		API:          requests.NewExternalAPIService(nil, cfg.ExternalClients.AMFI.Timeout),
		URL:          cfg.ExternalClients.AMFI.URL,
		CacheHandler: cacheHandler,
		CacheTTL:     cfg.ExternalClients.AMFI.CacheTTL,
		MaxRetries:   cfg.ExternalClients.AMFI.MaxRetries,
		RetryBase:    cfg.ExternalClients.AMFI.RetryBase,
	}
}

// PadARN left pads the ARN with zeros to the four digits the registry expects.
func PadARN(arn int64) string {
	return fmt.Sprintf("%04d", arn)
}

// LookupARN returns the registered ARN and email for the advisor, or
// ErrARNNotFound when the registry has no matching row.
func (c *AMFIServiceClient) LookupARN(ctx context.Context, arn int64) (*ARNDetails, error) {
	padded := PadARN(arn)
	cacheKey := "amfi:arn:" + padded

	if c.CacheHandler != nil {
		var cached ARNDetails
		if err := c.CacheHandler.Get(cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	form := url.Values{}
	form.Set("nfaARN", padded)
	form.Set("nfaType", "All")

	body, err := c.fetch(ctx, form)
	if err != nil {
		return nil, err
	}

	details, err := ParseAdvisorTable(string(body))
	if err != nil {
		return nil, err
	}

	if c.CacheHandler != nil {
		// A cache failure only costs a registry round trip next time.
		_ = c.CacheHandler.Set(cacheKey, details, c.CacheTTL)
	}
	return details, nil
}

// fetch posts the lookup form. Network failures and 5xx answers are retried
// with exponential backoff, up to MaxRetries extra attempts.
func (c *AMFIServiceClient) fetch(ctx context.Context, form url.Values) ([]byte, error) {
	base := c.RetryBase
	if base <= 0 {
		base = defaultRetryBase
	}
	backoff := retry.WithMaxRetries(c.MaxRetries, retry.NewExponential(base))

	var body []byte
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := c.API.PostForm(ctx, c.URL, form)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("failed to reach AMFI: %w", err))
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			statusErr := utils.NewHTTPError(http.StatusBadGateway, fmt.Sprintf("Failed to retrieve data. Status code: %d", resp.StatusCode))
			if resp.StatusCode >= http.StatusInternalServerError {
				return retry.RetryableError(statusErr)
			}
			return statusErr
		}

		body, err = io.ReadAll(resp.Body)
		return err
	})
	return body, err
}

// ParseAdvisorTable extracts the first data row of the advisor table: the
// second cell holds the ARN and the sixth the registered email.
func ParseAdvisorTable(document string) (*ARNDetails, error) {
	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("failed to parse AMFI response: %w", err)
	}

	rows := findAll(root, "tr")
	if len(rows) < 2 {
		return nil, ErrARNNotFound
	}
	cells := findAll(rows[1], "td")
	if len(cells) < 6 {
		return nil, ErrARNNotFound
	}

	return &ARNDetails{
		ARN:   strings.TrimSpace(textContent(cells[1])),
		Email: strings.TrimSpace(textContent(cells[5])),
	}, nil
}

func findAll(node *html.Node, tag string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			found = append(found, n)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walk(child)
	}
	return found
}

func textContent(node *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return sb.String()
}
