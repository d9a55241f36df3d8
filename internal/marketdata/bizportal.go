package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

const defaultBizportalURL = "https://www.bizportal.co.il/capitalmarket/quote/general"

// Bizportal quotes are in agorot.
const agorotPerShekel = 100

var taseID = regexp.MustCompile(`^\d+(\.TA)?$`)

// IsTASEID reports whether a symbol is a numeric Tel Aviv security id, optionally
// suffixed with ".TA". Only these symbols can be scraped from Bizportal.
func IsTASEID(symbol string) bool {
	return taseID.MatchString(symbol)
}

// BizportalClient scrapes the last traded price of TASE securities.
type BizportalClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewBizportalClient creates a scraper against the public site
func NewBizportalClient() *BizportalClient {
	return NewBizportalClientWithBaseURL(defaultBizportalURL)
}

// NewBizportalClientWithBaseURL creates a scraper with a custom base URL (for testing)
func NewBizportalClientWithBaseURL(baseURL string) *BizportalClient {
	return &BizportalClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(2), 2),
	}
}

// GetPrice returns the price of a TASE security in shekels.
func (c *BizportalClient) GetPrice(ctx context.Context, symbol string) (float64, error) {
	if !IsTASEID(symbol) {
		return 0, fmt.Errorf("%q is not a TASE security id", symbol)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit wait: %w", err)
	}

	id := strings.TrimSuffix(symbol, ".TA")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+id, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("bizportal returned status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to parse page: %w", err)
	}

	text, ok := findRate(doc)
	if !ok {
		return 0, fmt.Errorf("%w for %s", ErrNoData, symbol)
	}
	agorot, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(text), ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse price %q: %w", text, err)
	}
	if agorot <= 0 {
		return 0, fmt.Errorf("%w for %s", ErrNoData, symbol)
	}
	return agorot / agorotPerShekel, nil
}

// findRate locates the text of the first ".num" element inside a ".paper_rate" element.
func findRate(n *html.Node) (string, bool) {
	if hasClass(n, "paper_rate") {
		if num := findClass(n, "num"); num != nil {
			return textOf(num), true
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if s, ok := findRate(child); ok {
			return s, true
		}
	}
	return "", false
}

func findClass(n *html.Node, class string) *html.Node {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if hasClass(child, class) {
			return child
		}
		if found := findClass(child, class); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func textOf(n *html.Node) string {
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
	walk(n)
	return sb.String()
}
