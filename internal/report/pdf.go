package report

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

type PDFRenderer interface {
	RenderPDF(ctx context.Context, html []byte) ([]byte, error)
}

// GotenbergRenderer converts HTML to PDF through a Gotenberg instance.
type GotenbergRenderer struct {
	httpClient *resty.Client
}

func NewGotenbergRenderer(baseURL string, timeout time.Duration) *GotenbergRenderer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)
	return &GotenbergRenderer{httpClient: client}
}

func (g *GotenbergRenderer) RenderPDF(ctx context.Context, html []byte) ([]byte, error) {
	resp, err := g.httpClient.R().
		SetContext(ctx).
		SetFileReader("files", "index.html", bytes.NewReader(html)).
		Post("/forms/chromium/convert/html")
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("pdf renderer error: status=%d body=%s", resp.StatusCode(), truncate(resp.String(), 200))
	}
	return resp.Body(), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
