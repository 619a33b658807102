package directory

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultTimeout bounds a single membership lookup.
	DefaultTimeout = 10 * time.Second

	// member is the return code of the web service for "in group".
	member = "0"

	maxBodySize = 64 << 10
)

// groupResponse is the document returned by the inAGroup task, e.g. <group><rc>0</rc></group>.
type groupResponse struct {
	XMLName xml.Name `xml:"group"`
	RC      string   `xml:"rc"`
}

// HTTPOracle queries the XML group web service.
type HTTPOracle struct {
	url    string
	client *http.Client
}

// NewHTTPOracle returns an oracle for the web service at serviceURL.
// A zero timeout means DefaultTimeout.
func NewHTTPOracle(serviceURL string, timeout time.Duration) *HTTPOracle {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &HTTPOracle{
		url:    serviceURL,
		client: &http.Client{Timeout: timeout},
	}
}

// IsMember implements Oracle.
func (o *HTTPOracle) IsMember(ctx context.Context, email, group string) bool {
	if email == "" || group == "" {
		return false
	}

	in, err := o.lookup(ctx, email, group)
	if err != nil {
		observeError(KindHTTP)
		log.Error().Err(err).Str("email", email).Str("group", group).Msg("group membership lookup failed")

		return false
	}

	observe(KindHTTP, in)
	log.Debug().Str("email", email).Str("group", group).Bool("member", in).Msg("group membership lookup")

	return in
}

func (o *HTTPOracle) lookup(ctx context.Context, email, group string) (bool, error) {
	u, err := url.Parse(o.url)
	if err != nil {
		return false, fmt.Errorf("invalid directory url: %w", err)
	}

	q := u.Query()
	q.Set("task", "inAGroup")
	q.Set("email", email)
	q.Set("group", group)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return false, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("request failed: %w", err)
	}

	defer func() {
		if errClose := resp.Body.Close(); errClose != nil {
			log.Warn().Err(errClose).Msg("failed to close directory response body")
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return false, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var doc groupResponse
	if err = xml.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&doc); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}

	return doc.RC == member, nil
}
