package client

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"github.com/valyala/fasthttp"
	"github.com/zeromicro/go-zero/core/logx"
)

// StatusError is returned for a response outside 2xx.
type StatusError struct {
	URL  string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("[%s] request failed with status code: %d %s", e.URL, e.Code, e.Body)
}

type httpDoer struct {
	client   *fasthttp.Client
	timeout  time.Duration
	attempts uint
	delay    time.Duration
}

func newHTTPDoer(timeout time.Duration, attempts uint) *httpDoer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if attempts == 0 {
		attempts = 1
	}
	return &httpDoer{
		client:   &fasthttp.Client{Name: "jupkit"},
		timeout:  timeout,
		attempts: attempts,
		delay:    300 * time.Millisecond,
	}
}

// do sends method url with an optional JSON body, retrying transport errors
// and 5xx responses. 4xx responses end the loop at once.
func (h *httpDoer) do(ctx context.Context, method, url string, body []byte) (status int, respBody []byte, err error) {
	err = retry.Do(func() error {
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(url)
		req.Header.SetMethod(method)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.SetContentType("application/json")
			req.SetBody(body)
		}

		timeout := h.timeout
		if deadline, ok := ctx.Deadline(); ok {
			if left := time.Until(deadline); left < timeout {
				timeout = left
			}
		}
		if err := h.client.DoTimeout(req, resp, timeout); err != nil {
			return err
		}

		status = resp.StatusCode()
		respBody = append(respBody[:0], resp.Body()...)
		if status >= 500 {
			return &StatusError{URL: url, Code: status, Body: truncate(respBody)}
		}
		if status >= 300 {
			return retry.Unrecoverable(&StatusError{URL: url, Code: status, Body: truncate(respBody)})
		}
		return nil
	},
		retry.Context(ctx),
		retry.Attempts(h.attempts),
		retry.Delay(h.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logx.WithContext(ctx).Infof("retry %d %s %s: %v", n+1, method, url, err)
		}),
	)
	return status, respBody, err
}

func truncate(b []byte) string {
	const max = 256
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
