// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient embeds *resty.Client so the adapter can use the full resty API.
type HTTPClient struct {
	*resty.Client
}

// RetryPolicy controls how many times a failed read is retried and how long
// to wait between attempts.
type RetryPolicy struct {
	Count int
	Wait  time.Duration
}

// NewHTTPClient returns a resty client with default settings.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}

// WithRetry applies p to the client. Only GET requests are retried, and
// only on transport errors or 5xx responses.
func (c *HTTPClient) WithRetry(p RetryPolicy) *HTTPClient {
	if p.Count <= 0 {
		return c
	}

	c.SetRetryCount(p.Count).
		SetRetryWaitTime(p.Wait).
		SetRetryMaxWaitTime(p.Wait).
		AddRetryCondition(isRetryableRead)

	return c
}

func isRetryableRead(resp *resty.Response, err error) bool {
	if resp == nil || resp.Request == nil || resp.Request.Method != http.MethodGet {
		return false
	}
	return err != nil || resp.StatusCode() >= http.StatusInternalServerError
}
