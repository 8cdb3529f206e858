// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package export

import (
	"fmt"
	"html"
	"net/url"
	"strings"
)

// PublicURL is the address of the public page of the form with slug.
func PublicURL(baseURL, slug string) string {
	return strings.TrimRight(baseURL, "/") + "/form/" + url.PathEscape(slug)
}

// EmbedCode returns the iframe tag that embeds the public form page.
func EmbedCode(baseURL, slug string) string {
	return fmt.Sprintf(
		`<iframe src="%s" width="100%%" height="600" frameborder="0" style="border:none;"></iframe>`,
		html.EscapeString(PublicURL(baseURL, slug)),
	)
}
