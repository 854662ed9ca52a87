package dashboard

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	DefaultQREndpoint = "https://api.qrserver.com/v1/create-qr-code/"
	DefaultQRSize     = 150
)

// ShareLink es la dirección resoluble de la página actual.
// Si hay base pública configurada se usa; si no, se deriva del request.
func ShareLink(publicBaseURL string, r *http.Request) string {
	p := r.URL.EscapedPath()
	if p == "" {
		p = "/"
	}

	if base := strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"); base != "" {
		return base + p
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(fwd, ",")[0]))
	}
	return scheme + "://" + r.Host + p
}

// QRCodeURL: imagen externa que codifica payload. No se descarga acá.
func QRCodeURL(endpoint string, size int, payload string) string {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultQREndpoint
	}
	if size <= 0 {
		size = DefaultQRSize
	}
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%ssize=%dx%d&data=%s", endpoint, sep, size, size, url.QueryEscape(payload))
}
