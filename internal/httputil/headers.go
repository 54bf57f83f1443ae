package httputil

import "net/http"

// UserAgent identifies this client to the backend and translation providers.
const UserAgent = "showcase/1.0 (+https://github.com/lukman83/showcase)"

// JSONHeaders returns headers for JSON requests against the storefront backend.
func JSONHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("Accept-Encoding", "gzip, br")
	h.Set("User-Agent", UserAgent)
	return h
}

// TranslatorHeaders returns headers for machine-translation provider requests.
func TranslatorHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("Accept-Encoding", "gzip, br")
	return h
}

// Apply copies h onto req without replacing headers already set.
func Apply(req *http.Request, h http.Header) {
	for key, vals := range h {
		if req.Header.Get(key) != "" {
			continue
		}
		for _, v := range vals {
			req.Header.Add(key, v)
		}
	}
}
