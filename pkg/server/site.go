// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"bytes"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"
)

const allowedMethods = "GET, HEAD, OPTIONS"

// handleSite serves site objects the way the distribution does.
func (s *Server) handleSite(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
	case http.MethodOptions:
		w.Header().Set("Allow", allowedMethods)
		w.WriteHeader(http.StatusNoContent)
		return
	default:
		w.Header().Set("Allow", allowedMethods)
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	if s.serveObject(w, r, objectKey(r.URL.Path, s.config.IndexDocument)) {
		return
	}
	s.serveErrorDocument(w, r)
}

// objectKey maps a request path to a bucket key. The root maps to the
// index document; no other path gets an index.
func objectKey(urlPath, indexDocument string) string {
	if urlPath == "" || urlPath == "/" {
		return documentKey(indexDocument)
	}
	return strings.TrimPrefix(urlPath, "/")
}

func documentKey(doc string) string {
	return strings.TrimPrefix(path.Clean("/"+doc), "/")
}

// serveObject writes the object stored under key and reports whether it
// exists. Keys naming directories do not exist.
func (s *Server) serveObject(w http.ResponseWriter, r *http.Request, key string) bool {
	if !fs.ValidPath(key) || key == "." {
		return false
	}

	f, err := s.files.Open(key)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	content, ok := f.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(f)
		if err != nil {
			return false
		}
		content = bytes.NewReader(data)
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), content)
	return true
}

// serveErrorDocument answers a miss with the error document and the
// configured error status. A missing error document gets a plain body.
func (s *Server) serveErrorDocument(w http.ResponseWriter, r *http.Request) {
	siteErrorResponses.Inc()
	status := s.config.ErrorStatus

	key := documentKey(s.config.ErrorDocument)
	body, err := fs.ReadFile(s.files, key)
	if err != nil {
		http.Error(w, http.StatusText(status), status)
		return
	}

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)

	if r.Method != http.MethodHead {
		_, _ = w.Write(body)
	}
}
