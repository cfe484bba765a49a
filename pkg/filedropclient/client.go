// Package filedropclient: HTTP-клиент сервиса filedrop.
package filedropclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sir_venger/filedrop/pkg/filedropproto"
)

// FileInfo: метаданные файла из заголовков ответа.
type FileInfo struct {
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	Sha256 string `json:"sha256,omitempty"`
}

// StatusError возвращается, когда сервер ответил неуспешным статусом.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("filedrop: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("filedrop: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

type Client interface {
	// Upload загружает поток под именем name и возвращает ключ. size < 0 означает, что размер неизвестен.
	Upload(ctx context.Context, name string, r io.Reader, size int64) (string, error)
	// Download пишет содержимое файла в w.
	Download(ctx context.Context, key string, w io.Writer) (FileInfo, error)
	// Inspect возвращает метаданные файла без содержимого.
	Inspect(ctx context.Context, key string) (FileInfo, error)
	// List возвращает имена сохранённых файлов.
	List(ctx context.Context) ([]string, error)
}

type Option func(*httpClient)

// WithHTTPClient подменяет http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *httpClient) { h.c = c }
}

// WithProgress включает индикатор выполнения, который рисуется в out.
func WithProgress(out io.Writer) Option {
	return func(h *httpClient) { h.progress = out }
}

type httpClient struct {
	base     string
	c        *http.Client
	progress io.Writer
}

// New создаёт клиент для сервиса по адресу baseURL.
func New(baseURL string, opts ...Option) Client {
	h := &httpClient{
		base: strings.TrimRight(baseURL, "/"),
		c:    &http.Client{},
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Upload отправляет файл multipart-запросом, не буферизуя его в памяти.
func (h *httpClient) Upload(ctx context.Context, name string, r io.Reader, size int64) (string, error) {
	bar := h.newBar(fmt.Sprintf("Uploading %s", name), size)

	pr, pw := io.Pipe()
	defer pr.Close()
	mw := multipart.NewWriter(pw)
	go func() {
		fw, err := mw.CreateFormFile(filedropproto.FormFileField, name)
		if err == nil {
			_, err = io.Copy(fw, bar.reader(r))
		}
		if err == nil {
			err = mw.Close()
		}
		_ = pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.base+filedropproto.PathUpload, pr)
	if err != nil {
		bar.Fail(err)
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := h.c.Do(req)
	if err != nil {
		bar.Fail(err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		err = statusError(resp)
		bar.Fail(err)
		return "", err
	}

	var out filedropproto.UploadResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		bar.Fail(err)
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	bar.Finish()
	return out.UploadPath, nil
}

// Download скачивает файл по ключу.
func (h *httpClient) Download(ctx context.Context, key string, w io.Writer) (FileInfo, error) {
	resp, err := h.do(ctx, http.MethodGet, downloadURL(h.base, key))
	if err != nil {
		return FileInfo{}, err
	}
	defer resp.Body.Close()

	info := fileInfo(resp)
	bar := h.newBar(fmt.Sprintf("Downloading %s", info.Name), resp.ContentLength)
	if _, err = io.Copy(w, bar.reader(resp.Body)); err != nil {
		bar.Fail(err)
		return info, err
	}
	bar.Finish()
	return info, nil
}

func (h *httpClient) Inspect(ctx context.Context, key string) (FileInfo, error) {
	resp, err := h.do(ctx, http.MethodHead, downloadURL(h.base, key))
	if err != nil {
		return FileInfo{}, err
	}
	resp.Body.Close()
	return fileInfo(resp), nil
}

func (h *httpClient) List(ctx context.Context) ([]string, error) {
	resp, err := h.do(ctx, http.MethodGet, h.base+filedropproto.PathList)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var names []string
	if err = json.NewDecoder(resp.Body).Decode(&names); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}
	return names, nil
}

func (h *httpClient) do(ctx context.Context, method, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, statusError(resp)
	}
	return resp, nil
}

func downloadURL(base, key string) string {
	return base + filedropproto.PathDownload + "?" + url.Values{filedropproto.QueryKey: {key}}.Encode()
}

func fileInfo(resp *http.Response) FileInfo {
	info := FileInfo{
		Size:   resp.ContentLength,
		Sha256: resp.Header.Get(filedropproto.HeaderChecksum),
	}
	if v := resp.Header.Get(filedropproto.HeaderSize); v != "" {
		if sz, err := strconv.ParseInt(v, 10, 64); err == nil {
			info.Size = sz
		}
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		info.Name = params["filename"]
	}
	return info
}

func statusError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(b)),
	}
}
