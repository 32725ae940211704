package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second

	// maxBodyBytes limita lo que leemos de una respuesta (1MB).
	maxBodyBytes = 1 << 20
)

// Client envuelve *http.Client con helpers JSON para los adapters remotos.
// BaseURL es opcional; si está seteado, DoJSON acepta paths relativos.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

// New crea un Client con timeout razonable (<=0 usa DefaultTimeout).
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		HTTP: &http.Client{Timeout: timeout},
	}

	baseURL = strings.TrimSpace(baseURL)
	if baseURL != "" {
		if _, err := url.ParseRequestURI(baseURL); err != nil {
			return nil, fmt.Errorf("invalid base url: %w", err)
		}
		c.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return c, nil
}

// NewWithTransport permite inyectar un RoundTripper (p.ej. para tests).
func NewWithTransport(baseURL string, timeout time.Duration, tr http.RoundTripper) (*Client, error) {
	c, err := New(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	if tr != nil {
		c.HTTP.Transport = tr
	}
	return c, nil
}

// HTTPError representa una respuesta no-2xx. Un request que sí llegó al
// servidor se distingue así de un fallo de red (error plano del transporte).
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// DoJSON hace un request JSON.
//   - pathOrURL: URL absoluta o path relativo si BaseURL está seteado
//   - headers: extra headers (opcional)
//   - in: body a enviar; nil = sin body
//   - out: destino del decode; nil = ignorar body
//
// Status no-2xx retorna *HTTPError.
func (c *Client) DoJSON(ctx context.Context, method, pathOrURL string, headers map[string]string, in, out any) error {
	if c == nil || c.HTTP == nil {
		return errors.New("httpclient: nil client")
	}

	fullURL, err := c.resolveURL(pathOrURL)
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return "", errors.New("httpclient: empty url")
	}

	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL, nil
	}

	if c.BaseURL == "" {
		return "", errors.New("httpclient: relative path requires BaseURL")
	}
	if !strings.HasPrefix(pathOrURL, "/") {
		pathOrURL = "/" + pathOrURL
	}
	return c.BaseURL + pathOrURL, nil
}
