package remote

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"vet-agenda/internal/domain/record"
	"vet-agenda/internal/platform/httpclient"
	"vet-agenda/internal/ports/auth"
	"vet-agenda/internal/ports/stores"
)

// Client es la base común de los stores remotos: resuelve la sesión
// vigente (scoping de cuenta + bearer token), arma los paths de la
// colección documental y clasifica los fallos en la taxonomía compartida.
//
// Layout remoto: accounts/{accountId}/{collection}/{docId}.
type Client struct {
	http     *httpclient.Client
	sessions auth.SessionSource

	now func() time.Time
}

func NewClient(hc *httpclient.Client, sessions auth.SessionSource) *Client {
	return &Client{
		http:     hc,
		sessions: sessions,
		now:      time.Now,
	}
}

var (
	errNoSession = errors.New("no active session")
)

func (c *Client) session(ctx context.Context) (auth.Session, error) {
	if c.sessions == nil {
		return auth.Session{}, fmt.Errorf("%w: %s", stores.ErrUnreachable, errNoSession)
	}
	sess, ok := c.sessions.Current(ctx)
	if !ok {
		return auth.Session{}, fmt.Errorf("%w: %s", stores.ErrUnreachable, errNoSession)
	}
	return sess, nil
}

func (c *Client) do(ctx context.Context, method, collection, suffix string, in, out any) error {
	sess, err := c.session(ctx)
	if err != nil {
		return err
	}

	path := "/accounts/" + url.PathEscape(sess.AccountID) + "/" + collection + suffix

	headers := map[string]string{}
	if sess.Token != "" {
		headers["Authorization"] = "Bearer " + sess.Token
	}

	if err := c.http.DoJSON(ctx, method, path, headers, in, out); err != nil {
		return classify(err)
	}
	return nil
}

// stamp mezcla el timestamp autoritativo del servidor (puede ser nil si el
// doc aún no lo tiene) con el espejo en ms del reloj del cliente.
func (c *Client) stamp(server *time.Time) record.Stamp {
	s := record.StampNow(c.now())
	s.At = server
	return s
}

// classify mapea fallos de transporte/HTTP a la taxonomía de stores:
// 404 => NotFound; cualquier fallo sin respuesta => Unreachable; otros
// status quedan como vinieron (el caller los ve como error plano).
func classify(err error) error {
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		if he.StatusCode == 404 {
			return fmt.Errorf("%w: %s", stores.ErrNotFound, he.Error())
		}
		return err
	}
	return fmt.Errorf("%w: %s", stores.ErrUnreachable, err.Error())
}
