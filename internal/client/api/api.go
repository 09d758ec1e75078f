// Package api is the typed catalog of backend operations. Each method maps
// to one endpoint and funnels through the client dispatcher; errors from
// the dispatcher are returned unchanged.
package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/legalwriter/internal/client/client"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, req client.Request) (*client.Result, error)
}

// Session is the part of the token store login and logout touch.
type Session interface {
	SetTokens(ctx context.Context, access, refresh string) error
	Clear(ctx context.Context) error
	IsAuthenticated() bool
}

type API struct {
	dispatcher Dispatcher
	session    Session
}

func New(d Dispatcher, s Session) *API {
	return &API{dispatcher: d, session: s}
}

func (a *API) IsAuthenticated() bool {
	return a.session.IsAuthenticated()
}

// call dispatches req and decodes the JSON reply into T.
func call[T any](ctx context.Context, a *API, req client.Request) (T, error) {
	var out T
	res, err := a.dispatcher.Dispatch(ctx, req)
	if err != nil {
		return out, err
	}
	if err := res.Decode(&out); err != nil {
		return out, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	return out, nil
}

// exec dispatches req and ignores any reply body.
func exec(ctx context.Context, a *API, req client.Request) error {
	_, err := a.dispatcher.Dispatch(ctx, req)
	return err
}

func idPath(collection string, id int64, suffix ...string) string {
	p := "/" + collection + "/" + strconv.FormatInt(id, 10) + "/"
	for _, s := range suffix {
		p += s + "/"
	}
	return p
}

func byProject(projectID int64) url.Values {
	return url.Values{"project": {strconv.FormatInt(projectID, 10)}}
}
