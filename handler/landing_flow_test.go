package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/require"

	"wish-landing/internal/domain"
	"wish-landing/internal/integrations/paramstore"
	"wish-landing/internal/usecase"
	"wish-landing/internal/view"
)

// newLandingHandler wires the real service and view behind the handler.
func newLandingHandler(t *testing.T, wishes []string) *Handler {
	t.Helper()
	pages, err := view.New()
	require.NoError(t, err)
	svc, err := usecase.NewLandingService(paramstore.Static{Site: domain.DefaultSiteSettings()}, pages, wishes, usecase.Config{CookieSecure: true})
	require.NoError(t, err)
	return mustHandler(t, svc)
}

func visit(t *testing.T, h *Handler, cookie string, query map[string]string) events.APIGatewayProxyResponse {
	t.Helper()
	event := makeEvent(http.MethodGet, "/")
	if cookie != "" {
		event.Headers["Cookie"] = cookie
	}
	event.QueryStringParameters = query
	resp, err := h.Handle(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return resp
}

func storedWish(t *testing.T, resp events.APIGatewayProxyResponse) (name, value string) {
	t.Helper()
	c, err := http.ParseSetCookie(resp.Headers["Set-Cookie"])
	require.NoError(t, err)
	return c.Name, c.Value
}

func TestLandingFlow_FirstVisitThenReturn(t *testing.T) {
	h := newLandingHandler(t, []string{"A", "B"})

	first := visit(t, h, "", nil)
	name, value := storedWish(t, first)
	require.Equal(t, "natasha_wish", name)
	require.Contains(t, []string{"A", "B"}, value)
	require.Contains(t, first.Body, "<blockquote data-wish>"+value+"</blockquote>")

	second := visit(t, h, name+"="+value, nil)
	_, rewritten := second.Headers["Set-Cookie"]
	require.False(t, rewritten)
	require.Contains(t, second.Body, "<blockquote data-wish>"+value+"</blockquote>")
}

func TestLandingFlow_CookieKeptWithoutRefresh(t *testing.T) {
	h := newLandingHandler(t, []string{"A", "B"})

	resp := visit(t, h, "natasha_wish=B", nil)
	_, rewritten := resp.Headers["Set-Cookie"]
	require.False(t, rewritten)
	require.Contains(t, resp.Body, "<blockquote data-wish>B</blockquote>")
}

func TestLandingFlow_RefreshAlwaysWrites(t *testing.T) {
	h := newLandingHandler(t, []string{"A", "B"})

	resp := visit(t, h, "natasha_wish=A", map[string]string{"bless": "new"})
	_, value := storedWish(t, resp)
	require.Contains(t, []string{"A", "B"}, value)
}

func TestLandingFlow_EmptyCatalog(t *testing.T) {
	h := newLandingHandler(t, nil)

	resp := visit(t, h, "", map[string]string{"bless": "new"})
	_, written := resp.Headers["Set-Cookie"]
	require.False(t, written)
	require.NotContains(t, resp.Body, "data-wish")
	require.Contains(t, resp.Body, "natashafriends.com")
}

func TestLandingFlow_EmptyCatalogWithStoredCookie(t *testing.T) {
	h := newLandingHandler(t, nil)

	resp := visit(t, h, "natasha_wish=B", nil)
	_, written := resp.Headers["Set-Cookie"]
	require.False(t, written)
	require.NotContains(t, resp.Body, "data-wish")
}

func TestLandingFlow_FirstRefreshValueWins(t *testing.T) {
	h := newLandingHandler(t, []string{"A", "B"})

	event := makeEvent(http.MethodGet, "/")
	event.Headers["Cookie"] = "natasha_wish=A"
	event.QueryStringParameters = map[string]string{"bless": "x"}
	event.MultiValueQueryStringParameters = map[string][]string{"bless": {"new", "x"}}
	resp, err := h.Handle(context.Background(), event)
	require.NoError(t, err)
	_, value := storedWish(t, resp)
	require.Contains(t, []string{"A", "B"}, value)
}

func TestLandingFlow_HebrewSurvivesCookie(t *testing.T) {
	wish := "שתמצא/י את השקט, גם ברגעים הסוערים!"
	h := newLandingHandler(t, []string{wish})

	first := visit(t, h, "", nil)
	name, value := storedWish(t, first)

	second := visit(t, h, name+"="+value, nil)
	require.Contains(t, second.Body, "<blockquote data-wish>"+wish+"</blockquote>")
}

func TestLandingFlow_Logo(t *testing.T) {
	h := newLandingHandler(t, []string{"A"})

	resp, err := h.Handle(context.Background(), makeEvent(http.MethodGet, "/assets/logo.svg"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "image/svg+xml", resp.Headers["Content-Type"])

	resp, err = h.Handle(context.Background(), makeEvent(http.MethodGet, "/assets/nope.png"))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
