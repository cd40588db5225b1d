package handler

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"wish-landing/internal/usecase"
)

const (
	pagePath      = "/"
	assetPrefix   = "/assets/"
	correlationID = "X-Correlation-Id"
)

// LandingUseCase is the application surface the handler drives.
type LandingUseCase interface {
	Render(ctx context.Context, in usecase.LandingInput) (usecase.LandingOutput, error)
	Asset(ctx context.Context, name string) (usecase.AssetOutput, error)
}

type Handler struct {
	landing LandingUseCase
}

func NewHandler(landing LandingUseCase) (*Handler, error) {
	if landing == nil {
		return nil, errors.New("handler: landing use case must not be nil")
	}
	return &Handler{landing: landing}, nil
}

// Handle serves the landing page and its assets from API Gateway proxy events.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := resolveCorrelationID(req)
	logger := slog.With("correlationId", corrID, "method", req.HTTPMethod, "path", req.Path)

	method := strings.ToUpper(req.HTTPMethod)
	if method != http.MethodGet && method != http.MethodHead {
		resp := textResponse(http.StatusMethodNotAllowed, corrID, "method not allowed")
		resp.Headers["Allow"] = "GET, HEAD"
		logger.Info("request rejected", "status", resp.StatusCode)
		return resp, nil
	}

	var resp events.APIGatewayProxyResponse
	switch path := requestPath(req); {
	case path == pagePath:
		resp = h.page(ctx, req, corrID, logger)
	case strings.HasPrefix(path, assetPrefix):
		resp = h.asset(ctx, path, corrID, logger)
	default:
		resp = textResponse(http.StatusNotFound, corrID, "not found")
	}

	if method == http.MethodHead {
		resp.Body = ""
		resp.IsBase64Encoded = false
	}
	logger.Info("request served", "status", resp.StatusCode)
	return resp, nil
}

func (h *Handler) page(ctx context.Context, req events.APIGatewayProxyRequest, corrID string, logger *slog.Logger) events.APIGatewayProxyResponse {
	out, err := h.landing.Render(ctx, usecase.LandingInput{
		CookieHeader: cookieHeader(req),
		Query:        queryParams(req),
	})
	if err != nil {
		status := statusFor(err)
		logger.Error("render landing page", "status", status, "err", err)
		return textResponse(status, corrID, http.StatusText(status))
	}

	headers := map[string]string{
		"Content-Type":  "text/html; charset=utf-8",
		"Cache-Control": "no-store",
		correlationID:   corrID,
	}
	if out.SetCookie != "" {
		headers["Set-Cookie"] = out.SetCookie
	}
	logger.Info("landing page rendered", "hasWish", out.Wish != "", "drawn", out.SetCookie != "")
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    headers,
		Body:       out.HTML,
	}
}

func (h *Handler) asset(ctx context.Context, path, corrID string, logger *slog.Logger) events.APIGatewayProxyResponse {
	out, err := h.landing.Asset(ctx, path)
	if err != nil {
		status := statusFor(err)
		if status != http.StatusNotFound {
			logger.Error("load asset", "status", status, "err", err)
		}
		return textResponse(status, corrID, http.StatusText(status))
	}
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":  out.ContentType,
			"Cache-Control": "public, max-age=86400",
			correlationID:   corrID,
		},
		Body:            base64.StdEncoding.EncodeToString(out.Body),
		IsBase64Encoded: true,
	}
}

func statusFor(err error) int {
	var usecaseErr *usecase.Error
	if !errors.As(err, &usecaseErr) {
		return http.StatusInternalServerError
	}
	switch usecaseErr.Code {
	case usecase.ErrorNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func textResponse(status int, corrID, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":  "text/plain; charset=utf-8",
			"Cache-Control": "no-store",
			correlationID:   corrID,
		},
		Body: body,
	}
}

func requestPath(req events.APIGatewayProxyRequest) string {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return pagePath
	}
	return path
}

// queryParams flattens the query string to the first value of each key.
// API Gateway's single-value map keeps the last one, so the multi-value map
// wins when present.
func queryParams(req events.APIGatewayProxyRequest) map[string]string {
	if len(req.MultiValueQueryStringParameters) == 0 {
		return req.QueryStringParameters
	}
	params := make(map[string]string, len(req.MultiValueQueryStringParameters))
	for k, v := range req.QueryStringParameters {
		params[k] = v
	}
	for k, values := range req.MultiValueQueryStringParameters {
		if len(values) > 0 {
			params[k] = values[0]
		}
	}
	return params
}

// cookieHeader returns the raw Cookie header regardless of how API Gateway
// cased or split it.
func cookieHeader(req events.APIGatewayProxyRequest) string {
	for k, values := range req.MultiValueHeaders {
		if strings.EqualFold(k, "cookie") && len(values) > 0 {
			return strings.Join(values, "; ")
		}
	}
	return headerValue(req.Headers, "cookie")
}

func headerValue(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

func resolveCorrelationID(req events.APIGatewayProxyRequest) string {
	if v := strings.TrimSpace(headerValue(req.Headers, correlationID)); v != "" {
		return v
	}
	if v := strings.TrimSpace(req.RequestContext.RequestID); v != "" {
		return v
	}
	return newUUID()
}

var newUUID = func() string {
	return uuid.NewString()
}
