package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"

	"github.com/autoventa/lead-intake/internal/app/bootstrap"
	appconfig "github.com/autoventa/lead-intake/internal/config"
	"github.com/autoventa/lead-intake/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	rt, err := bootstrap.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}

	lambda.Start(func(ctx context.Context, evt events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		return serve(ctx, rt.Handler, evt)
	})
}

// serve translates one API Gateway v2 event into a plain HTTP request,
// runs it through the router, and translates the response back.
func serve(ctx context.Context, h http.Handler, evt events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	body := evt.Body
	if evt.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(evt.Body)
		if err != nil {
			return events.APIGatewayV2HTTPResponse{
				StatusCode: http.StatusBadRequest,
				Headers:    map[string]string{"Content-Type": "application/json"},
				Body:       `{"error": "Invalid JSON body"}`,
			}, nil
		}
		body = string(decoded)
	}

	path := evt.RawPath
	if path == "" {
		path = "/"
	}
	target := path
	if evt.RawQueryString != "" {
		target += "?" + evt.RawQueryString
	}

	method := strings.ToUpper(strings.TrimSpace(evt.RequestContext.HTTP.Method))
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, target, strings.NewReader(body))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"error": "Internal server error"}`,
		}, nil
	}
	for k, v := range evt.Headers {
		req.Header.Set(k, v)
	}
	if ip := evt.RequestContext.HTTP.SourceIP; ip != "" {
		req.RemoteAddr = ip + ":0"
		if req.Header.Get("X-Forwarded-For") == "" {
			req.Header.Set("X-Forwarded-For", ip)
		}
	}

	rec := &responseRecorder{header: http.Header{}, status: http.StatusOK}
	h.ServeHTTP(rec, req)

	headers := make(map[string]string, len(rec.header))
	for k := range rec.header {
		headers[k] = rec.header.Get(k)
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: rec.status,
		Headers:    headers,
		Body:       rec.body.String(),
	}, nil
}

// responseRecorder captures the router's response for translation back
// into an API Gateway payload.
type responseRecorder struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func (r *responseRecorder) Header() http.Header { return r.header }

func (r *responseRecorder) Write(p []byte) (int, error) { return r.body.Write(p) }

func (r *responseRecorder) WriteHeader(status int) { r.status = status }
