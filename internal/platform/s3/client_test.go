package s3

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// testClient creates a Client backed by a test HTTP server.
// The handler receives real S3 XML-protocol requests.
func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	api := s3.New(s3.Options{
		Region:       "us-west-2",
		BaseEndpoint: aws.String(server.URL),
		UsePathStyle: true,
		Credentials:  credentials.NewStaticCredentialsProvider("test-key", "test-secret", ""),
		HTTPClient:   &http.Client{Transport: &http.Transport{}},

		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
	})
	return New(api, "deploy-history")
}

// xmlResponse writes an S3-style XML response.
func xmlResponse(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(body))
}

func TestNewClient_RequiresBucket(t *testing.T) {
	_, err := NewClient(context.Background(), Options{Region: "us-west-2"})
	if !errors.Is(err, ErrNoBucket) {
		t.Fatalf("expected ErrNoBucket, got %v", err)
	}
}

func TestNewClient(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "test-key")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test-secret")

	client, err := NewClient(context.Background(), Options{
		Bucket:    "deploy-history",
		Region:    "us-west-2",
		Endpoint:  "http://localhost:9000",
		PathStyle: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Bucket() != "deploy-history" {
		t.Errorf("expected bucket deploy-history, got %s", client.Bucket())
	}
}

func TestBucketExists(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		want    bool
		wantErr bool
	}{
		{"exists", http.StatusOK, true, false},
		{"missing", http.StatusNotFound, false, false},
		{"forbidden", http.StatusForbidden, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodHead {
					t.Errorf("expected HEAD, got %s", r.Method)
				}
				w.WriteHeader(tt.status)
			}))

			got, err := client.BucketExists(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("BucketExists() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("BucketExists() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPutObject(t *testing.T) {
	var (
		mu          sync.Mutex
		gotPath     string
		gotBody     string
		contentType string
	)
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		gotPath = r.URL.Path
		gotBody = string(body)
		contentType = r.Header.Get("Content-Type")
		mu.Unlock()
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	}))

	err := client.PutObject(context.Background(), "rswatch/airline/latest.json", []byte(`{"progress":40}`), "application/json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if gotPath != "/deploy-history/rswatch/airline/latest.json" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if !strings.Contains(gotBody, `{"progress":40}`) {
		t.Errorf("unexpected body %q", gotBody)
	}
	if contentType != "application/json" {
		t.Errorf("unexpected content type %q", contentType)
	}
}

func TestPutObject_Error(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		xmlResponse(w, http.StatusForbidden, `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`)
	}))

	err := client.PutObject(context.Background(), "k", []byte("x"), "")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) || apiErr.ErrorCode() != "AccessDenied" {
		t.Errorf("expected AccessDenied API error, got %v", err)
	}
}

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"typed no such bucket", &s3types.NoSuchBucket{}, true},
		{"typed not found", &s3types.NotFound{}, true},
		{"generic not found code", &smithy.GenericAPIError{Code: "NotFound"}, true},
		{"status code", &smithy.GenericAPIError{Code: "404"}, true},
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNotFoundError(tt.err); got != tt.want {
				t.Errorf("isNotFoundError() = %v, want %v", got, tt.want)
			}
		})
	}
}
