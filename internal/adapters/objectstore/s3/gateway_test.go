package s3

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/ports/objectstore"
)

// newStubGateway arma el gateway contra un endpoint S3 falso, igual que
// contra MinIO: path-style y credenciales estáticas.
func newStubGateway(t *testing.T, handler http.HandlerFunc) *Gateway {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client := s3.NewFromConfig(aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("test", "test", ""),
	}, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(ts.URL)
		o.UsePathStyle = true
		o.RetryMaxAttempts = 1
	})

	return &Gateway{
		client:   client,
		bucket:   "shelter",
		endpoint: ts.URL,
		region:   "us-east-1",
		log:      logger.Nop(),
	}
}

func writeXML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` + body))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"types.NotFound", &types.NotFound{}, objectstore.ErrNotFound},
		{"types.NoSuchKey", &types.NoSuchKey{}, objectstore.ErrNotFound},
		{"NoSuchBucket code", &smithy.GenericAPIError{Code: "NoSuchBucket"}, objectstore.ErrNotFound},
		{"AccessDenied", &smithy.GenericAPIError{Code: "AccessDenied"}, objectstore.ErrUnauthorized},
		{"InvalidAccessKeyId", &smithy.GenericAPIError{Code: "InvalidAccessKeyId"}, objectstore.ErrUnauthorized},
		{"ExpiredToken", &smithy.GenericAPIError{Code: "ExpiredToken"}, objectstore.ErrUnauthorized},
		{"SlowDown", &smithy.GenericAPIError{Code: "SlowDown"}, objectstore.ErrService},
		{"plain error", errors.New("connection refused"), objectstore.ErrService},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, classify(tc.err), tc.want)
		})
	}
}

func TestCatIDFromFolder(t *testing.T) {
	cases := []struct {
		folder string
		want   int64
		ok     bool
	}{
		{"photos-of-cats/12/", 12, true},
		{"photos-of-cats/1/", 1, true},
		{"photos-of-cats/", 0, false},
		{"photos-of-cats/abc/", 0, false},
		{"photos-of-cats/1/extra/", 0, false},
	}
	for _, tc := range cases {
		id, ok := catIDFromFolder(tc.folder)
		assert.Equal(t, tc.ok, ok, tc.folder)
		if tc.ok {
			assert.Equal(t, tc.want, id, tc.folder)
		}
	}
}

func TestDeleteFolder_PartialBatchFailureIsAnError(t *testing.T) {
	g := newStubGateway(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Query().Get("list-type") == "2":
			writeXML(w, http.StatusOK, `
				<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
					<Name>shelter</Name>
					<KeyCount>2</KeyCount>
					<IsTruncated>false</IsTruncated>
					<Contents><Key>photos-of-cats/9/.folder</Key></Contents>
					<Contents><Key>photos-of-cats/9/a.jpg</Key></Contents>
				</ListBucketResult>`)
		case r.Method == http.MethodPost && r.URL.Query().Has("delete"):
			// 200 con rechazos por key: el caso que no llega como err.
			writeXML(w, http.StatusOK, `
				<DeleteResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
					<Error>
						<Key>photos-of-cats/9/a.jpg</Key>
						<Code>AccessDenied</Code>
						<Message>Access Denied</Message>
					</Error>
				</DeleteResult>`)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL)
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	err := g.DeleteFolder(context.Background(), "photos-of-cats/9/")
	require.ErrorIs(t, err, objectstore.ErrService)
	assert.Contains(t, err.Error(), "photos-of-cats/9/a.jpg")
}

func TestDeleteFolder_EmptyPrefixIsNotFound(t *testing.T) {
	g := newStubGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "2", r.URL.Query().Get("list-type"))
		writeXML(w, http.StatusOK, `
			<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
				<Name>shelter</Name>
				<KeyCount>0</KeyCount>
				<IsTruncated>false</IsTruncated>
			</ListBucketResult>`)
	})

	err := g.DeleteFolder(context.Background(), "photos-of-cats/404/")
	assert.ErrorIs(t, err, objectstore.ErrNotFound)
}

func TestUploadFiles_PartialFailureReturnsUploadsSoFar(t *testing.T) {
	var puts int
	g := newStubGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		puts++
		if puts == 1 {
			w.WriteHeader(http.StatusOK)
			return
		}
		writeXML(w, http.StatusForbidden, `
			<Error>
				<Code>AccessDenied</Code>
				<Message>Access Denied</Message>
			</Error>`)
	})

	uploads, err := g.UploadFiles(context.Background(), "photos-of-cats/3/", []objectstore.File{
		{Name: "a.jpg", ContentType: "image/jpeg", Content: []byte("a")},
		{Name: "b.jpg", ContentType: "image/jpeg", Content: []byte("b")},
	})

	// El primero ya quedó subido: se devuelve para que el caller compense.
	require.ErrorIs(t, err, objectstore.ErrUnauthorized)
	require.Len(t, uploads, 1)
	assert.Contains(t, uploads[0].FileID, "photos-of-cats/3/")
	assert.Equal(t, fmt.Sprintf("%s/shelter/%s", g.endpoint, uploads[0].FileID), uploads[0].URL)
}

func TestRenameFolder_MissingMarkerIsNotFound(t *testing.T) {
	g := newStubGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusNotFound)
	})

	err := g.RenameFolder(context.Background(), "photos-of-cats/5/", "Nina")
	assert.ErrorIs(t, err, objectstore.ErrNotFound)
}

func TestRenameFolder_MalformedFolder(t *testing.T) {
	g := newStubGateway(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected for malformed folder, got %s %s", r.Method, r.URL)
	})

	err := g.RenameFolder(context.Background(), "not-a-folder", "Nina")
	assert.ErrorIs(t, err, objectstore.ErrService)
}

func TestListFileIDs_SkipsFolderMarkers(t *testing.T) {
	g := newStubGateway(t, func(w http.ResponseWriter, r *http.Request) {
		writeXML(w, http.StatusOK, `
			<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
				<Name>shelter</Name>
				<KeyCount>3</KeyCount>
				<IsTruncated>false</IsTruncated>
				<Contents><Key>photos-of-cats/9/.folder</Key></Contents>
				<Contents><Key>photos-of-cats/9/a.jpg</Key></Contents>
				<Contents><Key>photos-of-cats/9/b.png</Key></Contents>
			</ListBucketResult>`)
	})

	ids, err := g.ListFileIDs(context.Background(), "photos-of-cats/9/")
	require.NoError(t, err)
	assert.Equal(t, []string{"photos-of-cats/9/a.jpg", "photos-of-cats/9/b.png"}, ids)
}

func TestPublicURL(t *testing.T) {
	withEndpoint := &Gateway{bucket: "shelter", endpoint: "http://minio:9000", region: "us-east-1"}
	assert.Equal(t, "http://minio:9000/shelter/photos-of-cats/1/x.jpg",
		withEndpoint.publicURL("photos-of-cats/1/x.jpg"))

	awsStyle := &Gateway{bucket: "shelter", region: "eu-west-1"}
	assert.Equal(t, "https://shelter.s3.eu-west-1.amazonaws.com/photos-of-cats/1/x.jpg",
		awsStyle.publicURL("photos-of-cats/1/x.jpg"))
}
