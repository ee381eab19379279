// Package s3 implementa el gateway de fotos sobre un object store
// S3-compatible (AWS o MinIO).
//
// No hay carpetas reales: la "carpeta" de un gato es el prefijo
// determinístico "photos-of-cats/<id>/", derivado solo de la primary key.
// El nombre visible vive en la metadata de un objeto marcador ".folder",
// así el rename es una operación de metadata y nunca hay que buscar
// carpetas por nombre.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"

	"animal-shelter/internal/platform/config"
	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/ports/objectstore"
)

const (
	rootPrefix   = "photos-of-cats/"
	rootName     = "Photos of cats"
	folderMarker = ".folder"

	metaDisplayName = "display-name"
)

type Gateway struct {
	client   *s3.Client
	bucket   string
	endpoint string
	region   string
	log      logger.Logger
}

// New construye el gateway. El credential provider se decide acá una sola
// vez e inyecta en el cliente: estáticas (estilo MinIO), archivo JSON
// rotado externamente, o la cadena default del SDK.
func New(ctx context.Context, cfg config.S3, log logger.Logger) (*Gateway, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	switch {
	case cfg.AccessKeyID != "":
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	case cfg.CredentialsFile != "":
		opts = append(opts, awsconfig.WithCredentialsProvider(
			NewFileCredentials(cfg.CredentialsFile),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // MinIO
		}
	})

	return &Gateway{
		client:   client,
		bucket:   cfg.Bucket,
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		region:   cfg.Region,
		log:      log,
	}, nil
}

func (g *Gateway) EnsureRootFolder(ctx context.Context) (string, error) {
	if err := g.ensureMarker(ctx, rootPrefix, rootName); err != nil {
		return "", err
	}
	return rootPrefix, nil
}

func (g *Gateway) EnsureCatFolder(ctx context.Context, root string, catID int64, name string) (string, error) {
	folder := fmt.Sprintf("%s%d/", root, catID)
	if err := g.ensureMarker(ctx, folder, displayName(catID, name)); err != nil {
		return "", err
	}
	return folder, nil
}

func (g *Gateway) ensureMarker(ctx context.Context, folder, name string) error {
	key := folder + folderMarker

	_, err := g.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return nil
	}
	if cerr := classify(err); !errors.Is(cerr, objectstore.ErrNotFound) {
		return cerr
	}

	_, err = g.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:   aws.String(g.bucket),
		Key:      aws.String(key),
		Body:     bytes.NewReader(nil),
		Metadata: map[string]string{metaDisplayName: name},
	})
	if err != nil {
		return classify(err)
	}
	return nil
}

func (g *Gateway) UploadFiles(ctx context.Context, folder string, files []objectstore.File) ([]objectstore.Upload, error) {
	uploads := make([]objectstore.Upload, 0, len(files))
	for _, f := range files {
		key := folder + uuid.NewString() + strings.ToLower(filepath.Ext(f.Name))

		_, err := g.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(g.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(f.Content),
			ContentType: aws.String(f.ContentType),
			Metadata:    map[string]string{"original-name": f.Name},
		})
		if err != nil {
			// Devolvemos lo ya subido para que el caller compense.
			return uploads, classify(err)
		}

		uploads = append(uploads, objectstore.Upload{
			URL:    g.publicURL(key),
			FileID: key,
		})
	}
	return uploads, nil
}

func (g *Gateway) RenameFolder(ctx context.Context, folder string, newName string) error {
	catID, ok := catIDFromFolder(folder)
	if !ok {
		return fmt.Errorf("%w: malformed folder %q", objectstore.ErrService, folder)
	}

	// El marcador tiene que existir: renombrar una carpeta inexistente es
	// NotFound, no un create implícito.
	key := folder + folderMarker
	if _, err := g.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return classify(err)
	}

	_, err := g.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:   aws.String(g.bucket),
		Key:      aws.String(key),
		Body:     bytes.NewReader(nil),
		Metadata: map[string]string{metaDisplayName: displayName(catID, newName)},
	})
	if err != nil {
		return classify(err)
	}
	return nil
}

func (g *Gateway) ListFileIDs(ctx context.Context, folder string) ([]string, error) {
	keys, err := g.listKeys(ctx, folder)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if strings.HasSuffix(k, folderMarker) {
			continue
		}
		out = append(out, k)
	}
	return out, nil
}

func (g *Gateway) DeleteFile(ctx context.Context, fileID string) error {
	_, err := g.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(fileID),
	})
	if err != nil {
		return classify(err)
	}
	return nil
}

func (g *Gateway) DeleteFolder(ctx context.Context, folder string) error {
	keys, err := g.listKeys(ctx, folder)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return objectstore.ErrNotFound
	}

	// DeleteObjects acepta hasta 1000 keys por lote.
	for start := 0; start < len(keys); start += 1000 {
		end := start + 1000
		if end > len(keys) {
			end = len(keys)
		}

		ids := make([]types.ObjectIdentifier, 0, end-start)
		for _, k := range keys[start:end] {
			ids = append(ids, types.ObjectIdentifier{Key: aws.String(k)})
		}

		out, err := g.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(g.bucket),
			Delete: &types.Delete{Objects: ids, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return classify(err)
		}
		// Con Quiet los rechazos por key llegan en Errors con respuesta
		// 200: un lote a medias no es un borrado exitoso.
		if len(out.Errors) > 0 {
			e := out.Errors[0]
			return fmt.Errorf("%w: delete %s: %s (%d keys failed)",
				objectstore.ErrService, aws.ToString(e.Key), aws.ToString(e.Code), len(out.Errors))
		}
	}

	g.log.Info("deleted folder", map[string]any{"folder": folder, "objects": len(keys)})
	return nil
}

func (g *Gateway) listKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string

	p := s3.NewListObjectsV2Paginator(g.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(g.bucket),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, classify(err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}

func (g *Gateway) publicURL(key string) string {
	if g.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", g.endpoint, g.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", g.bucket, g.region, key)
}

func displayName(catID int64, name string) string {
	return fmt.Sprintf("%d - %s", catID, name)
}

func catIDFromFolder(folder string) (int64, bool) {
	rest := strings.TrimPrefix(folder, rootPrefix)
	rest = strings.TrimSuffix(rest, "/")
	if rest == "" || strings.Contains(rest, "/") {
		return 0, false
	}

	var id int64
	if _, err := fmt.Sscanf(rest, "%d", &id); err != nil {
		return 0, false
	}
	return id, true
}

// classify traduce errores del SDK a la taxonomía del puerto.
func classify(err error) error {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return objectstore.ErrNotFound
	}
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return objectstore.ErrNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "NotFound":
			return objectstore.ErrNotFound
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch",
			"ExpiredToken", "TokenRefreshRequired":
			return fmt.Errorf("%w: %s", objectstore.ErrUnauthorized, apiErr.ErrorCode())
		}
	}
	return fmt.Errorf("%w: %v", objectstore.ErrService, err)
}

var _ objectstore.Gateway = (*Gateway)(nil)
