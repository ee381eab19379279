// Package config lee la configuración del proceso desde env, en el mismo
// espíritu que logger.NewFromEnv. No hay archivo de config: todo lo que el
// servicio necesita cabe en variables de entorno.
package config

import (
	"os"
	"strings"
)

// Backend selecciona dónde se guardan las fotos.
type Backend string

const (
	// BackendS3 sube las fotos a un object store S3-compatible.
	BackendS3 Backend = "s3"

	// BackendDisk guarda las fotos en disco local (revisión temprana).
	BackendDisk Backend = "disk"

	// BackendNone deshabilita fotos: el servicio opera solo con metadata.
	BackendNone Backend = "none"
)

type S3 struct {
	Endpoint string // vacío = endpoint por defecto del SDK
	Region   string
	Bucket   string

	// Credenciales estáticas (estilo MinIO root user). Tienen prioridad
	// sobre CredentialsFile.
	AccessKeyID     string
	SecretAccessKey string

	// CredentialsFile apunta al JSON de credenciales persistidas.
	// Vacío = cadena por defecto del SDK (env, perfiles, IMDS).
	CredentialsFile string
}

type Config struct {
	Addr  string
	DBDSN string // vacío = store in-memory (modo dev)

	StorageBackend Backend
	S3             S3
	PhotosDir      string // raíz del backend disk
}

func FromEnv() Config {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	return Config{
		Addr:           addr,
		DBDSN:          os.Getenv("DB_DSN"),
		StorageBackend: parseBackend(os.Getenv("STORAGE_BACKEND")),
		S3: S3{
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			Region:          os.Getenv("S3_REGION"),
			Bucket:          os.Getenv("S3_BUCKET"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
			CredentialsFile: os.Getenv("S3_CREDENTIALS_FILE"),
		},
		PhotosDir: envOr("PHOTOS_DIR", "photos"),
	}
}

func parseBackend(s string) Backend {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s3":
		return BackendS3
	case "disk":
		return BackendDisk
	case "none", "":
		return BackendNone
	default:
		return BackendNone
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
