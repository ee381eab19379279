package s3

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// credentialsFile es el formato del JSON de credenciales persistidas.
// Reemplaza al token file de revisiones anteriores: un proceso externo lo
// rota y acá solo se relee cuando la credencial vence.
type credentialsFile struct {
	AccessKeyID     string    `json:"access_key_id"`
	SecretAccessKey string    `json:"secret_access_key"`
	SessionToken    string    `json:"session_token"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// FileCredentials implementa aws.CredentialsProvider leyendo el archivo en
// cada Retrieve. Se usa envuelto en aws.NewCredentialsCache, así la
// relectura solo ocurre al expirar.
type FileCredentials struct {
	Path string
}

func NewFileCredentials(path string) aws.CredentialsProvider {
	return aws.NewCredentialsCache(FileCredentials{Path: path})
}

func (p FileCredentials) Retrieve(ctx context.Context) (aws.Credentials, error) {
	raw, err := os.ReadFile(p.Path)
	if err != nil {
		return aws.Credentials{}, fmt.Errorf("read credentials file: %w", err)
	}

	var f credentialsFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return aws.Credentials{}, fmt.Errorf("parse credentials file: %w", err)
	}
	if f.AccessKeyID == "" || f.SecretAccessKey == "" {
		return aws.Credentials{}, fmt.Errorf("credentials file %s: missing key material", p.Path)
	}

	creds := aws.Credentials{
		AccessKeyID:     f.AccessKeyID,
		SecretAccessKey: f.SecretAccessKey,
		SessionToken:    f.SessionToken,
		Source:          "animal-shelter file provider",
	}
	if !f.ExpiresAt.IsZero() {
		creds.CanExpire = true
		creds.Expires = f.ExpiresAt
	}
	return creds, nil
}
