// Package encryption encrypts PHI fields (mood context, personal prayer
// context) with KMS before they are persisted.
package encryption

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/kms"
)

type KMSClient struct {
	client *kms.Client
	keyID  string
}

func NewKMSClient(ctx context.Context) (*KMSClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %v", err)
	}

	keyID := os.Getenv("KMS_KEY_ID")
	if keyID == "" {
		return nil, fmt.Errorf("KMS_KEY_ID environment variable is required")
	}

	return &KMSClient{
		client: kms.NewFromConfig(cfg),
		keyID:  keyID,
	}, nil
}

// EncryptPHI encrypts a plaintext PHI string and returns it base64-encoded
// for storage. Empty strings pass through unchanged.
func (k *KMSClient) EncryptPHI(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	result, err := k.client.Encrypt(ctx, &kms.EncryptInput{
		KeyId:     aws.String(k.keyID),
		Plaintext: []byte(plaintext),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encrypt PHI: %v", err)
	}

	return base64.StdEncoding.EncodeToString(result.CiphertextBlob), nil
}

// DecryptPHI reverses EncryptPHI.
func (k *KMSClient) DecryptPHI(ctx context.Context, ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	blob, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext: %v", err)
	}

	result, err := k.client.Decrypt(ctx, &kms.DecryptInput{
		KeyId:          aws.String(k.keyID),
		CiphertextBlob: blob,
	})
	if err != nil {
		return "", fmt.Errorf("failed to decrypt PHI: %v", err)
	}

	return string(result.Plaintext), nil
}
