package s3backup

import (
	"sync"

	"github.com/gofiber/fiber/v2/log"
)

var (
	clientOnce   sync.Once
	sharedClient *Client
)

// getClient lazily builds the shared backup client. Returns nil when backup
// is disabled or misconfigured.
func getClient() *Client {
	clientOnce.Do(func() {
		cfg, err := LoadConfig()
		if err != nil {
			log.Warnf("[S3Backup] invalid configuration: %v", err)
			return
		}
		if !cfg.IsEnabled() {
			return
		}
		client, err := NewClient(cfg)
		if err != nil {
			log.Warnf("[S3Backup] client unavailable: %v", err)
			return
		}
		sharedClient = client
	})
	return sharedClient
}

// BackupPostImage copies a stored post image to S3 in the background.
// A no-op when backup is disabled.
func BackupPostImage(relPath string) {
	client := getClient()
	if client == nil || relPath == "" {
		return
	}
	go func() {
		if err := client.UploadFile(relPath, client.config.GetObjectKey(relPath)); err != nil {
			log.Errorf("[S3Backup] upload failed for %s: %v", relPath, err)
		}
	}()
}

// RemoveBackup deletes the S3 copy of a post image in the background.
func RemoveBackup(relPath string) {
	client := getClient()
	if client == nil || relPath == "" {
		return
	}
	go func() {
		if err := client.DeleteFile(client.config.GetObjectKey(relPath)); err != nil {
			log.Errorf("[S3Backup] delete failed for %s: %v", relPath, err)
		}
	}()
}
