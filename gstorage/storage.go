// Package gstorage ships the sqlite db file to a Google Cloud Storage
// bucket on a schedule, so a lost device does not mean a lost contact list.
package gstorage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"github.com/lifeline-sos/lifeline/logger"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

var ErrObjectNotExist = storage.ErrObjectNotExist

var logg = logger.NewLogger()

type GStorage struct {
	storageClient *storage.Client
}

func NewGStorage(credentialsFilePath string) (*GStorage, error) {
	var client *storage.Client
	var err error

	if credentialsFilePath != "" {
		client, err = storage.NewClient(context.Background(), option.WithCredentialsFile(credentialsFilePath))
	} else {
		client, err = storage.NewClient(context.Background())
	}

	if err != nil {
		return nil, errors.Wrap(err, "NewGStorage")
	}

	return &GStorage{storageClient: client}, nil
}

// UploadFile uploads the file at filePath as '<prefix>/<basename>'.
func (gs *GStorage) UploadFile(bucket, prefix, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return errors.Wrap(err, "os.Open")
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*50)
	defer cancel()

	object := objectName(prefix, filePath)
	wc := gs.storageClient.Bucket(bucket).Object(object).NewWriter(ctx)
	if _, err = io.Copy(wc, f); err != nil {
		return errors.Wrap(err, "io.Copy")
	}
	if err := wc.Close(); err != nil {
		return errors.Wrap(err, "Writer.Close")
	}

	logg.Infof("Backup %v uploaded", object)
	return nil
}

// DownloadFile restores an object to destFileName. A missing object is
// returned as ErrObjectNotExist so callers can treat it as "no backup yet".
func (gs *GStorage) DownloadFile(bucket, object, destFileName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*50)
	defer cancel()

	rc, err := gs.storageClient.Bucket(bucket).Object(object).NewReader(ctx)
	if err == storage.ErrObjectNotExist {
		return err
	}
	if err != nil {
		return errors.Wrapf(err, "Object(%q).NewReader", object)
	}
	defer rc.Close()

	f, err := os.Create(destFileName)
	if err != nil {
		return errors.Wrap(err, "os.Create")
	}

	if _, err := io.Copy(f, rc); err != nil {
		return errors.Wrap(err, "io.Copy")
	}

	if err = f.Close(); err != nil {
		return errors.Wrap(err, "f.Close")
	}

	logg.Infof("Backup %v downloaded to %v", object, destFileName)
	return nil
}

func objectName(prefix, filePath string) string {
	if prefix == "" {
		return filepath.Base(filePath)
	}

	return prefix + "/" + filepath.Base(filePath)
}
