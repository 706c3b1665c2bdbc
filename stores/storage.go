package stores

import (
	"context"
	"os"
	"portfolio-gallery/core"
	"portfolio-gallery/stores/aws"
	"portfolio-gallery/stores/filesystem"
	"portfolio-gallery/stores/memory"
	"portfolio-gallery/stores/sqlite"
	"strconv"

	"github.com/sirupsen/logrus"
)

// GetStore builds the key/value backend selected by STORAGE_TYPE.
func GetStore(ctx context.Context) core.KeyValueStore {
	storageType := os.Getenv("STORAGE_TYPE")
	var store core.KeyValueStore

	storageField := logrus.Fields{
		"storageType": storageType,
	}

	switch storageType {
	case "filesystem":
		basePath := os.Getenv("LOCAL_STORAGE_PATH")
		if basePath == "" {
			basePath = "./data" // Default path
		}
		storageField["basePath"] = basePath
		fsStore, err := filesystem.NewStore(basePath)
		if err != nil {
			logrus.WithFields(storageField).Fatal(err)
		}
		store = fsStore
	case "sqlite":
		dataSourceName := os.Getenv("DATA_SOURCE_NAME")
		if dataSourceName == "" {
			dataSourceName = "gallery.db" // Default filename
		}
		storageField["dataSourceName"] = dataSourceName
		sqlStore, err := sqlite.NewStore(dataSourceName)
		if err != nil {
			logrus.WithFields(storageField).Fatal(err)
		}
		store = sqlStore
	case "s3":
		bucketName := os.Getenv("S3_BUCKET_NAME")
		if bucketName == "" {
			logrus.Fatal("S3_BUCKET_NAME environment variable must be set for s3 storage type")
		}
		storageField["bucketName"] = bucketName
		s3Store, err := aws.NewStore(ctx, bucketName, aws.Options{
			Prefix:          os.Getenv("S3_PREFIX"),
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			Region:          os.Getenv("S3_REGION"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		})
		if err != nil {
			logrus.WithFields(storageField).Fatal(err)
		}
		store = s3Store
	default:
		quota := EnvInt64("STORAGE_QUOTA_BYTES", 0)
		storageField["storageType"] = "in-memory"
		storageField["quota"] = quota
		store = memory.NewStore(quota)
	}
	logrus.WithFields(storageField).Info("Use storage")
	return store
}

// EnvInt64 reads a non-negative integer from the environment, falling back
// to def when unset or malformed.
func EnvInt64(name string, def int64) int64 {
	raw := os.Getenv(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		logrus.WithField("variable", name).Warnf("Ignoring invalid value %q", raw)
		return def
	}
	return v
}
