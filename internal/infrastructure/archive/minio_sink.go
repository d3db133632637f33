// Package archive keeps a copy of every fraud report in object storage.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
	"github.com/jayanth2212/AgriSure/internal/domain/port"
)

// SinkName identifies this sink in confirmations.
const SinkName = "minio"

// ObjectStore is the subset of *minio.Client the sink uses.
type ObjectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewClient builds a MinIO client for cfg.
func NewClient(cfg Config) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}
	return client, nil
}

// ReportSink implements port.ReportSink by writing one JSON object per
// assessment.
type ReportSink struct {
	store  ObjectStore
	bucket string
	logger *slog.Logger
	now    func() time.Time
}

func NewReportSink(store ObjectStore, bucket string, logger *slog.Logger) *ReportSink {
	return &ReportSink{store: store, bucket: bucket, logger: logger, now: time.Now}
}

// EnsureBucket creates the report bucket if it does not exist.
func (s *ReportSink) EnsureBucket(ctx context.Context) error {
	exists, err := s.store.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.store.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("error creating bucket %s: %w", s.bucket, err)
	}
	s.logger.Info("created report bucket", "bucket", s.bucket)
	return nil
}

// ObjectName is where the report for an assessment is stored.
func ObjectName(farmerID string, report model.FraudReport) string {
	return fmt.Sprintf("reports/%s/%s/%s.json",
		url.PathEscape(farmerID),
		report.AnalysisTimestamp.UTC().Format("2006/01"),
		report.AssessmentID,
	)
}

func (s *ReportSink) Persist(ctx context.Context, farmerID string, assessment *model.FraudAssessment, externalRecordHash string) (port.Confirmation, error) {
	report := assessment.Report()
	report.FarmerID = farmerID
	report.LedgerHash = externalRecordHash
	payload, err := json.Marshal(report)
	if err != nil {
		return port.Confirmation{}, fmt.Errorf("failed to marshal fraud report: %w", err)
	}

	name := ObjectName(farmerID, report)
	opts := minio.PutObjectOptions{
		ContentType: "application/json",
		UserMetadata: map[string]string{
			"risk-level":  report.RiskLevel,
			"ledger-hash": externalRecordHash,
		},
	}
	if _, err := s.store.PutObject(ctx, s.bucket, name, bytes.NewReader(payload), int64(len(payload)), opts); err != nil {
		return port.Confirmation{}, fmt.Errorf("failed to upload %s to bucket %s: %w", name, s.bucket, err)
	}

	s.logger.Debug("fraud report archived", "bucket", s.bucket, "object", name, "bytes", len(payload))
	return port.Confirmation{
		Sink:        SinkName,
		Reference:   "s3://" + s.bucket + "/" + name,
		PersistedAt: s.now().UTC(),
	}, nil
}
