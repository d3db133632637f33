package archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
)

type fakeStore struct {
	exists  bool
	made    []string
	puts    map[string][]byte
	opts    map[string]minio.PutObjectOptions
	putErr  error
	headErr error
}

func (f *fakeStore) BucketExists(context.Context, string) (bool, error) {
	return f.exists, f.headErr
}

func (f *fakeStore) MakeBucket(_ context.Context, bucket string, _ minio.MakeBucketOptions) error {
	f.made = append(f.made, bucket)
	return nil
}

func (f *fakeStore) PutObject(_ context.Context, bucket, name string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	if int64(len(body)) != size {
		return minio.UploadInfo{}, errors.New("size mismatch")
	}
	if f.puts == nil {
		f.puts = map[string][]byte{}
		f.opts = map[string]minio.PutObjectOptions{}
	}
	f.puts[bucket+"/"+name] = body
	f.opts[bucket+"/"+name] = opts
	return minio.UploadInfo{Bucket: bucket, Key: name, Size: size}, nil
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func completedAssessment(t *testing.T) *model.FraudAssessment {
	t.Helper()
	a, err := model.NewFraudAssessment(uuid.New(), "F-100")
	require.NoError(t, err)
	require.NoError(t, a.Complete(model.SubScores{}, decimal.RequireFromString("0.7"),
		[]string{"Claim timing outside normal patterns"}, nil,
		time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)))
	return a
}

func TestEnsureBucket(t *testing.T) {
	store := &fakeStore{}
	require.NoError(t, NewReportSink(store, "fraud-reports", quiet).EnsureBucket(context.Background()))
	assert.Equal(t, []string{"fraud-reports"}, store.made)

	store = &fakeStore{exists: true}
	require.NoError(t, NewReportSink(store, "fraud-reports", quiet).EnsureBucket(context.Background()))
	assert.Empty(t, store.made)

	store = &fakeStore{headErr: errors.New("access denied")}
	assert.ErrorContains(t, NewReportSink(store, "fraud-reports", quiet).EnsureBucket(context.Background()), "access denied")
}

func TestPersist(t *testing.T) {
	store := &fakeStore{}
	a := completedAssessment(t)

	conf, err := NewReportSink(store, "fraud-reports", quiet).Persist(context.Background(), "F-100", a, "0xabc")
	require.NoError(t, err)

	name := "reports/F-100/2024/06/" + a.ID().String() + ".json"
	assert.Equal(t, SinkName, conf.Sink)
	assert.Equal(t, "s3://fraud-reports/"+name, conf.Reference)
	assert.False(t, conf.PersistedAt.IsZero())

	var report model.FraudReport
	require.NoError(t, json.Unmarshal(store.puts["fraud-reports/"+name], &report))
	assert.Equal(t, a.ID(), report.AssessmentID)
	assert.Equal(t, "HIGH", report.RiskLevel)
	assert.Equal(t, "0xabc", report.LedgerHash)
	assert.True(t, report.RequiresInvestigation)

	opts := store.opts["fraud-reports/"+name]
	assert.Equal(t, "application/json", opts.ContentType)
	assert.Equal(t, "HIGH", opts.UserMetadata["risk-level"])
}

func TestPersist_UploadFailure(t *testing.T) {
	store := &fakeStore{putErr: errors.New("bucket quota exceeded")}

	_, err := NewReportSink(store, "fraud-reports", quiet).Persist(context.Background(), "F-100", completedAssessment(t), "")

	assert.ErrorContains(t, err, "bucket quota exceeded")
}

func TestObjectName_EscapesFarmerID(t *testing.T) {
	report := model.FraudReport{AssessmentID: uuid.Nil, AnalysisTimestamp: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "reports/a%2Fb/2024/01/"+uuid.Nil.String()+".json", ObjectName("a/b", report))
}
