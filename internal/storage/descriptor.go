// internal/storage/descriptor.go
//
// Storage-backend selection.
//
// Context
// -------
// The settings tree can carry at most one interesting cloud-store section;
// Select turns it into a tagged parameter bundle naming which backend the
// storage subsystem should construct and with what arguments.  Precedence
// is fixed—S3, then Azure Blob, then GCS, then the always-available local
// store—and exactly one descriptor comes out of every call.
//
// This package performs no I/O.  Constructing the actual store from a
// descriptor (opening buckets, signing redirects) is the storage
// subsystem's job, not the configuration core's.
//
// Notes
// -----
//   - Oxford commas, two spaces after periods.

package storage

import "github.com/yanizio/packrat/internal/config"

// ChannelsDir is the fixed subdirectory a local store keeps channel data
// under.
const ChannelsDir = "channels"

// Kind tags a Descriptor with its backend variant.
type Kind string

const (
	KindLocal     Kind = "local"
	KindS3        Kind = "s3"
	KindAzureBlob Kind = "azure_blob"
	KindGCS       Kind = "gcs"
)

// LocalParams configures the on-disk fallback store.
type LocalParams struct {
	ChannelsDir        string
	RedirectEnabled    bool
	RedirectEndpoint   string
	RedirectSecret     string
	RedirectExpiration int
}

// S3Params configures an S3-compatible object store.
type S3Params struct {
	AccessKey    string
	SecretKey    string
	URL          string
	Region       string
	BucketPrefix string
	BucketSuffix string
}

// AzureBlobParams configures an Azure Blob container store.
type AzureBlobParams struct {
	AccountName      string
	AccountAccessKey string
	ConnStr          string
	ContainerPrefix  string
	ContainerSuffix  string
}

// GCSParams configures a Google Cloud Storage bucket store.
type GCSParams struct {
	Project      string
	Token        string
	BucketPrefix string
	BucketSuffix string
	CacheTimeout int
	Region       string
}

// Descriptor is a tagged variant: Kind says which params field is set, and
// exactly one of them ever is.
type Descriptor struct {
	Kind      Kind
	Local     *LocalParams
	S3        *S3Params
	AzureBlob *AzureBlobParams
	GCS       *GCSParams
}

// Select returns the descriptor for the first configured cloud section, or
// the local-store descriptor when none is.
func Select(s *config.Settings) Descriptor {
	switch {
	case s.S3 != nil:
		return Descriptor{Kind: KindS3, S3: &S3Params{
			AccessKey:    s.S3.AccessKey,
			SecretKey:    s.S3.SecretKey,
			URL:          s.S3.URL,
			Region:       s.S3.Region,
			BucketPrefix: s.S3.BucketPrefix,
			BucketSuffix: s.S3.BucketSuffix,
		}}
	case s.AzureBlob != nil:
		return Descriptor{Kind: KindAzureBlob, AzureBlob: &AzureBlobParams{
			AccountName:      s.AzureBlob.AccountName,
			AccountAccessKey: s.AzureBlob.AccountAccessKey,
			ConnStr:          s.AzureBlob.ConnStr,
			ContainerPrefix:  s.AzureBlob.ContainerPrefix,
			ContainerSuffix:  s.AzureBlob.ContainerSuffix,
		}}
	case s.GCS != nil:
		return Descriptor{Kind: KindGCS, GCS: &GCSParams{
			Project:      s.GCS.Project,
			Token:        s.GCS.Token,
			BucketPrefix: s.GCS.BucketPrefix,
			BucketSuffix: s.GCS.BucketSuffix,
			CacheTimeout: s.GCS.CacheTimeout,
			Region:       s.GCS.Region,
		}}
	default:
		return Descriptor{Kind: KindLocal, Local: &LocalParams{
			ChannelsDir:        ChannelsDir,
			RedirectEnabled:    s.LocalStore.RedirectEnabled,
			RedirectEndpoint:   s.LocalStore.RedirectEndpoint,
			RedirectSecret:     s.LocalStore.RedirectSecret,
			RedirectExpiration: s.LocalStore.RedirectExpiration,
		}}
	}
}
