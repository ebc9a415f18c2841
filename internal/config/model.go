// internal/config/model.go
//
// Typed settings model for Packrat.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from two overlay layers:
//
//   - `config.toml` from the first candidate location — primary static file,
//   - `PACKRAT_`-prefixed environment overrides — highest precedence.
//
// Sections come in two flavors.  Value sections (General, Database, Session,
// LocalStore, Plugins, Mirroring) always exist, seeded from defaults.
// Pointer sections (the identity providers, the cloud stores, Logging,
// Users, Worker, Quotas, Profiling) stay nil unless the merged tree carried
// their key; a nil pointer is how the rest of the system asks "was this
// configured at all?".
//
// Validation happens immediately after unmarshal; resolution fails fast if
// required fields are missing.  Nil pointer sections are skipped, so their
// required fields only bite once the section is triggered.
//
// Notes
// -----
//   - Struct tags use `koanf:"…"`—Koanf ignores `toml` tags unless
//     configured otherwise.
//   - Oxford commas, two spaces after periods.  No em-dash.

package config

//
// General section (always present)
//

// General holds server-wide tunables that no other section claims.
type General struct {
	PackageUnpackThreads int    `koanf:"package_unpack_threads"`
	FrontendDir          string `koanf:"frontend_dir"`
	RedirectHTTPToHTTPS  bool   `koanf:"redirect_http_to_https"`
}

//
// CORS section
//

// CORS mirrors the browser cross-origin policy handed to the HTTP layer.
type CORS struct {
	AllowOrigins     []string `koanf:"allow_origins"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	AllowMethods     []string `koanf:"allow_methods"`
	AllowHeaders     []string `koanf:"allow_headers"`
}

//
// Identity-provider sections
//

// GitHub OAuth application credentials.
type GitHub struct {
	ClientID     string `koanf:"client_id"     validate:"required"`
	ClientSecret string `koanf:"client_secret" validate:"required"`
}

// GitLab OAuth application credentials.  URL defaults to the public
// instance so self-hosted deployments only override it when needed.
type GitLab struct {
	URL          string `koanf:"url"`
	ClientID     string `koanf:"client_id"     validate:"required"`
	ClientSecret string `koanf:"client_secret" validate:"required"`
}

// AzureAD OAuth application credentials plus the directory tenant.
type AzureAD struct {
	ClientID     string `koanf:"client_id"     validate:"required"`
	ClientSecret string `koanf:"client_secret" validate:"required"`
	TenantID     string `koanf:"tenant_id"     validate:"required"`
}

// Google OAuth application credentials.
type Google struct {
	ClientID     string `koanf:"client_id"     validate:"required"`
	ClientSecret string `koanf:"client_secret" validate:"required"`
}

//
// Database section (mandatory, no default URL)
//

// Database holds the connection URL plus pool tunables.  URL is the one
// field in the whole tree with no default at all—resolution fails without
// it.  The pool knobs only matter for server-class drivers.
type Database struct {
	URL             string `koanf:"url" validate:"required"`
	PluginPath      string `koanf:"plugin_path"`
	EchoSQL         bool   `koanf:"echo_sql"`
	PoolSize        int    `koanf:"pool_size"`
	PoolMaxOverflow int    `koanf:"pool_max_overflow"`
}

//
// Session section (mandatory)
//

// Session carries the cookie-signing secret.  Secret is required; see
// template.go for how a starter value is generated.
type Session struct {
	Secret    string `koanf:"secret" validate:"required"`
	HTTPSOnly bool   `koanf:"https_only"`
}

//
// Storage sections
//

// LocalStore configures the on-disk package store, the fallback when no
// cloud section is present.  Always exists with defaults.
type LocalStore struct {
	RedirectEnabled    bool   `koanf:"redirect_enabled"`
	RedirectEndpoint   string `koanf:"redirect_endpoint"`
	RedirectSecret     string `koanf:"redirect_secret"`
	RedirectExpiration int    `koanf:"redirect_expiration"`
}

// S3 object-store credentials and bucket naming.
type S3 struct {
	AccessKey    string `koanf:"access_key"`
	SecretKey    string `koanf:"secret_key"`
	URL          string `koanf:"url"`
	Region       string `koanf:"region"`
	BucketPrefix string `koanf:"bucket_prefix"`
	BucketSuffix string `koanf:"bucket_suffix"`
}

// AzureBlob object-store credentials and container naming.
type AzureBlob struct {
	AccountName      string `koanf:"account_name"`
	AccountAccessKey string `koanf:"account_access_key"`
	ConnStr          string `koanf:"conn_str"`
	ContainerPrefix  string `koanf:"container_prefix"`
	ContainerSuffix  string `koanf:"container_suffix"`
}

// GCS object-store credentials and bucket naming.
type GCS struct {
	Project      string `koanf:"project"`
	Token        string `koanf:"token"`
	BucketPrefix string `koanf:"bucket_prefix"`
	BucketSuffix string `koanf:"bucket_suffix"`
	CacheTimeout int    `koanf:"cache_timeout"`
	Region       string `koanf:"region"`
}

//
// Logging section
//

// Logging sets the declarative log level and optional file sink.  The
// loader upper-cases Level before validation, so sources may spell it in
// any case.  The PACKRAT_LOG_LEVEL env var outranks Level; see
// internal/logging.
type Logging struct {
	Level string `koanf:"level" validate:"omitempty,oneof=DEBUG INFO WARNING ERROR CRITICAL"`
	File  string `koanf:"file"`
}

//
// Users section
//

// Users seeds role membership and sign-up behavior.
type Users struct {
	Admins               []string `koanf:"admins"`
	Maintainers          []string `koanf:"maintainers"`
	Members              []string `koanf:"members"`
	DefaultRole          string   `koanf:"default_role"`
	CollectEmails        bool     `koanf:"collect_emails"`
	CreateDefaultChannel bool     `koanf:"create_default_channel"`
}

//
// Worker section
//

// Worker selects the background job runner and, for the redis runner, its
// connection parameters.  The queue itself lives outside this subsystem.
type Worker struct {
	Type      string `koanf:"type" validate:"omitempty,oneof=thread subprocess redis"`
	RedisIP   string `koanf:"redis_ip"`
	RedisPort int    `koanf:"redis_port"`
	RedisDB   int    `koanf:"redis_db"`
}

//
// Plugins, mirroring, quotas, profiling
//

// Plugins restricts plugin discovery to the Enabled list when the section
// was configured; an untouched default section means "load everything".
type Plugins struct {
	Enabled []string `koanf:"enabled"`
}

// Mirroring tunes upstream channel mirroring batches.
type Mirroring struct {
	BatchLength          int     `koanf:"batch_length"`
	BatchSize            float64 `koanf:"batch_size"`
	NumParallelDownloads int     `koanf:"num_parallel_downloads"`
}

// Quotas caps per-channel disk usage.  ChannelQuota has no default, and an
// explicit zero is a valid cap, so the loader checks key presence instead
// of relying on a required tag that would reject 0.
type Quotas struct {
	ChannelQuota int `koanf:"channel_quota" validate:"min=0"`
}

// Profiling enables the sampling profiler.
type Profiling struct {
	EnableSampling  bool    `koanf:"enable_sampling"`
	IntervalSeconds float64 `koanf:"interval_seconds"`
}

//
// Root aggregate
//

// Settings is the immutable aggregate built by Load and cached by the
// registry for the process lifetime.  Never mutate one after construction.
type Settings struct {
	General    General    `koanf:"general"`
	CORS       *CORS      `koanf:"cors"`
	GitHub     *GitHub    `koanf:"github"`
	GitLab     *GitLab    `koanf:"gitlab"`
	AzureAD    *AzureAD   `koanf:"azuread"`
	Google     *Google    `koanf:"google"`
	Database   Database   `koanf:"database"`
	Session    Session    `koanf:"session"`
	LocalStore LocalStore `koanf:"local_store"`
	S3         *S3        `koanf:"s3"`
	AzureBlob  *AzureBlob `koanf:"azure_blob"`
	GCS        *GCS       `koanf:"gcs"`
	Logging    *Logging   `koanf:"logging"`
	Users      *Users     `koanf:"users"`
	Worker     *Worker    `koanf:"worker"`
	Plugins    Plugins    `koanf:"plugins"`
	Mirroring  Mirroring  `koanf:"mirroring"`
	Quotas     *Quotas    `koanf:"quotas"`
	Profiling  *Profiling `koanf:"profiling"`

	// Section keys seen in the merged file+env tree.  Filled by the
	// loader; value sections need it because they exist either way.
	present map[string]bool
}

// sectionNames lists every legal top-level section key.  envmap.go sorts
// its own copy longest-first for env-variable matching.
var sectionNames = []string{
	"general", "cors", "github", "gitlab", "azuread", "google",
	"database", "session", "local_store", "s3", "azure_blob", "gcs",
	"logging", "users", "worker", "plugins", "mirroring", "quotas",
	"profiling",
}

// defaultSettings returns a Settings seeded with every built-in default.
// Unmarshal layers file and env values on top of this instance, so a field
// absent from both keeps its default.
func defaultSettings() *Settings {
	return &Settings{
		General: General{
			PackageUnpackThreads: 1,
		},
		Database: Database{
			PoolSize:        100,
			PoolMaxOverflow: 100,
		},
		Session: Session{
			HTTPSOnly: true,
		},
		LocalStore: LocalStore{
			RedirectEndpoint:   "/files",
			RedirectExpiration: 3600,
		},
		Mirroring: Mirroring{
			BatchLength:          10,
			BatchSize:            1e8,
			NumParallelDownloads: 10,
		},
	}
}

// Configured reports whether the named section appeared in the merged
// file+env tree.  Default-bearing value sections return false until a
// source actually mentions them, which is what the plugin bootstrapper
// keys off.
func (s *Settings) Configured(section string) bool {
	return s.present[section]
}
