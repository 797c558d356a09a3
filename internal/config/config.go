package config

import (
	"github.com/spf13/viper"
)

// Default values for the configuration keys.
const (
	DefaultOpenBDBaseURL    = "https://api.openbd.jp/v1"
	DefaultThumbnailBaseURL = "https://ndlsearch.ndl.go.jp"
	DefaultAmazonBaseURL    = "https://www.amazon.co.jp"
	DefaultHontoBaseURL     = "http://honto.jp"
	DefaultChunkSize        = 100
	DefaultLookupBatchSize  = 1000
	DefaultDatastoreDriver  = "sqlite"
	DefaultDatastoreDSN     = "./hondana.db"
)

// Global configuration variables
var (
	// OpenBDBaseURL is the metadata API root, without the /get suffix
	OpenBDBaseURL string
	// ThumbnailBaseURL is the NDL Search host serving /thumbnail/{isbn}.jpg
	ThumbnailBaseURL string
	// AmazonBaseURL and HontoBaseURL are the hosts of the stored retailer links
	AmazonBaseURL string
	HontoBaseURL  string

	// ChunkSize is the number of ISBNs per metadata request
	ChunkSize int
	// LookupBatchSize is the number of ISBNs per existence query
	LookupBatchSize int

	// DatastoreDriver is "sqlite" or "postgres"
	DatastoreDriver string
	// DatastoreDSN is the SQLite file path or the PostgreSQL connection string
	DatastoreDSN string

	// OverwriteFiles controls whether existing report and JSON files are replaced
	OverwriteFiles bool
)

// SetDefaults registers the default value of every key with viper
func SetDefaults() {
	viper.SetDefault("openbd.baseurl", DefaultOpenBDBaseURL)
	viper.SetDefault("thumbnail.baseurl", DefaultThumbnailBaseURL)
	viper.SetDefault("links.amazon", DefaultAmazonBaseURL)
	viper.SetDefault("links.honto", DefaultHontoBaseURL)
	viper.SetDefault("import.chunksize", DefaultChunkSize)
	viper.SetDefault("import.lookupbatch", DefaultLookupBatchSize)
	viper.SetDefault("datastore.driver", DefaultDatastoreDriver)
	viper.SetDefault("datastore.dsn", DefaultDatastoreDSN)
	viper.SetDefault("overwritefiles", true)
}

// InitConfig initializes the global configuration
func InitConfig() {
	SetDefaults()

	OpenBDBaseURL = viper.GetString("openbd.baseurl")
	ThumbnailBaseURL = viper.GetString("thumbnail.baseurl")
	AmazonBaseURL = viper.GetString("links.amazon")
	HontoBaseURL = viper.GetString("links.honto")
	ChunkSize = viper.GetInt("import.chunksize")
	LookupBatchSize = viper.GetInt("import.lookupbatch")
	DatastoreDriver = viper.GetString("datastore.driver")
	DatastoreDSN = viper.GetString("datastore.dsn")
	OverwriteFiles = viper.GetBool("overwritefiles")
}

// SetDatastore overrides the datastore settings; empty values are ignored
func SetDatastore(driver, dsn string) {
	if driver != "" {
		DatastoreDriver = driver
	}
	if dsn != "" {
		DatastoreDSN = dsn
	}
}

// SetChunkSize overrides the chunk size; non-positive values are ignored
func SetChunkSize(n int) {
	if n > 0 {
		ChunkSize = n
	}
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}
