package cfg

type Cfg struct {
	// Storage configuration
	DBPath string

	// Ingestion configuration
	FeedsFile      string
	Days           int
	PerFeed        int
	FetchTimeout   int
	ExtractContent bool
	IngestInterval int
	WorkerCount    int

	// HTTP server configuration
	Port    string
	BaseUrl string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
