package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a               storage server address in format [host]:[port]
//	-r               remote blob store base URL
//	-b               blob storage directory
//	-c/-config       json file path with configs
//	-request-timeout outbound/inbound request timeout (e.g. "30s")
//	-flush-interval  write-back cache flush interval
//	-save-interval   background save job interval
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var remoteBaseURL string
	var blobDir string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var flushInterval time.Duration
	var saveInterval time.Duration

	flag.StringVar(&serverAddress, "a", "", "Server net address host:port")
	flag.StringVar(&remoteBaseURL, "r", "", "Remote blob store base URL")
	flag.StringVar(&blobDir, "b", "", "Blob storage directory")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&flushInterval, "flush-interval", 0, "Cache flush interval (e.g., 10s)")
	flag.DurationVar(&saveInterval, "save-interval", 0, "Background save interval (e.g., 30s)")

	flag.Parse()

	return &StructuredConfig{
		Remote: Remote{
			BaseURL:        remoteBaseURL,
			RequestTimeout: requestTimeout,
		},
		Server: Server{
			HTTPAddress:    serverAddress,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			BlobDir:       blobDir,
			FlushInterval: flushInterval,
		},
		Workers: Workers{
			SaveInterval: saveInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
