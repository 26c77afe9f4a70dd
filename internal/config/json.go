package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration wraps time.Duration so JSON config files can spell durations as
// strings ("10s", "1m30s").
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler for [Duration].
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-encoded durations for file-based configuration.
type StructuredJSONConfig struct {
	Remote struct {
		BaseURL           string   `json:"base_url"`
		RequestTimeout    Duration `json:"request_timeout"`
		NotFoundThreshold int      `json:"not_found_threshold"`
	} `json:"remote,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Storage struct {
		BlobDir       string   `json:"blob_dir"`
		CacheMaxBytes int64    `json:"cache_max_bytes"`
		FlushInterval Duration `json:"flush_interval"`
	} `json:"storage,omitempty"`

	Workers struct {
		SaveInterval     Duration `json:"save_interval"`
		BatchConcurrency int      `json:"batch_concurrency"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		Remote: Remote{
			BaseURL:           jsonCfg.Remote.BaseURL,
			RequestTimeout:    time.Duration(jsonCfg.Remote.RequestTimeout),
			NotFoundThreshold: jsonCfg.Remote.NotFoundThreshold,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Storage: Storage{
			BlobDir:       jsonCfg.Storage.BlobDir,
			CacheMaxBytes: jsonCfg.Storage.CacheMaxBytes,
			FlushInterval: time.Duration(jsonCfg.Storage.FlushInterval),
		},
		Workers: Workers{
			SaveInterval:     time.Duration(jsonCfg.Workers.SaveInterval),
			BatchConcurrency: jsonCfg.Workers.BatchConcurrency,
		},
	}, nil
}
