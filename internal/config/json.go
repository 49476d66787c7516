package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files, with
// durations accepted as strings like "30s".
type StructuredJSONConfig struct {
	App struct {
		Version       string `json:"version"`
		LogLevel      string `json:"log_level"`
		PublicBaseURL string `json:"public_base_url"`
		TokenSignKey  string `json:"token_sign_key"`
		TokenIssuer   string `json:"token_issuer"`
	} `json:"app,omitempty"`

	Envelope struct {
		Iterations    int `json:"iterations"`
		MaxIterations int `json:"max_iterations"`
	} `json:"envelope,omitempty"`

	QR struct {
		InlineCapacity int    `json:"inline_capacity"`
		RecoveryLevel  string `json:"recovery_level"`
		ImageSize      int    `json:"image_size"`
	} `json:"qr,omitempty"`

	Shortener struct {
		CodeLength      int `json:"code_length"`
		MaxAttempts     int `json:"max_attempts"`
		DefaultPageSize int `json:"default_page_size"`
	} `json:"shortener,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			BlobDir string `json:"blob_dir"`
		} `json:"files,omitempty"`

		S3 struct {
			Bucket       string `json:"bucket"`
			Region       string `json:"region"`
			Endpoint     string `json:"endpoint"`
			AccessKey    string `json:"access_key"`
			SecretKey    string `json:"secret_key"`
			Prefix       string `json:"prefix"`
			UsePathStyle bool   `json:"use_path_style"`
		} `json:"s3,omitempty"`

		Timeout Duration `json:"timeout"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		MaxUploadBytes int64    `json:"max_upload_bytes"`
	} `json:"server,omitempty"`

	Workers struct {
		SweepInterval    Duration `json:"sweep_interval"`
		ExpiredRetention Duration `json:"expired_retention"`
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

	cfg := &StructuredConfig{
		App: App{
			Version:       jsonCfg.App.Version,
			LogLevel:      jsonCfg.App.LogLevel,
			PublicBaseURL: jsonCfg.App.PublicBaseURL,
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
		},
		Envelope: Envelope{
			Iterations:    jsonCfg.Envelope.Iterations,
			MaxIterations: jsonCfg.Envelope.MaxIterations,
		},
		QR: QR{
			InlineCapacity: jsonCfg.QR.InlineCapacity,
			RecoveryLevel:  jsonCfg.QR.RecoveryLevel,
			ImageSize:      jsonCfg.QR.ImageSize,
		},
		Shortener: Shortener{
			CodeLength:      jsonCfg.Shortener.CodeLength,
			MaxAttempts:     jsonCfg.Shortener.MaxAttempts,
			DefaultPageSize: jsonCfg.Shortener.DefaultPageSize,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				BlobDir: jsonCfg.Storage.Files.BlobDir,
			},
			S3: S3{
				Bucket:       jsonCfg.Storage.S3.Bucket,
				Region:       jsonCfg.Storage.S3.Region,
				Endpoint:     jsonCfg.Storage.S3.Endpoint,
				AccessKey:    jsonCfg.Storage.S3.AccessKey,
				SecretKey:    jsonCfg.Storage.S3.SecretKey,
				Prefix:       jsonCfg.Storage.S3.Prefix,
				UsePathStyle: jsonCfg.Storage.S3.UsePathStyle,
			},
			Timeout: time.Duration(jsonCfg.Storage.Timeout),
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			MaxUploadBytes: jsonCfg.Server.MaxUploadBytes,
		},
		Workers: Workers{
			SweepInterval:    time.Duration(jsonCfg.Workers.SweepInterval),
			ExpiredRetention: time.Duration(jsonCfg.Workers.ExpiredRetention),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
