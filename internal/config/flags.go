package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the server command-line flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-f blob directory
//	-c/-config json file path with configs
//	-base-url public base url
//	-log-level log level
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-iterations PBKDF2 iterations for new envelopes
//	-inline-capacity max envelope bytes embedded in a QR code
//	-qr-level QR recovery level (L, M, Q, H)
//	-qr-size QR image size in pixels
//	-code-length generated short code length
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-storage-timeout per-call storage timeout
//	-max-upload-bytes protect request body limit
//	-s3-bucket, -s3-region, -s3-endpoint object storage settings
//	-sweep-interval expired link sweep interval
//	-expired-retention how long expired links are kept
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("qrk-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var serverAddress NetAddress
	cfg := &StructuredConfig{}

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.Storage.Files.BlobDir, "f", "", "Blob directory")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.PublicBaseURL, "base-url", "", "Public base URL")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.IntVar(&cfg.Envelope.Iterations, "iterations", 0, "PBKDF2 iterations")
	fs.IntVar(&cfg.QR.InlineCapacity, "inline-capacity", 0, "Inline envelope capacity in bytes")
	fs.StringVar(&cfg.QR.RecoveryLevel, "qr-level", "", "QR recovery level (L, M, Q, H)")
	fs.IntVar(&cfg.QR.ImageSize, "qr-size", 0, "QR image size in pixels")
	fs.IntVar(&cfg.Shortener.CodeLength, "code-length", 0, "Generated short code length")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&cfg.Storage.Timeout, "storage-timeout", 0, "Storage call timeout")
	fs.Int64Var(&cfg.Server.MaxUploadBytes, "max-upload-bytes", 0, "Protect request body limit")
	fs.StringVar(&cfg.Storage.S3.Bucket, "s3-bucket", "", "S3 bucket")
	fs.StringVar(&cfg.Storage.S3.Region, "s3-region", "", "S3 region")
	fs.StringVar(&cfg.Storage.S3.Endpoint, "s3-endpoint", "", "S3 endpoint")
	fs.DurationVar(&cfg.Workers.SweepInterval, "sweep-interval", 0, "Expired link sweep interval")
	fs.DurationVar(&cfg.Workers.ExpiredRetention, "expired-retention", 0, "Expired link retention")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = serverAddress.String()

	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host listens on all interfaces. Any host other than "localhost"
// must be an IP address.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}

var _ flag.Value = (*NetAddress)(nil)
