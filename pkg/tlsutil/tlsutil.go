// Package tlsutil loads server TLS material shared by the gRPC and HTTP listeners.
package tlsutil

import (
	"crypto/tls"
	"fmt"

	"google.golang.org/grpc/credentials"
)

// ServerConfig loads a key pair into a TLS 1.2+ server config.
func ServerConfig(certFile, keyFile string) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("tlsutil: load server key pair: %w", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// GRPCServerCredentials wraps ServerConfig for grpc.Creds.
func GRPCServerCredentials(certFile, keyFile string) (credentials.TransportCredentials, error) {
	cfg, err := ServerConfig(certFile, keyFile)
	if err != nil {
		return nil, err
	}
	return credentials.NewTLS(cfg), nil
}
