package clickhouse

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/pkg/errors"
)

// GetTLSConfig builds an mTLS config from opts.TLSSettings.
//
// Example usage:
//
//	cfg, err := GetTLSConfig(opts)
//	if err != nil {
//		return err
//	}
func GetTLSConfig(opts ClientOptions) (*tls.Config, error) {
	settings := opts.TLSSettings

	cert, err := tls.LoadX509KeyPair(settings.CertFile, settings.KeyFile)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load cert/key pair")
	}

	caCert, err := os.ReadFile(settings.CAFile)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load CA file")
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caCert) {
		return nil, errors.Errorf("no certificates found in %s", settings.CAFile)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      pool,
		MinVersion:   tls.VersionTLS12,
	}, nil
}
