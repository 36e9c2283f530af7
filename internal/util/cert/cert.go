package cert

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bokysan/b64/internal/args"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/youmark/pkcs8"
)

// ServerConfig is the TLS configuration of the HTTP service. PEM data may be given inline or as a
// file; files are looked up relative to the configuration file first.
type ServerConfig struct {
	Certificate               string  `yaml:"certificate"                  long:"certificate"                  env:"CERTIFICATE"                  description:"Server certificate (PEM)"`
	CertificateFile           string  `yaml:"certificate_file"             long:"certificate-file"             env:"CERTIFICATE_FILE"             description:"File with the server certificate (PEM)"`
	PrivateKey                string  `yaml:"private_key"                  long:"private-key"                  env:"PRIVATE_KEY"                  description:"Server private key (PEM)"`
	PrivateKeyFile            string  `yaml:"private_key_file"             long:"private-key-file"             env:"PRIVATE_KEY_FILE"             description:"File with the server private key (PEM)"`
	PrivateKeyPassword        *string `yaml:"private_key_password"         long:"private-key-password"         env:"PRIVATE_KEY_PASSWORD"         description:"Decryption password of the private key"`
	PrivateKeyPasswordProgram string  `yaml:"private_key_password_program" long:"private-key-password-program" env:"PRIVATE_KEY_PASSWORD_PROGRAM" description:"Program to run to get the decryption password"`
	ClientCaCertificateFile   string  `yaml:"client_ca_certificate_file"   long:"client-ca-certificate-file"   env:"CLIENT_CA_CERTIFICATE_FILE"   description:"File with CA certificate(s) accepted for client certificates"`
	RequireClientCert         bool    `yaml:"require_client_cert"          long:"require-client-cert"          env:"REQUIRE_CLIENT_CERT"          description:"If set, the client must authenticate with its certificate."`
}

// Enabled returns true if a certificate or a key were configured
func (m *ServerConfig) Enabled() bool {
	return m.Certificate != "" || m.CertificateFile != "" || m.PrivateKey != "" || m.PrivateKeyFile != ""
}

func (m *ServerConfig) certificate() ([]byte, error) {
	return pemData(m.Certificate, m.CertificateFile, "certificate")
}

func (m *ServerConfig) privateKey() ([]byte, error) {
	data, err := pemData(m.PrivateKey, m.PrivateKeyFile, "private key")
	if err != nil || len(data) == 0 {
		return data, err
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.Errorf("Private key is not PEM encoded")
	}

	switch {
	case block.Type == "ENCRYPTED PRIVATE KEY":
		password, err := m.password()
		if err != nil {
			return nil, err
		}
		key, err := pkcs8.ParsePKCS8PrivateKey(block.Bytes, password)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not decrypt private key")
		}
		der, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			return nil, errors.Wrapf(err, "Don't know how to handle %T", key)
		}
		return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil

	//goland:noinspection GoDeprecation
	case x509.IsEncryptedPEMBlock(block):
		password, err := m.password()
		if err != nil {
			return nil, err
		}
		der, err := x509.DecryptPEMBlock(block, password)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not decrypt private key")
		}
		return pem.EncodeToMemory(&pem.Block{Type: block.Type, Bytes: der}), nil
	}

	return data, nil
}

func (m *ServerConfig) password() ([]byte, error) {
	if m.PrivateKeyPassword != nil {
		return []byte(*m.PrivateKeyPassword), nil
	} else if m.PrivateKeyPasswordProgram != "" {
		cmd := exec.Command("sh", "-c", m.PrivateKeyPasswordProgram)
		out := &bytes.Buffer{}
		cmd.Stdout = out
		if err := cmd.Run(); err != nil {
			return nil, errors.Wrapf(err, "Failed executing %s", m.PrivateKeyPasswordProgram)
		}
		return bytes.TrimRight(out.Bytes(), "\r\n"), nil
	}
	return nil, errors.Errorf("Private key is encrypted and no password or password program defined")
}

// GetTlsConfig returns the TLS configuration, or nil if TLS is not configured
func (m *ServerConfig) GetTlsConfig() (*tls.Config, error) {
	if !m.Enabled() {
		return nil, nil
	}

	certPem, err := m.certificate()
	if err != nil {
		return nil, err
	}
	keyPem, err := m.privateKey()
	if err != nil {
		return nil, err
	}
	pair, err := tls.X509KeyPair(certPem, keyPem)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not create a X509 key pair from given data")
	}

	conf := &tls.Config{
		Certificates: []tls.Certificate{pair},
	}

	if m.ClientCaCertificateFile != "" {
		ca, err := ioutil.ReadFile(findFile(m.ClientCaCertificateFile))
		if err != nil {
			return nil, errors.Wrapf(err, "Could not read CA certificate file: %s", m.ClientCaCertificateFile)
		}
		pool := x509.NewCertPool()
		if ok := pool.AppendCertsFromPEM(ca); !ok {
			return nil, errors.Errorf("Could not parse CA certificates")
		}
		conf.ClientCAs = pool
		conf.ClientAuth = tls.VerifyClientCertIfGiven
	}
	if m.RequireClientCert {
		conf.ClientAuth = tls.RequireAndVerifyClientCert
	}
	log.Debugf("TLS configured, client auth: %v", conf.ClientAuth)

	return conf, nil
}

// LogPeerCertificate logs the subject of the client certificate, if one was presented
func LogPeerCertificate(state *tls.ConnectionState) {
	if state == nil || len(state.PeerCertificates) == 0 {
		return
	}
	cert := state.PeerCertificates[0]
	log.Debugf("Peer certificate: serial=%v, subject=%v", cert.SerialNumber, cert.Subject)
}

func pemData(inline, file, what string) ([]byte, error) {
	if file != "" {
		data, err := ioutil.ReadFile(findFile(file))
		if err != nil {
			return nil, errors.Wrapf(err, "Could not read %v file: %s", what, file)
		}
		return data, nil
	}
	return []byte(strings.TrimSpace(inline)), nil
}

// findFile will try to locate the file relative to the configuration file and, failing that,
// return the provided location as is
func findFile(name string) string {
	if args.General.ConfigurationFilePath != "" && !filepath.IsAbs(name) {
		file := filepath.Join(filepath.Dir(args.General.ConfigurationFilePath), name)
		if _, err := os.Stat(file); err == nil {
			return file
		}
	}
	return name
}
