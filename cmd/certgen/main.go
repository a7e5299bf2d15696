// Command certgen writes a self-signed CA and a server certificate for the
// rating API's cert_file and key_file settings.
package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"math/big"
	"net"
	"os"
	"strings"
	"time"

	"github.com/goserg/ratingengine/internal/logger"
)

const keyBits = 4096

type options struct {
	certFile string
	keyFile  string
	hosts    string
	years    int
	force    bool
}

func main() {
	log := logger.New("info")
	if err := run(); err != nil {
		log.WithError(err).Error("certgen failed")
		os.Exit(1)
	}
	log.Info("certificate written")
}

func run() error {
	var opts options
	flag.StringVar(&opts.certFile, "cert", "cert.pem", "certificate output path")
	flag.StringVar(&opts.keyFile, "key", "key.pem", "private key output path")
	flag.StringVar(&opts.hosts, "hosts", "", "comma separated ip addresses or dns names, loopback when empty")
	flag.IntVar(&opts.years, "years", 10, "validity in years")
	flag.BoolVar(&opts.force, "force", false, "overwrite existing files")
	flag.Parse()

	if !opts.force && exists(opts.certFile, opts.keyFile) {
		return errors.New("certificate already exists, use -force to replace it")
	}

	notBefore := time.Now()
	notAfter := notBefore.AddDate(opts.years, 0, 0)

	caKey, err := rsa.GenerateKey(rand.Reader, keyBits)
	if err != nil {
		return err
	}
	ca := template("Rating Engine CA", notBefore, notAfter)
	ca.IsCA = true
	ca.BasicConstraintsValid = true
	ca.KeyUsage = x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign
	caDER, err := x509.CreateCertificate(rand.Reader, ca, ca, &caKey.PublicKey, caKey)
	if err != nil {
		return fmt.Errorf("ca: %w", err)
	}
	caCert, err := x509.ParseCertificate(caDER)
	if err != nil {
		return err
	}

	key, err := rsa.GenerateKey(rand.Reader, keyBits)
	if err != nil {
		return err
	}
	cert := template("Rating Engine API", notBefore, notAfter)
	cert.KeyUsage = x509.KeyUsageDigitalSignature
	cert.IPAddresses, cert.DNSNames = parseHosts(opts.hosts)
	der, err := x509.CreateCertificate(rand.Reader, cert, caCert, &key.PublicKey, caKey)
	if err != nil {
		return fmt.Errorf("server certificate: %w", err)
	}

	if err := writePEM(opts.certFile, "CERTIFICATE", der); err != nil {
		return err
	}
	return writePEM(opts.keyFile, "RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(key))
}

func template(name string, notBefore, notAfter time.Time) *x509.Certificate {
	return &x509.Certificate{
		SerialNumber: serial(),
		Subject: pkix.Name{
			CommonName:   name,
			Organization: []string{"Rating Engine"},
		},
		NotBefore:   notBefore,
		NotAfter:    notAfter,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
	}
}

func parseHosts(hosts string) ([]net.IP, []string) {
	if strings.TrimSpace(hosts) == "" {
		return []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback}, []string{"localhost"}
	}
	var ips []net.IP
	var names []string
	for _, h := range strings.Split(hosts, ",") {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if ip := net.ParseIP(h); ip != nil {
			ips = append(ips, ip)
			continue
		}
		names = append(names, h)
	}
	return ips, names
}

func writePEM(path, blockType string, der []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return pem.Encode(f, &pem.Block{Type: blockType, Bytes: der})
}

func exists(paths ...string) bool {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}
	return false
}

func serial() *big.Int {
	limit := new(big.Int).Lsh(big.NewInt(1), 62)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		panic(err)
	}
	return n
}
