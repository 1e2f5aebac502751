package cmd

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/sigil-auth/sigil/api"
	"github.com/sigil-auth/sigil/internal/util"
	"github.com/sigil-auth/sigil/session"
	bboltstorage "github.com/sigil-auth/sigil/storage/bbolt"
	"github.com/sigil-auth/sigil/web"
)

var (
	port           int
	dataDir        string
	tlsCert        string
	tlsKey         string
	sessionKeyFile string
	devMode        bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the authentication server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(dataDir, 0o700); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}

		repo, err := bboltstorage.NewRepositoryFromFile(dataDir+"/accounts.db", nil)
		if err != nil {
			return fmt.Errorf("failed to open account storage: %w", err)
		}
		defer repo.Close()

		key, err := loadOrGenerateKey(sessionKeyFile)
		if err != nil {
			return err
		}

		cfg := session.DefaultConfig()
		if devMode {
			// Local development runs plain HTTP; browsers drop Secure
			// cookies on http://, so the flag comes off here and only
			// here. Production keeps the default.
			cfg.Secure = false
		}
		sessions, err := session.NewManager(cfg, key)
		if err != nil {
			return fmt.Errorf("failed to initialize session manager: %w", err)
		}

		a := api.New(repo, sessions)

		r := chi.NewRouter()
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)
		r.Use(api.SecurityHeaders)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		r.Mount("/api/v1", a.Router())

		webHandler, err := web.Handler()
		if err != nil {
			return err
		}
		r.Handle("/*", webHandler)

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		if !devMode {
			var tlsConfig *tls.Config
			if tlsCert != "" && tlsKey != "" {
				cert, err := tls.LoadX509KeyPair(tlsCert, tlsKey)
				if err != nil {
					return fmt.Errorf("failed to load TLS key pair: %w", err)
				}
				tlsConfig = &tls.Config{
					Certificates: []tls.Certificate{cert},
					MinVersion:   tls.VersionTLS12,
				}
			} else {
				cert, err := util.GenerateSelfSignedCert()
				if err != nil {
					return fmt.Errorf("failed to generate self-signed certificate: %w", err)
				}
				tlsConfig = &tls.Config{
					Certificates: []tls.Certificate{cert},
					MinVersion:   tls.VersionTLS12,
				}
				fmt.Println("Using self-signed runtime generated certificate for TLS")
			}
			server.TLSConfig = tlsConfig
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() {
			var err error
			if devMode {
				err = server.ListenAndServe()
			} else {
				err = server.ListenAndServeTLS("", "")
			}
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				done <- fmt.Errorf("server failed: %w", err)
				return
			}
			done <- nil
		}()

		printBanner()
		fmt.Printf("Starting server on port %d (data: %s)...\n", port, dataDir)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			fmt.Printf("\nReceived %s, shutting down...\n", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			return nil
		case err := <-done:
			return err
		}
	},
}

// loadOrGenerateKey reads a hex-encoded session signing key from path, or
// generates an ephemeral one when no path is given. An ephemeral key
// means all sessions end when the process does.
func loadOrGenerateKey(path string) ([]byte, error) {
	if path == "" {
		key, err := session.GenerateKey()
		if err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
		fmt.Println("No --session-key-file given; sessions will not survive a restart")
		return key, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session key file: %w", err)
	}
	key, err := util.HexDecode(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("session key file is not valid hex: %w", err)
	}
	if len(key) != session.KeyLen {
		return nil, fmt.Errorf("session key must be %d bytes, got %d", session.KeyLen, len(key))
	}
	return key, nil
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntVarP(&port, "port", "p", 8443, "Port to listen on")
	serverCmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Directory for persistent data")
	serverCmd.Flags().StringVar(&tlsCert, "tls-cert", "", "Path to TLS certificate file")
	serverCmd.Flags().StringVar(&tlsKey, "tls-key", "", "Path to TLS key file")
	serverCmd.Flags().StringVar(&sessionKeyFile, "session-key-file", "", "Path to a hex-encoded 32-byte session signing key")
	serverCmd.Flags().BoolVar(&devMode, "dev", false, "Serve plain HTTP with Secure cookies disabled (local development only)")
}
