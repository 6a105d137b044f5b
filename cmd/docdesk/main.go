package main

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"crypto/tls"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/docdesk/audit"
	"github.com/hazyhaar/docdesk/config"
	"github.com/hazyhaar/docdesk/dbopen"
	"github.com/hazyhaar/docdesk/desk"
	"github.com/hazyhaar/docdesk/docstore"
	"github.com/hazyhaar/docdesk/extract"
	"github.com/hazyhaar/docdesk/kit"
	"github.com/hazyhaar/docdesk/mcpquic"
	"github.com/hazyhaar/docdesk/phonekey"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	// Logging.
	var lvl slog.Level
	switch cfg.LogLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	// Stdio transport owns stdout for JSON-RPC; logs must go to stderr.
	logDst := os.Stdout
	if cfg.MCPTransport == "stdio" {
		logDst = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logDst, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	// Signal context.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Audit DB.
	auditDB, err := dbopen.Open(cfg.AuditDB, dbopen.WithMkdirAll())
	if err != nil {
		slog.Error("audit db", "error", err)
		os.Exit(1)
	}
	defer auditDB.Close()

	auditLogger := audit.NewSQLiteLogger(auditDB)
	if err := auditLogger.Init(); err != nil {
		slog.Error("audit init", "error", err)
		os.Exit(1)
	}
	defer auditLogger.Close()

	// Service.
	svc := desk.New(desk.Config{
		Store:            docstore.NewMemory(),
		Extractor:        extract.New(extract.Config{MaxFileSize: cfg.MaxFileSize, Logger: logger}),
		Logger:           logger,
		Audit:            auditLogger,
		OwnerNumber:      phonekey.Normalize(cfg.MyNumber),
		EngineTag:        cfg.EngineTag,
		DisableSignature: cfg.DisableSignature,
	})

	mcpSrv := mcp.NewServer(&mcp.Implementation{
		Name:    "docdesk",
		Version: "1.0.0",
	}, nil)
	svc.RegisterMCP(mcpSrv)

	// Stdio transport replaces the HTTP server entirely.
	if cfg.MCPTransport == "stdio" {
		slog.Info("serving MCP over stdio")
		if err := mcpSrv.Run(kit.WithTransport(ctx, "stdio"), &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			slog.Error("stdio server", "error", err)
			os.Exit(1)
		}
		return
	}

	// Optional MCP QUIC alongside HTTP.
	if cfg.MCPTransport == "quic" {
		var tlsCfg *tls.Config
		if cfg.TLSCert != "" && cfg.TLSKey != "" {
			tlsCfg, err = mcpquic.ServerTLSConfig(cfg.TLSCert, cfg.TLSKey)
		} else {
			tlsCfg, err = mcpquic.SelfSignedTLSConfig()
		}
		if err != nil {
			slog.Error("MCP QUIC TLS", "error", err)
		} else {
			ql, qErr := mcpquic.NewListener(cfg.MCPQUICAddr, tlsCfg, mcpSrv, logger)
			if qErr != nil {
				slog.Error("MCP QUIC listener", "error", qErr)
			} else {
				defer ql.Close()
				go func() {
					slog.Info("MCP QUIC starting", "addr", cfg.MCPQUICAddr)
					if sErr := ql.Serve(ctx); sErr != nil && ctx.Err() == nil {
						slog.Error("MCP QUIC", "error", sErr)
					}
				}()
			}
		}
	}

	// Router.
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	mcpHandler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return mcpSrv
	}, nil)
	r.Route("/mcp", func(r chi.Router) {
		r.Use(bearerAuth(cfg.AuthToken))
		r.Use(identifyHTTP)
		r.Handle("/", mcpHandler)
		r.Handle("/*", mcpHandler)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("server stopped")
}

// bearerAuth rejects requests whose Authorization header does not carry the
// configured static token. Hashing both sides keeps the comparison
// constant-time regardless of length.
func bearerAuth(token string) func(http.Handler) http.Handler {
	want := sha256.Sum256([]byte(token))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			const prefix = "Bearer "
			if len(auth) <= len(prefix) || auth[:len(prefix)] != prefix {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			got := sha256.Sum256([]byte(auth[len(prefix):]))
			if subtle.ConstantTimeCompare(want[:], got[:]) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// identifyHTTP tags the request context for the audit trail.
func identifyHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := kit.WithTransport(r.Context(), "http")
		ctx = kit.WithRemoteAddr(ctx, r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
