package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"ecodrip-server/internal/config"
	"ecodrip-server/internal/consts"
	"ecodrip-server/internal/db"
	"ecodrip-server/internal/modules"
	authrepo "ecodrip-server/internal/modules/auth/repo"
	authservice "ecodrip-server/internal/modules/auth/service"
	"ecodrip-server/internal/observability/tracing"
	platformservice "ecodrip-server/internal/platform/service"
	"ecodrip-server/internal/router"
	"ecodrip-server/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	var configDir string
	var exportRoutes bool

	rootCmd := &cobra.Command{
		Use:   consts.ApplicationName,
		Short: "EcoDrip irrigation map API server",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.InitConfig(configDir)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(exportRoutes)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", "config", "Directory containing config.yaml")
	rootCmd.Flags().BoolVar(&exportRoutes, "export", false, "Export routes to routes.json and exit")

	rootCmd.AddCommand(newCreateAdminCmd())
	return rootCmd
}

func newCreateAdminCmd() *cobra.Command {
	var email, password, firstName, lastName string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator or promote an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			db.InitDB()
			svc := authservice.New(authrepo.NewUserRepository(db.DB))
			user, created, err := svc.EnsureAdmin(email, password, firstName, lastName)
			if err != nil {
				return err
			}
			if created {
				log.Printf("✅ Administrator %s created", user.Email)
			} else {
				log.Printf("✅ %s promoted to administrator", user.Email)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Administrator email")
	cmd.Flags().StringVar(&password, "password", "", "Administrator password")
	cmd.Flags().StringVar(&firstName, "first-name", "Admin", "First name for a new account")
	cmd.Flags().StringVar(&lastName, "last-name", "User", "Last name for a new account")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func runServer(exportRoutes bool) error {
	db.InitDB()

	uploadPath := config.Get().Upload.Path
	checkSecurePath(uploadPath)
	if err := os.MkdirAll(uploadPath, 0755); err != nil {
		log.Fatal("❌ Cannot create upload directory: ", err)
	}

	tracingCfg := config.Get().Tracing
	shutdownTracing, err := tracing.Init(context.Background(), tracingCfg.Endpoint, tracingCfg.ServiceName)
	if err != nil {
		log.Printf("⚠️ Tracing disabled: %v", err)
		shutdownTracing = func(context.Context) error { return nil }
	}

	r := buildEngine()

	if exportRoutes {
		return exportAPI(r, "routes.json")
	}

	printWelcomeMessage()

	srv := &http.Server{
		Addr:              ":" + config.Get().Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server listening on :%s\n", config.Get().Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server failed to start: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Forced shutdown: %v", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Printf("⚠️ Tracer shutdown: %v", err)
	}
	if err := platformservice.CloseRedisClient(); err != nil {
		log.Printf("⚠️ Redis close: %v", err)
	}
	log.Println("✅ Server stopped")
	return nil
}

// buildEngine wires repositories, modules and routes on db.DB.
func buildEngine() *gin.Engine {
	gin.SetMode(config.Get().Server.Mode)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	applyTrustedProxies(r, config.Get().Server.TrustedProxies)

	files := storage.NewDiskStoreFromConfig(config.Get().Upload)
	router.NewRouter(modules.NewFromDB(db.DB, files)).Init(r)
	return r
}

// applyTrustedProxies trusts the listed proxies for X-Forwarded-For.
// An empty or invalid list trusts nobody, so ClientIP is the socket peer.
func applyTrustedProxies(r *gin.Engine, raw string) {
	proxies := splitTrustedProxyList(raw)
	if len(proxies) == 0 {
		_ = r.SetTrustedProxies(nil)
		return
	}
	for _, p := range proxies {
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				log.Printf("⚠️ Invalid trusted proxy %q, trusting none", p)
				_ = r.SetTrustedProxies(nil)
				return
			}
		}
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		log.Printf("⚠️ Failed to set trusted proxies: %v", err)
		_ = r.SetTrustedProxies(nil)
	}
}

func splitTrustedProxyList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		switch r {
		case ',', ';', ' ', '\n', '\t', '\r':
			return true
		}
		return false
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func printWelcomeMessage() {
	fmt.Println()
	fmt.Println(" ┌───────────────────────────────────────────────────────┐")
	fmt.Printf(" │   💧  %s\n", consts.ApplicationName)
	fmt.Println(" ├───────────────────────────────────────────────────────┤")
	fmt.Printf(" │   📦  Version : %s\n", consts.Version)
	fmt.Printf(" │   🔥  Port    : %s\n", config.Get().Server.Port)
	fmt.Printf(" │   🗄️  Database: %s\n", config.Get().Database.Type)
	fmt.Println(" └───────────────────────────────────────────────────────┘")
	fmt.Println()
}

func exportAPI(r *gin.Engine, path string) error {
	type RouteInfo struct {
		Method  string `json:"method"`
		Path    string `json:"path"`
		Handler string `json:"handler"`
	}

	var exportList []RouteInfo
	for _, route := range r.Routes() {
		exportList = append(exportList, RouteInfo{
			Method:  route.Method,
			Path:    route.Path,
			Handler: route.Handler,
		})
	}

	file, err := json.MarshalIndent(exportList, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, file, 0644); err != nil {
		return err
	}
	log.Printf("✅ Routes exported to %s", path)
	return nil
}

// checkSecurePath refuses upload roots that would expose the source tree.
func checkSecurePath(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		log.Fatalf("❌ Cannot resolve path: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("❌ Cannot read working directory: %v", err)
	}

	if absPath == cwd {
		log.Fatalf("❌ Unsafe config: upload directory '%s' must not be the project root", path)
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err == nil && !strings.HasPrefix(rel, "..") {
		relSlash := filepath.ToSlash(rel)

		// Inside the working directory only these top-level dirs may be served.
		allowedDirs := []string{
			"uploads",
			"public",
			"assets",
			"static",
			"tmp",
		}

		isAllowed := false
		firstComponent := strings.Split(relSlash, "/")[0]
		for _, allowed := range allowedDirs {
			if strings.EqualFold(firstComponent, allowed) {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			log.Fatalf("❌ Unsafe config: upload directory '%s' (resolved to '%s') must live under one of %v", path, relSlash, allowedDirs)
		}
	}
}
