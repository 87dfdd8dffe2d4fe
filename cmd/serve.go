package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sketchbook/internal/commission"
	"github.com/ziadkadry99/sketchbook/internal/config"
	"github.com/ziadkadry99/sketchbook/internal/content"
	"github.com/ziadkadry99/sketchbook/internal/db"
	"github.com/ziadkadry99/sketchbook/internal/history"
	"github.com/ziadkadry99/sketchbook/internal/notifications"
	"github.com/ziadkadry99/sketchbook/internal/server"
	"github.com/ziadkadry99/sketchbook/internal/session"
	"github.com/ziadkadry99/sketchbook/internal/site"
)

var (
	servePort int
	serveOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the sketchbook with live page-turn sessions",
	Long: `Starts the HTTP server: the sketchbook page, the page and navigation APIs,
commission requests, page-turn history and the /ws live session endpoint.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}

		stack, err := loadStack(cfg)
		if err != nil {
			return err
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		historyStore := history.NewStore(database)
		if cfg.HistoryDays > 0 {
			cutoff := time.Now().UTC().AddDate(0, 0, -cfg.HistoryDays)
			n, err := historyStore.DeleteBefore(context.Background(), cutoff)
			if err != nil {
				return fmt.Errorf("pruning history: %w", err)
			}
			if n > 0 {
				fmt.Fprintf(os.Stderr, "Pruned %d history events older than %d days\n", n, cfg.HistoryDays)
			}
		}

		srv := server.New(server.Config{
			Port:       cfg.Port,
			AllowAll:   cfg.AllowAllOrigins,
			AdminToken: cfg.AdminToken,
		}, database)

		hub, err := registerAllRoutes(srv, cfg, stack, database, historyStore)
		if err != nil {
			return err
		}
		defer hub.Close()

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			hub.Close()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		url := fmt.Sprintf("http://localhost:%d", cfg.Port)
		fmt.Fprintf(os.Stderr, "sketchbook v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", database.Path())
		fmt.Fprintf(os.Stderr, "  Pages: %d\n", stack.Len())
		fmt.Fprintf(os.Stderr, "  Turn: %v at %d fps\n", cfg.TurnDuration(), cfg.FrameRate)
		if cfg.AdminToken == "" {
			fmt.Fprintln(os.Stderr, "  Warning: admin_token is not set; commissions and history are readable by anyone")
		}
		if serveOpen {
			go func() {
				time.Sleep(300 * time.Millisecond)
				site.OpenBrowser(url)
			}()
		}

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

// registerAllRoutes wires up every feature's routes. The live session hub is
// returned so the caller can close it on shutdown.
func registerAllRoutes(srv *server.Server, cfg *config.Config, stack *content.Stack, database *db.DB, historyStore *history.Store) (*session.Hub, error) {
	api := srv.API()

	// Page shell and page APIs
	s, err := site.New(site.Config{
		Title:          cfg.Title,
		Artist:         cfg.Artist,
		Brand:          cfg.Brand,
		AssetsDir:      cfg.AssetsDir(),
		TurnDuration:   cfg.TurnDuration(),
		WheelThreshold: cfg.WheelThreshold,
		SwipeThreshold: cfg.SwipeThreshold,
	}, stack)
	if err != nil {
		return nil, err
	}
	s.RegisterRoutes(api)

	// Notifications about new requests
	notifStore := notifications.NewStore(database)
	notifDispatcher := notifications.NewDispatcher(notifStore, cfg.NotifyWebhook)
	notifications.RegisterRoutes(srv.Admin(), notifStore, notifDispatcher)
	go func() {
		if n, err := notifDispatcher.RetryPending(context.Background()); err != nil {
			log.Printf("notifications: retry pending: %v", err)
		} else if n > 0 {
			log.Printf("notifications: delivered %d pending notices", n)
		}
	}()

	// Commission requests; reading them back is artist only
	commission.RegisterRoutes(api, commission.NewStore(database),
		commission.WithNotifier(notifDispatcher),
		commission.WithGuard(srv.AdminGuard()))

	// Page-turn history
	history.RegisterRoutes(srv.Admin(), historyStore)

	// Live sessions over WebSocket; not behind the request timeout.
	hub := session.NewHub(stack, session.Options{
		Duration:   cfg.TurnDuration(),
		FrameRate:  cfg.FrameRate,
		Thresholds: thresholds(cfg),
		Brand:      cfg.Brand,
	}, historyStore)
	hub.RegisterRoutes(srv.Router())
	hub.RegisterAdminRoutes(srv.Admin())

	return hub, nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open browser automatically")
	rootCmd.AddCommand(serveCmd)
}
