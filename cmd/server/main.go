package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/romich96/AlexCoffee/internal/checkout"
	"github.com/romich96/AlexCoffee/internal/config"
	"github.com/romich96/AlexCoffee/internal/handlers"
	"github.com/romich96/AlexCoffee/internal/mailer"
	"github.com/romich96/AlexCoffee/internal/store"
)

func main() {
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// Using TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}

	if err := db.Migrate("migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Mailer: mock emails through the log until SMTP is configured
	var notifier checkout.Notifier = mailer.LogMailer{}
	if cfg.SMTPHost != "" {
		notifier = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPSender, cfg.SMTPPassword)
	}
	checkoutService := checkout.NewService(db, notifier)

	// 6. Setup Handlers
	shopHandler := &handlers.ShopHandler{
		Store:        db,
		Templates:    templates,
		SessionStore: sessionStore,
		Checkout:     checkoutService,
	}
	adminHandler := &handlers.AdminHandler{
		Store:        db,
		SessionStore: sessionStore,
		Templates:    templates,
	}
	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	mux.Handle("/metrics", promhttp.Handler())

	// Rate Limiter for public mutations
	rateLimiter := handlers.NewRateLimiter(2 * time.Second)

	// Public Routes
	mux.HandleFunc("/{$}", shopHandler.Index)
	mux.HandleFunc("/category/{url}", shopHandler.Category)
	mux.HandleFunc("/product/{url}", shopHandler.Product)
	mux.HandleFunc("/search", shopHandler.Search)

	// Cart
	mux.HandleFunc("/cart", shopHandler.ViewCart)
	mux.HandleFunc("POST /cart/add", rateLimiter.Middleware(shopHandler.AddToCart))
	mux.HandleFunc("POST /cart/remove", shopHandler.RemoveFromCart)
	mux.HandleFunc("POST /cart/clear", shopHandler.ClearCart)

	// Checkout
	mux.HandleFunc("/checkout", shopHandler.CheckoutForm)
	mux.HandleFunc("POST /checkout", rateLimiter.Middleware(shopHandler.SubmitCheckout))
	mux.HandleFunc("/order/confirmed", shopHandler.OrderConfirmed)

	mux.HandleFunc("/login", adminHandler.LoginGet)
	mux.HandleFunc("POST /login", adminHandler.LoginPost)
	mux.HandleFunc("/logout", adminHandler.Logout)

	// Protected Routes
	mux.HandleFunc("/admin", adminHandler.AuthMiddleware(adminHandler.Dashboard))
	mux.HandleFunc("/admin/orders", adminHandler.AuthMiddleware(adminHandler.ListOrders))
	mux.HandleFunc("POST /admin/orders/update", adminHandler.AuthMiddleware(adminHandler.UpdateOrderStatus))

	mux.HandleFunc("/admin/products", adminHandler.AuthMiddleware(adminHandler.ListProducts))
	mux.HandleFunc("/admin/products/new", adminHandler.AuthMiddleware(adminHandler.AddProductForm))
	mux.HandleFunc("POST /admin/products", adminHandler.AuthMiddleware(adminHandler.CreateProduct))
	mux.HandleFunc("/admin/products/edit", adminHandler.AuthMiddleware(adminHandler.EditProductForm))
	mux.HandleFunc("POST /admin/products/update", adminHandler.AuthMiddleware(adminHandler.UpdateProduct))
	mux.HandleFunc("POST /admin/products/delete", adminHandler.AuthMiddleware(adminHandler.DeleteProduct))

	mux.HandleFunc("/admin/categories", adminHandler.AuthMiddleware(adminHandler.ListCategories))
	mux.HandleFunc("POST /admin/categories", adminHandler.AuthMiddleware(adminHandler.CreateCategory))
	mux.HandleFunc("POST /admin/categories/update", adminHandler.AuthMiddleware(adminHandler.UpdateCategory))
	mux.HandleFunc("POST /admin/categories/delete", adminHandler.AuthMiddleware(adminHandler.DeleteCategory))

	mux.HandleFunc("/admin/users", adminHandler.AuthMiddleware(adminHandler.ListStaff))
	mux.HandleFunc("POST /admin/users", adminHandler.AuthMiddleware(adminHandler.CreateStaff))
	mux.HandleFunc("POST /admin/users/delete", adminHandler.AuthMiddleware(adminHandler.DeleteStaff))

	// 7. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 8. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
