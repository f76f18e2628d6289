package main

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/zapaeleg/shoe-shop-backend/internal/assistant"
	"github.com/zapaeleg/shoe-shop-backend/internal/cart"
	"github.com/zapaeleg/shoe-shop-backend/internal/catalog"
	"github.com/zapaeleg/shoe-shop-backend/internal/checkout"
	"github.com/zapaeleg/shoe-shop-backend/internal/config"
	"github.com/zapaeleg/shoe-shop-backend/internal/notify"
	"github.com/zapaeleg/shoe-shop-backend/internal/order"
	"github.com/zapaeleg/shoe-shop-backend/internal/session"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	app := fiber.New()
	setupCORS(app)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	bootstrapSchema(db, log)

	sink := notify.NewZapSink(log)

	catalogService := catalog.NewService(catalog.NewPostgresRepository(db))
	catalogHandler := catalog.NewHandler(catalogService)

	orderRepo := order.NewPostgresRepository(db)
	orderHandler := order.NewHandler(order.NewService(orderRepo))

	assistantHandler := assistant.NewHandler(assistant.NewService(assistant.NewPostgresRepository(db)))

	stores := cart.NewSessionStores()
	cartHandler := cart.NewHandler(stores, catalogService, sink)

	pipeline := checkout.NewPipeline(orderRepo, sink, log, cfg.DeliveryFee)
	checkoutHandler := checkout.NewHandler(pipeline, stores, cfg.SubmitTimeout)

	sessionHandler := session.NewHandler([]byte(cfg.JWTSecret))

	// public surface: session issuance, catalog reads, confirmation
	// lookup and the help widget
	sessionHandler.RegisterPublicRoutes(app)
	catalogHandler.RegisterPublicRoutes(app)
	orderHandler.RegisterPublicRoutes(app)
	assistantHandler.RegisterPublicRoutes(app)

	// everything past this point needs a browsing-session token
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	cartHandler.RegisterProtectedRoutes(app)
	checkoutHandler.RegisterProtectedRoutes(app)

	log.Info("starting server", zap.String("addr", cfg.Addr))
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

// bootstrapSchema creates the tables the storefront needs when they do
// not exist yet, and seeds the help widget's decision tree. Statements
// are idempotent so restarts are safe.
func bootstrapSchema(db *sql.DB, log *zap.Logger) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS brands (
            brand_id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            logo_url TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            product_id SERIAL PRIMARY KEY,
            brand_id INT NOT NULL REFERENCES brands(brand_id),
            model TEXT NOT NULL,
            description TEXT,
            material TEXT,
            category TEXT,
            image_url TEXT,
            tags TEXT[] NOT NULL DEFAULT '{}'
        )`,
		`CREATE TABLE IF NOT EXISTS variants (
            variant_id SERIAL PRIMARY KEY,
            product_id INT NOT NULL REFERENCES products(product_id),
            color TEXT NOT NULL,
            size TEXT NOT NULL,
            price numeric NOT NULL DEFAULT 0,
            stock INT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            order_id SERIAL PRIMARY KEY,
            customer_name TEXT NOT NULL,
            customer_phone TEXT NOT NULL,
            delivery_method TEXT NOT NULL,
            shipping_address TEXT,
            total_amount numeric NOT NULL DEFAULT 0,
            status TEXT NOT NULL,
            created_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            order_item_id SERIAL PRIMARY KEY,
            order_id INT NOT NULL REFERENCES orders(order_id),
            variant_id INT NOT NULL,
            quantity INT NOT NULL,
            price_at_purchase numeric NOT NULL,
            product_details jsonb NOT NULL DEFAULT '{}'
        )`,
		`CREATE TABLE IF NOT EXISTS knowledge_base (
            kb_id SERIAL PRIMARY KEY,
            parent_id INT NOT NULL DEFAULT 0,
            question TEXT NOT NULL,
            answer TEXT
        )`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatal("schema bootstrap failed", zap.Error(err))
		}
	}

	// seed the help widget menu when empty; id 1 is the root node
	var kbCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM knowledge_base`).Scan(&kbCount); err == nil && kbCount == 0 {
		seed := []struct {
			parent   int
			question string
			answer   string
		}{
			{0, "Start", ""},
			{1, "Shipping and delivery", ""},
			{1, "Payment methods", "We accept bank transfer. After placing your order you will receive the account details on the confirmation page."},
			{1, "Returns and exchanges", "You can exchange unworn shoes within 15 days. Contact us on WhatsApp with your order number."},
			{2, "How long does delivery take?", "Local deliveries arrive within 1-2 business days."},
			{2, "How much does delivery cost?", "Home delivery has a flat fee; pickup at the store is free."},
		}
		for _, s := range seed {
			var answer *string
			if s.answer != "" {
				answer = &s.answer
			}
			if _, err := db.Exec(`INSERT INTO knowledge_base (parent_id, question, answer) VALUES ($1,$2,$3)`,
				s.parent, s.question, answer); err != nil {
				log.Warn("knowledge base seed failed", zap.Error(err))
				continue
			}
		}
	}
}
