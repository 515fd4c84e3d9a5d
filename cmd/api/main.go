package main

import (
	"expvar"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"bgmsons/internal/auth"
	"bgmsons/internal/catalog"
	"bgmsons/internal/db"
	"bgmsons/internal/mailer"
	"bgmsons/internal/ratelimiter"
	"bgmsons/internal/store"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "1.0.0"

func envString(key, fallback string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if val, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
		fmt.Println("Invalid", key, "- defaulting to", fallback)
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
		fmt.Println("Invalid", key, "- defaulting to", fallback)
	}
	return fallback
}

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel)

	return zap.New(core).Sugar(), nil
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg := config{
		addr:        envString("ADDR", ":8080"),
		env:         envString("ENV", "development"),
		frontendURL: envString("FRONTEND_URL", "http://localhost:5173"),
		db: dbConfig{
			addr:         os.Getenv("DB_ADDR"),
			maxOpenConns: envInt("DB_MAX_OPEN_CONNS", 25),
			maxIdleConns: envInt("DB_MAX_IDLE_CONNS", 25),
			maxIdleTime:  envString("DB_MAX_IDLE_TIME", "15m"),
		},
		mail: mailConfig{
			host:         os.Getenv("SMTP_HOST"),
			port:         envInt("SMTP_PORT", 587),
			username:     os.Getenv("SMTP_USERNAME"),
			password:     os.Getenv("SMTP_PASSWORD"),
			fromEmail:    os.Getenv("SMTP_FROM_EMAIL"),
			enquiryEmail: os.Getenv("BGM_ENQUIRY_EMAIL"),
			domain:       envString("BGM_DOMAIN", "localhost"),
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
			token: tokenConfig{
				secret: os.Getenv("BGM_JWT_SECRET"),
				exp:    time.Hour * 24 * 7, // 7 days
				iss:    "bgmsons",
			},
		},
		rateLimiter: ratelimiter.Config{
			RequestsPerTimeFrame: envInt("RATELIMITER_REQUESTS_COUNT", 20),
			TimeFrame:            5 * time.Second,
			Enabled:              envBool("RATE_LIMITER_ENABLED", true),
		},
	}

	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	if cfg.auth.token.secret == "" {
		logger.Fatal("BGM_JWT_SECRET must be set")
	}

	// Product catalog rides on the pgx pool; the admin store keeps the
	// database/sql interface.
	pool, err := db.New(cfg.db.addr, int32(cfg.db.maxOpenConns), cfg.db.maxIdleTime)
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()

	sqlDB, err := db.NewSQL(cfg.db.addr, cfg.db.maxOpenConns, cfg.db.maxIdleConns, cfg.db.maxIdleTime)
	if err != nil {
		logger.Fatal(err)
	}
	defer sqlDB.Close()

	logger.Info("database connection pool established")

	codec, err := catalog.NewIDCodec(envString("HASHID_SALT", "bgmsons-catalog"))
	if err != nil {
		logger.Fatal(err)
	}

	storage := store.NewStorage(sqlDB)
	products := catalog.NewRepository(pool, codec)

	smtp, err := mailer.NewSMTPClient(
		cfg.mail.host,
		cfg.mail.port,
		cfg.mail.username,
		cfg.mail.password,
		cfg.mail.fromEmail,
		cfg.mail.enquiryEmail,
	)
	if err != nil {
		logger.Fatal(err)
	}

	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	jwtAuthenticator := auth.NewJWTAuthenticator(
		cfg.auth.token.secret,
		cfg.auth.token.iss,
		cfg.auth.token.iss,
		cfg.auth.token.exp,
	)

	app := &application{
		config:        cfg,
		logger:        logger,
		store:         storage,
		products:      products,
		mailer:        smtp,
		authenticator: jwtAuthenticator,
		rateLimiter:   rateLimiter,
	}

	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		return sqlDB.Stats()
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
