package shared

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string

	StoreDriver string // mongo|memory
	MongoURI    string
	DBName      string
	Collections CollectionNames

	RedisAddr string // empty disables the cache
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	FirebaseProjectID string
	FirebaseCredFile  string
	FirebaseCredJSON  string
	IdentityRPS       int

	CORSOrigins      []string
	ReconcileWorkers int
}

type CollectionNames struct {
	Users, Properties, Wishlist, Reviews, Offers string
}

// Load reads the environment, after merging an optional .env file.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file, using process environment")
	}
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    httpAddr(),
		MetricsAddr: env("METRICS_ADDR", ""),
		StoreDriver: env("STORE_DRIVER", "mongo"),
		MongoURI:    mongoURI(),
		DBName:      env("DB_NAME", "estateDB"),
		Collections: CollectionNames{
			Users:      env("MONGODB_COLLECTION_USERS", "users"),
			Properties: env("MONGODB_COLLECTION_PROPERTIES", "properties"),
			Wishlist:   env("MONGODB_COLLECTION_WISHLIST", "wishlist"),
			Reviews:    env("MONGODB_COLLECTION_REVIEWS", "reviews"),
			Offers:     env("MONGODB_COLLECTION_OFFERS", "offers"),
		},
		RedisAddr:         env("REDIS_ADDR", ""),
		RedisDB:           atoi("REDIS_DB", 0),
		RedisPass:         env("REDIS_PASSWORD", ""),
		CacheTTL:          time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		FirebaseProjectID: env("FIREBASE_PROJECT_ID", ""),
		FirebaseCredFile:  env("FIREBASE_CREDENTIALS_FILE", ""),
		FirebaseCredJSON:  env("FIREBASE_CREDENTIALS_JSON", ""),
		IdentityRPS:       atoi("IDENTITY_RPS", 5),
		CORSOrigins:       splitList(env("CORS_ORIGINS", "http://localhost:5173,http://localhost:5174")),
		ReconcileWorkers:  atoi("RECONCILE_WORKERS", 4),
	}
	if c.StoreDriver == "mongo" && c.MongoURI == "" {
		log.Warn().Msg("no MongoDB address: set MONGODB_URI or DB_USER/DB_PASS/DB_CLUSTER")
	}
	if c.FirebaseCredFile == "" && c.FirebaseCredJSON == "" {
		log.Warn().Msg("firebase credentials are empty; identity accounts will not be deleted")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// httpAddr prefers an explicit HTTP_ADDR, then PORT as hosting platforms set it.
func httpAddr() string {
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		return v
	}
	return ":" + env("PORT", "5000")
}

// mongoURI uses MONGODB_URI as given, or assembles an Atlas SRV address
// from the user, password and cluster host.
func mongoURI() string {
	if v := os.Getenv("MONGODB_URI"); v != "" {
		return v
	}
	user, pass, cluster := os.Getenv("DB_USER"), os.Getenv("DB_PASS"), os.Getenv("DB_CLUSTER")
	if user == "" || pass == "" || cluster == "" {
		return ""
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
		url.QueryEscape(user), url.QueryEscape(pass), cluster)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
