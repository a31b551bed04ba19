package config

import "os"

// Config captures process-level configuration. Everything is injected from
// main; components never read the environment themselves.
type Config struct {
	Addr          string
	MongoURI      string
	MongoDatabase string
	JWTSigningKey string
	PublicDir     string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	addr := os.Getenv("DEVCONNECT_ADDR")
	if addr == "" {
		addr = ":4000"
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	mongoDB := os.Getenv("MONGO_DATABASE")
	if mongoDB == "" {
		mongoDB = "devconnect"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	publicDir := os.Getenv("PUBLIC_DIR")
	if publicDir == "" {
		publicDir = "public"
	}

	return Config{
		Addr:          addr,
		MongoURI:      mongoURI,
		MongoDatabase: mongoDB,
		JWTSigningKey: jwtSigningKey,
		PublicDir:     publicDir,
	}
}
