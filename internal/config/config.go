package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	Store       Store
	Redis       Redis `envPrefix:"REDIS_"`
	Auth        Auth
	Checkout    Checkout

	Stripe     Stripe     `envPrefix:"STRIPE_"`
	Razorpay   Razorpay   `envPrefix:"RAZORPAY_"`
	Cloudinary Cloudinary `envPrefix:"CLOUDINARY_"`
}

type Store struct {
	Driver        string `env:"STORE_DRIVER" envDefault:"mongo"` // mongo, mysql, sqlite
	MongoURI      string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"e-commerce"`
	DatabaseURL   string `env:"DATABASE_URL" envDefault:"storefront.db"`
}

type Redis struct {
	Addr     string `env:"ADDR"` // empty disables the product cache
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type Auth struct {
	JWTSecret     string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	AdminEmail    string        `env:"ADMIN_EMAIL"`
	AdminPassword string        `env:"ADMIN_PASSWORD"`
}

type Checkout struct {
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	Currency    string `env:"CURRENCY" envDefault:"inr"`
	DeliveryFee int64  `env:"DELIVERY_FEE" envDefault:"10"`
}

type Stripe struct {
	SecretKey string `env:"SECRET_KEY"`
}

type Razorpay struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.razorpay.com"`
	KeyID      string `env:"KEY_ID"`
	KeySecret  string `env:"KEY_SECRET"`
}

type Cloudinary struct {
	Name      string `env:"NAME"`
	APIKey    string `env:"API_KEY"`
	SecretKey string `env:"SECRET_KEY"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"4000"`
}

func (h HTTPServer) Addr() string {
	return h.Host + ":" + h.Port
}
