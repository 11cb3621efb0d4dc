package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"motoweather/internal/assess"
	"motoweather/internal/mail"
)

var validate = validator.New()

// AppConfig holds every tunable the pipeline depends on. The defaults
// reproduce the original commute setup; all of them can be overridden from
// the environment.
type AppConfig struct {
	OpenWeatherAPIKey string `validate:"required"`
	OpenAIAPIKey      string `validate:"required"`
	OpenAIBaseURL     string
	OpenAIModel       string  `validate:"required"`
	OpenAITemperature float32 `validate:"gte=0,lte=2"`

	// Coordinate the forecast is fetched for (commute midpoint).
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`

	// CommuteTimes are the wall-clock labels evaluated each run, in order.
	CommuteTimes []string `validate:"required,unique,dive,datetime=15:04"`

	Thresholds assess.Thresholds

	// Decision tags the model is instructed to emit and the extractor
	// matches exactly.
	SafeTag    string `validate:"required"`
	NotSafeTag string `validate:"required,nefield=SafeTag"`

	Mail mail.Config

	// FetchTimeout bounds the forecast HTTP call.
	FetchTimeout time.Duration

	// Timezone governs the weekday gate and the narrative date.
	Timezone *time.Location

	// DailyRunAt schedules the in-process daily trigger ("HH:MM");
	// empty disables it, leaving only the manual /run endpoint.
	DailyRunAt string `validate:"omitempty,datetime=15:04"`

	Port string
}

// Load reads configuration from the environment with the original commute
// values as defaults, and validates it once at startup.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		OpenWeatherAPIKey: os.Getenv("OWM_API_KEY"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:       getenvDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAITemperature: float32(getenvFloat("OPENAI_TEMPERATURE", 0.7)),

		Latitude:  getenvFloat("COMMUTE_LAT", 53.5305),
		Longitude: getenvFloat("COMMUTE_LON", -1.1469),

		SafeTag:    getenvDefault("SAFE_TAG", "[SAFE]"),
		NotSafeTag: getenvDefault("NOT_SAFE_TAG", "[NOT SAFE]"),

		DailyRunAt: os.Getenv("DAILY_RUN_AT"),
		Port:       getenvDefault("PORT", "3000"),
	}

	cfg.CommuteTimes = splitList(getenvDefault("COMMUTE_TIMES", "06:00,09:00,12:00,15:00,18:00"))

	cfg.Thresholds = assess.Thresholds{
		MinTempC:       getenvFloat("MIN_TEMP_C", 5),
		MaxWindMS:      getenvFloat("MAX_WIND_MS", 20),
		MinVisibilityM: getenvFloat("MIN_VISIBILITY_M", 3000),
		RiskyRainMM:    getenvFloat("RISKY_RAIN_MM", 2.0),
		BadWeather:     splitList(getenvDefault("BAD_WEATHER", "snow,thunderstorm,hail")),
		DangerousRain:  splitList(getenvDefault("DANGEROUS_RAIN", "heavy intensity rain,very heavy rain,extreme rain")),
	}

	cfg.Mail = mail.Config{
		Service:        getenvDefault("MAIL_SERVICE", mail.ServiceSMTP),
		From:           os.Getenv("EMAIL_FROM"),
		To:             os.Getenv("EMAIL_TO"),
		Password:       os.Getenv("EMAIL_PASSWORD"),
		SMTPServer:     getenvDefault("SMTP_SERVER", "smtp.gmail.com"),
		SMTPPort:       getenvInt("SMTP_PORT", 587),
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
	}

	timeoutStr := getenvDefault("FETCH_TIMEOUT", "15s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_TIMEOUT: %w", err)
	}
	cfg.FetchTimeout = timeout

	tzName := getenvDefault("TIMEZONE", "Europe/London")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Timezone = loc

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
