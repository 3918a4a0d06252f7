package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultAPIBaseURL = "https://my.living-apps.de/rest"

// Collections 五个后端 app 的 ID
type Collections struct {
	Lagerorte         string `yaml:"lagerorte"`
	Mitarbeiter       string `yaml:"mitarbeiter"`
	Werkzeuge         string `yaml:"werkzeuge"`
	Werkzeugausgabe   string `yaml:"werkzeugausgabe"`
	Werkzeugrueckgabe string `yaml:"werkzeugrueckgabe"`
}

func DefaultCollections() Collections {
	return Collections{
		Lagerorte:         "697b8682ba3f894a922a88c8",
		Mitarbeiter:       "697b868b271cdba1f355487c",
		Werkzeuge:         "697b868cc0013ffdb5f1e82d",
		Werkzeugausgabe:   "697b868d6b34303ccedce8ad",
		Werkzeugrueckgabe: "697b868ded3c30177996c1c9",
	}
}

type Config struct {
	Port          string
	WebOrigin     string
	APIBaseURL    string
	BackendCookie string
	// 0 = 用 transport 默认值
	BackendTimeout time.Duration
	RedisAddr      string
	RedisPwd       string
	SessionTTL     time.Duration
	Location       *time.Location
	LogLevel       string
	LogFile        string
	Collections    Collections
}

// LoadEnv 读取 .env（不存在不算错）
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}
}

func Load() (Config, error) {
	ttlSec, err := strconv.Atoi(get("SESSION_TTL_SECONDS", "86400"))
	if err != nil || ttlSec <= 0 {
		return Config{}, fmt.Errorf("invalid SESSION_TTL_SECONDS %q", os.Getenv("SESSION_TTL_SECONDS"))
	}
	timeoutSec, err := strconv.Atoi(get("BACKEND_TIMEOUT_SECONDS", "0"))
	if err != nil || timeoutSec < 0 {
		return Config{}, fmt.Errorf("invalid BACKEND_TIMEOUT_SECONDS %q", os.Getenv("BACKEND_TIMEOUT_SECONDS"))
	}
	tz := get("TIMEZONE", "Europe/Berlin")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Config{}, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}

	cols := DefaultCollections()
	if path := os.Getenv("COLLECTIONS_FILE"); path != "" {
		if cols, err = LoadCollections(path, cols); err != nil {
			return Config{}, err
		}
	}
	if err := cols.Validate(); err != nil {
		return Config{}, err
	}

	return Config{
		Port:           get("PORT", "3001"),
		WebOrigin:      get("WEB_ORIGIN", "http://localhost:3001"),
		APIBaseURL:     strings.TrimRight(get("API_BASE_URL", DefaultAPIBaseURL), "/"),
		BackendCookie:  get("BACKEND_SESSION_COOKIE", "session"),
		BackendTimeout: time.Duration(timeoutSec) * time.Second,
		RedisAddr:      get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:       os.Getenv("REDIS_PASSWORD"),
		SessionTTL:     time.Duration(ttlSec) * time.Second,
		Location:       loc,
		LogLevel:       get("LOG_LEVEL", "info"),
		LogFile:        os.Getenv("LOG_FILE"),
		Collections:    cols,
	}, nil
}

// LoadCollections 用 YAML 文件覆盖 base 中的 ID，文件里没写的保持不变
func LoadCollections(path string, base Collections) (Collections, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return base, fmt.Errorf("failed to read collections file: %w", err)
	}
	var override Collections
	if err := yaml.Unmarshal(data, &override); err != nil {
		return base, fmt.Errorf("failed to parse collections file: %w", err)
	}
	merge := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	merge(&base.Lagerorte, override.Lagerorte)
	merge(&base.Mitarbeiter, override.Mitarbeiter)
	merge(&base.Werkzeuge, override.Werkzeuge)
	merge(&base.Werkzeugausgabe, override.Werkzeugausgabe)
	merge(&base.Werkzeugrueckgabe, override.Werkzeugrueckgabe)
	return base, nil
}

var appIDPattern = regexp.MustCompile(`^[a-fA-F0-9]{24}$`)

func (c Collections) Validate() error {
	for name, id := range map[string]string{
		"lagerorte":         c.Lagerorte,
		"mitarbeiter":       c.Mitarbeiter,
		"werkzeuge":         c.Werkzeuge,
		"werkzeugausgabe":   c.Werkzeugausgabe,
		"werkzeugrueckgabe": c.Werkzeugrueckgabe,
	} {
		if !appIDPattern.MatchString(id) {
			return fmt.Errorf("collection %s: invalid app id %q", name, id)
		}
	}
	return nil
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
