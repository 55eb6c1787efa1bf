package locale

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Chrissankov/gymshark-ecommerce/core/kv"
	"github.com/Chrissankov/gymshark-ecommerce/core/logger"
	"github.com/Chrissankov/gymshark-ecommerce/pkg/broadcast"
)

var (
	ErrUnsupported     = errors.New("locale: unsupported language")
	ErrInvalidCurrency = errors.New("locale: invalid currency code")
	ErrStorage         = errors.New("locale: storage failure")
)

// DefaultSupported are the storefront languages, default first.
var DefaultSupported = []language.Tag{language.English, language.Arabic}

// Config for the locale store.
type Config struct {
	Supported []string `env:"LOCALE_SUPPORTED" envDefault:"en,ar" envSeparator:","`
	Currency  string   `env:"LOCALE_CURRENCY" envDefault:"USD"`
}

// Store is the persisted language preference.
type Store struct {
	mu        sync.Mutex
	storage   kv.Storage
	supported []language.Tag
	matcher   language.Matcher
	unit      currency.Unit
	current   *broadcast.Subject[language.Tag]
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store) error

// WithSupported replaces DefaultSupported. The first tag is the default.
func WithSupported(codes ...string) Option {
	return func(s *Store) error {
		tags := make([]language.Tag, 0, len(codes))
		for _, code := range codes {
			tag, err := language.Parse(code)
			if err != nil {
				return fmt.Errorf("%w: %q: %v", ErrUnsupported, code, err)
			}
			tags = append(tags, tag)
		}
		if len(tags) > 0 {
			s.supported = tags
		}
		return nil
	}
}

// WithCurrency sets the ISO 4217 currency used by FormatPrice.
func WithCurrency(code string) Option {
	return func(s *Store) error {
		unit, err := currency.ParseISO(code)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
		}
		s.unit = unit
		return nil
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) error {
		if l != nil {
			s.logger = l
		}
		return nil
	}
}

// FromConfig turns cfg into options. Empty fields keep the defaults.
func FromConfig(cfg Config) []Option {
	opts := []Option{WithSupported(cfg.Supported...)}
	if cfg.Currency != "" {
		opts = append(opts, WithCurrency(cfg.Currency))
	}
	return opts
}

// New reads the persisted language. Missing or unsupported values fall back
// to the default language without being rewritten.
func New(ctx context.Context, storage kv.Storage, opts ...Option) (*Store, error) {
	s := &Store{
		storage:   storage,
		supported: DefaultSupported,
		unit:      currency.USD,
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.matcher = language.NewMatcher(s.supported)

	current := s.supported[0]
	raw, ok, err := storage.Get(ctx, kv.KeyCurrentLang)
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}
	if ok {
		if tag, err := s.lookup(raw); err == nil {
			current = tag
		} else {
			s.logger.WarnContext(ctx, "ignoring persisted language",
				logger.Component("locale"), logger.Key(kv.KeyCurrentLang), logger.Error(err))
		}
	}

	s.current = broadcast.NewSubject(current)
	return s, nil
}

// Current returns the active language.
func (s *Store) Current() language.Tag {
	return s.current.Value()
}

// Code returns the active language as a BCP 47 string.
func (s *Store) Code() string {
	return s.Current().String()
}

// Supported returns the accepted languages, default first.
func (s *Store) Supported() []string {
	codes := make([]string, len(s.supported))
	for i, tag := range s.supported {
		codes[i] = tag.String()
	}
	return codes
}

// Set persists code and notifies subscribers.
func (s *Store) Set(ctx context.Context, code string) error {
	tag, err := s.lookup(code)
	if err != nil {
		return err
	}

	defer s.current.Flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(ctx, kv.KeyCurrentLang, tag.String()); err != nil {
		return errors.Join(ErrStorage, err)
	}
	s.logger.DebugContext(ctx, "language changed", logger.Component("locale"), slog.String("lang", tag.String()))
	s.current.Queue(tag)
	return nil
}

// Match returns the supported language closest to an Accept-Language header.
func (s *Store) Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return s.supported[0]
	}
	_, index, confidence := s.matcher.Match(tags...)
	if confidence == language.No {
		return s.supported[0]
	}
	return s.supported[index]
}

// IsRTL reports whether the active language is written right to left.
func (s *Store) IsRTL() bool {
	return IsRTL(s.Current())
}

// FormatPrice renders amount in the configured currency for the active language.
func (s *Store) FormatPrice(amount float64) string {
	return message.NewPrinter(s.Current()).Sprint(currency.Symbol(s.unit.Amount(amount)))
}

// Subscribe receives the active language immediately and after every Set.
func (s *Store) Subscribe(fn func(language.Tag)) *broadcast.Subscription {
	return s.current.Subscribe(fn)
}

// Close detaches subscribers.
func (s *Store) Close() {
	s.current.Close()
}

func (s *Store) lookup(code string) (language.Tag, error) {
	tag, err := language.Parse(code)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q", ErrUnsupported, code)
	}
	for _, supported := range s.supported {
		if supported == tag {
			return supported, nil
		}
	}
	return language.Und, fmt.Errorf("%w: %q", ErrUnsupported, code)
}

var rtlScripts = map[string]bool{
	"Arab": true,
	"Hebr": true,
	"Thaa": true,
	"Syrc": true,
	"Nkoo": true,
	"Adlm": true,
}

// IsRTL reports whether tag is written right to left.
func IsRTL(tag language.Tag) bool {
	script, _ := tag.Script()
	return rtlScripts[script.String()]
}
