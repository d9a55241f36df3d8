// Package servicestest provides in-memory stores and providers for exercising
// the services and handlers without Postgres or network access.
package servicestest

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/epeers/networth/internal/marketdata"
	"github.com/epeers/networth/internal/models"
	"github.com/epeers/networth/internal/repository"
)

// HoldingStore is an in-memory holding repository
type HoldingStore struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]models.Holding
	Err    error // returned by every call when set
}

func NewHoldingStore() *HoldingStore {
	return &HoldingStore{items: map[int64]models.Holding{}}
}

func (s *HoldingStore) Create(ctx context.Context, h *models.Holding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.insert(h)
	return nil
}

func (s *HoldingStore) CreateAll(ctx context.Context, holdings []models.Holding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i := range holdings {
		s.insert(&holdings[i])
	}
	return nil
}

func (s *HoldingStore) insert(h *models.Holding) {
	s.nextID++
	h.ID = s.nextID
	now := time.Now()
	h.CreatedAt, h.UpdatedAt = now, now
	s.items[h.ID] = *h
}

func (s *HoldingStore) GetByID(ctx context.Context, id int64) (*models.Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	h, ok := s.items[id]
	if !ok {
		return nil, repository.ErrHoldingNotFound
	}
	return &h, nil
}

func (s *HoldingStore) ListByOwner(ctx context.Context, ownerID int64) ([]models.Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []models.Holding
	for _, h := range s.items {
		if h.OwnerID == ownerID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *HoldingStore) Update(ctx context.Context, h *models.Holding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.items[h.ID]; !ok {
		return repository.ErrHoldingNotFound
	}
	h.UpdatedAt = time.Now()
	s.items[h.ID] = *h
	return nil
}

func (s *HoldingStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.items[id]; !ok {
		return repository.ErrHoldingNotFound
	}
	delete(s.items, id)
	return nil
}

// Len returns the number of stored holdings
func (s *HoldingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// GrantStore is an in-memory grant repository
type GrantStore struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]models.StockGrant
}

func NewGrantStore() *GrantStore {
	return &GrantStore{items: map[int64]models.StockGrant{}}
}

func (s *GrantStore) Create(ctx context.Context, g *models.StockGrant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	g.ID = s.nextID
	g.CreatedAt = time.Now()
	s.items[g.ID] = *g
	return nil
}

func (s *GrantStore) GetByID(ctx context.Context, id int64) (*models.StockGrant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.items[id]
	if !ok {
		return nil, repository.ErrGrantNotFound
	}
	return &g, nil
}

func (s *GrantStore) ListByOwner(ctx context.Context, ownerID int64) ([]models.StockGrant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.StockGrant
	for _, g := range s.items {
		if g.OwnerID == ownerID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *GrantStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return repository.ErrGrantNotFound
	}
	delete(s.items, id)
	return nil
}

// SettingsStore keeps settings per owner, creating defaults on first read
type SettingsStore struct {
	mu    sync.Mutex
	items map[int64]models.Settings
}

func NewSettingsStore() *SettingsStore {
	return &SettingsStore{items: map[int64]models.Settings{}}
}

func (s *SettingsStore) Get(ctx context.Context, ownerID int64) (*models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.items[ownerID]
	if !ok {
		st = models.DefaultSettings(ownerID)
		s.items[ownerID] = st
	}
	st = st.Effective()
	return &st, nil
}

func (s *SettingsStore) Save(ctx context.Context, st *models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st.UpdatedAt = time.Now()
	s.items[st.OwnerID] = *st
	return nil
}

// QuoteStore is an in-memory L2 cache. Ages are ignored.
type QuoteStore struct {
	mu     sync.Mutex
	quotes map[string]models.Quote
	fx     map[string]models.FXRate
	Err    error // returned by reads when set
}

func NewQuoteStore() *QuoteStore {
	return &QuoteStore{quotes: map[string]models.Quote{}, fx: map[string]models.FXRate{}}
}

func (s *QuoteStore) GetCachedQuotes(ctx context.Context, symbols []string, maxAge time.Duration) (map[string]models.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make(map[string]models.Quote)
	for _, sym := range symbols {
		if q, ok := s.quotes[sym]; ok {
			out[sym] = q
		}
	}
	return out, nil
}

func (s *QuoteStore) CacheQuotes(ctx context.Context, quotes []models.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range quotes {
		s.quotes[q.Symbol] = q
	}
	return nil
}

func (s *QuoteStore) GetCachedFXRate(ctx context.Context, pair string, maxAge time.Duration) (*models.FXRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	fx, ok := s.fx[pair]
	if !ok {
		return nil, nil
	}
	return &fx, nil
}

func (s *QuoteStore) CacheFXRate(ctx context.Context, fx *models.FXRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fx[fx.Pair] = *fx
	return nil
}

// Quote returns a cached quote, for assertions
func (s *QuoteStore) Quote(symbol string) (models.Quote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quotes[symbol]
	return q, ok
}

// ErrNoPrice is returned by Provider and Scraper for unknown symbols
var ErrNoPrice = errors.New("no price")

// Provider is a scripted quote provider. Symbols absent from Prices fail.
type Provider struct {
	mu       sync.Mutex
	Disabled bool
	Src      models.QuoteSource // empty reports alphavantage
	Prices   map[string]float64
	FXRate   float64 // zero fails the FX call
	calls    map[string]int
	pairs    map[string]int
}

func (p *Provider) Enabled() bool { return !p.Disabled }

func (p *Provider) Source() models.QuoteSource {
	if p.Src == "" {
		return models.SourceAlphaVantage
	}
	return p.Src
}

func (p *Provider) GetQuote(ctx context.Context, symbol string) (*marketdata.ParsedQuote, error) {
	p.record(symbol)
	return p.lookup(symbol)
}

func (p *Provider) GetPairQuote(ctx context.Context, pair string) (*marketdata.ParsedQuote, error) {
	p.mu.Lock()
	if p.pairs == nil {
		p.pairs = map[string]int{}
	}
	p.pairs[pair]++
	p.mu.Unlock()
	return p.lookup(pair)
}

func (p *Provider) GetExchangeRate(ctx context.Context, from, to string) (float64, error) {
	p.record(from + "/" + to)
	if p.FXRate <= 0 {
		return 0, ErrNoPrice
	}
	return p.FXRate, nil
}

func (p *Provider) lookup(symbol string) (*marketdata.ParsedQuote, error) {
	price, ok := p.Prices[symbol]
	if !ok {
		return nil, ErrNoPrice
	}
	return &marketdata.ParsedQuote{Symbol: symbol, Price: price}, nil
}

func (p *Provider) record(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.calls == nil {
		p.calls = map[string]int{}
	}
	p.calls[key]++
}

// Calls returns how many times key was requested as a ticker or FX pair
func (p *Provider) Calls(key string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[key]
}

// PairCalls returns how many times pair was requested through GetPairQuote
func (p *Provider) PairCalls(pair string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pairs[pair]
}

// Scraper is a scripted TASE price scraper
type Scraper struct {
	mu     sync.Mutex
	Prices map[string]float64
	calls  int
}

func (s *Scraper) GetPrice(ctx context.Context, symbol string) (float64, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	price, ok := s.Prices[symbol]
	if !ok {
		return 0, ErrNoPrice
	}
	return price, nil
}

// Calls returns the number of GetPrice calls
func (s *Scraper) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
