package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"codeberg.org/wexam/server/internal/logger"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultDefinitionURL  = "https://api.dictionaryapi.dev/api/v2/entries/en"
	DefaultDatamuseURL    = "https://api.datamuse.com"
	DefaultTranslationURL = "https://api.mymemory.translated.net/get"
	DefaultLanguagePair   = "en|hi"
	DefaultTimeout        = 8 * time.Second

	CacheTTL         = 24 * time.Hour
	NegativeCacheTTL = 5 * time.Minute

	relatedLimit       = 5
	minSuggestionQuery = 2
	notFoundMarker     = "__NOT_FOUND__"
	cachePrefix        = "dict_"
)

var (
	unsafeWordChars = regexp.MustCompile(`[^\w\s-]`)

	wordsOfTheDay = []string{"serendipity", "ephemeral", "petrichor", "mellifluous", "ineffable", "luminous", "sanguine", "ethereal", "eloquence", "solitude"}
	trendingWords = []string{"nebula", "zenith", "horizon", "azure", "cascade", "luminous", "radiant", "vibrant", "prism", "cosmos"}
)

func NewClient(cfg Config, cache Cache) *Client {
	if cfg.DefinitionURL == "" {
		cfg.DefinitionURL = DefaultDefinitionURL
	}
	if cfg.DatamuseURL == "" {
		cfg.DatamuseURL = DefaultDatamuseURL
	}
	if cfg.TranslationURL == "" {
		cfg.TranslationURL = DefaultTranslationURL
	}
	if cfg.LanguagePair == "" {
		cfg.LanguagePair = DefaultLanguagePair
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		cache:      cache,
		now:        time.Now,
	}
}

func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

func (c *Client) WithClock(now func() time.Time) *Client {
	c.now = now
	return c
}

// lower-cases and strips everything but word characters, spaces and hyphens
func SanitizeWord(word string) string {
	return unsafeWordChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(word)), "")
}

// gathers definition, thesaurus and translation in parallel. only a missing
// definition fails the lookup; the other sources degrade to empty values
func (c *Client) Lookup(ctx context.Context, word string) (*Lookup, error) {
	safe := SanitizeWord(word)
	if safe == "" {
		return nil, ErrNotFound
	}

	log := logger.FromContext(ctx)
	result := &Lookup{Word: safe, Synonyms: []string{}, Antonyms: []string{}}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		entry, err := c.Definition(gctx, safe)
		if err != nil {
			return err
		}

		result.Entry = entry
		result.Word = entry.Word
		return nil
	})

	g.Go(func() error {
		th, err := c.Thesaurus(gctx, safe)
		if err != nil {
			log.Warn("thesaurus lookup failed", "word", safe, "error", err)
			return nil
		}

		result.Synonyms, result.Antonyms = th.Synonyms, th.Antonyms
		return nil
	})

	g.Go(func() error {
		text, err := c.Translation(gctx, safe)
		if err != nil {
			log.Warn("translation lookup failed", "word", safe, "error", err)
			return nil
		}

		result.Translation = text
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// fetches the first dictionary entry; a 404 is remembered briefly, other
// failures are not cached
func (c *Client) Definition(ctx context.Context, word string) (*Entry, error) {
	safe := SanitizeWord(word)
	if safe == "" {
		return nil, ErrNotFound
	}

	key := cachePrefix + "def_" + safe
	if cached, ok := c.cacheGet(ctx, key); ok {
		if cached == notFoundMarker {
			return nil, ErrNotFound
		}

		var entry Entry
		if err := json.Unmarshal([]byte(cached), &entry); err == nil {
			return &entry, nil
		}
	}

	var entries []Entry
	status, err := c.getJSON(ctx, c.cfg.DefinitionURL+"/"+url.PathEscape(safe), &entries)
	if status == http.StatusNotFound {
		c.cacheSet(ctx, key, notFoundMarker, NegativeCacheTTL)
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, ErrNotFound
	}

	entry := entries[0]
	c.cacheJSON(ctx, key, entry)

	return &entry, nil
}

func (c *Client) Thesaurus(ctx context.Context, word string) (*Thesaurus, error) {
	safe := SanitizeWord(word)
	if safe == "" {
		return &Thesaurus{Synonyms: []string{}, Antonyms: []string{}}, nil
	}

	key := cachePrefix + "thes_" + safe
	if cached, ok := c.cacheGet(ctx, key); ok {
		var th Thesaurus
		if err := json.Unmarshal([]byte(cached), &th); err == nil {
			return &th, nil
		}
	}

	th := &Thesaurus{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		words, err := c.datamuse(gctx, "/words", url.Values{"rel_syn": {safe}, "max": {fmt.Sprint(relatedLimit)}})
		th.Synonyms = words
		return err
	})
	g.Go(func() error {
		words, err := c.datamuse(gctx, "/words", url.Values{"rel_ant": {safe}, "max": {fmt.Sprint(relatedLimit)}})
		th.Antonyms = words
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.cacheJSON(ctx, key, th)
	return th, nil
}

// returns the translation for the configured language pair
func (c *Client) Translation(ctx context.Context, word string) (string, error) {
	safe := SanitizeWord(word)
	if safe == "" {
		return "", ErrNotFound
	}

	key := cachePrefix + "trans_" + safe
	if cached, ok := c.cacheGet(ctx, key); ok {
		return cached, nil
	}

	endpoint := c.cfg.TranslationURL + "?" + url.Values{"q": {safe}, "langpair": {c.cfg.LanguagePair}}.Encode()

	var resp translationResponse
	if _, err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return "", err
	}

	if fmt.Sprint(resp.ResponseStatus) != "200" {
		return "", fmt.Errorf("translation service returned status %v", resp.ResponseStatus)
	}

	text := resp.ResponseData.TranslatedText
	c.cacheSet(ctx, key, text, CacheTTL)

	return text, nil
}

// autocomplete for partial input; short queries yield nothing
func (c *Client) Suggest(ctx context.Context, query string) ([]string, error) {
	if len([]rune(strings.TrimSpace(query))) < minSuggestionQuery {
		return []string{}, nil
	}

	safe := SanitizeWord(query)
	if safe == "" {
		return []string{}, nil
	}

	key := cachePrefix + "sug_" + safe
	if cached, ok := c.cacheGet(ctx, key); ok {
		var words []string
		if err := json.Unmarshal([]byte(cached), &words); err == nil {
			return words, nil
		}
	}

	words, err := c.datamuse(ctx, "/sug", url.Values{"s": {safe}, "max": {fmt.Sprint(relatedLimit)}})
	if err != nil {
		return nil, err
	}

	c.cacheJSON(ctx, key, words)
	return words, nil
}

// picks the word of the day and three trending words from the UTC day of
// the year; missing definitions fall back to placeholder text
func (c *Client) Daily(ctx context.Context) *Daily {
	day := c.now().UTC().YearDay()

	wotd := wordsOfTheDay[day%len(wordsOfTheDay)]
	start := (day * 3) % len(trendingWords)
	trending := []string{
		trendingWords[start],
		trendingWords[(start+1)%len(trendingWords)],
		trendingWords[(start+2)%len(trendingWords)],
	}

	words := append([]string{wotd}, trending...)
	entries := make([]*Entry, len(words))

	var g errgroup.Group
	for i, w := range words {
		g.Go(func() error {
			entry, err := c.Definition(ctx, w)
			if err != nil {
				logger.FromContext(ctx).Debug("daily word lookup failed", "word", w, "error", err)
				return nil
			}

			entries[i] = entry
			return nil
		})
	}
	_ = g.Wait()

	daily := &Daily{
		WordOfTheDay: WordOfTheDay{Word: wotd, Definition: "Definition not found."},
		Trending:     make([]TrendingWord, 0, len(trending)),
	}

	if e := entries[0]; e != nil {
		daily.WordOfTheDay.Word = e.Word
		daily.WordOfTheDay.Pronunciation = e.Pronunciation()
		if d := e.FirstDefinition(); d != "" {
			daily.WordOfTheDay.Definition = d
		}
	}

	for i, w := range trending {
		item := TrendingWord{Word: w, Definition: "Definition not available."}
		if e := entries[i+1]; e != nil {
			item.Word = e.Word
			if d := e.FirstDefinition(); d != "" {
				item.Definition = d
			}
		}

		daily.Trending = append(daily.Trending, item)
	}

	return daily
}

// first phonetic spelling that has text
func (e *Entry) Pronunciation() string {
	for _, p := range e.Phonetics {
		if p.Text != "" {
			return p.Text
		}
	}

	return e.Phonetic
}

func (e *Entry) FirstDefinition() string {
	if len(e.Meanings) == 0 || len(e.Meanings[0].Definitions) == 0 {
		return ""
	}

	return e.Meanings[0].Definitions[0].Definition
}

func (c *Client) datamuse(ctx context.Context, path string, params url.Values) ([]string, error) {
	var items []datamuseWord
	if _, err := c.getJSON(ctx, c.cfg.DatamuseURL+path+"?"+params.Encode(), &items); err != nil {
		return nil, err
	}

	words := make([]string, 0, len(items))
	for _, item := range items {
		words = append(words, item.Word)
	}

	return words, nil
}

// issues a GET bounded by the client timeout and decodes a 200 body into
// out. the status code is returned even when err is set
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}

	return resp.StatusCode, nil
}

func (c *Client) cacheGet(ctx context.Context, key string) (string, bool) {
	if c.cache == nil {
		return "", false
	}

	value, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		logger.FromContext(ctx).Warn("dictionary cache read failed", "key", key, "error", err)
		return "", false
	}

	return value, ok
}

func (c *Client) cacheSet(ctx context.Context, key, value string, ttl time.Duration) {
	if c.cache == nil {
		return
	}

	if err := c.cache.Set(ctx, key, value, ttl); err != nil {
		logger.FromContext(ctx).Warn("dictionary cache write failed", "key", key, "error", err)
	}
}

func (c *Client) cacheJSON(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}

	c.cacheSet(ctx, key, string(data), CacheTTL)
}

// true when err means the word has no dictionary entry
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
