package dictionary

import (
	"context"
	"errors"
	"net/http"
	"time"
)

var (
	ErrNotFound = errors.New("word not found")
)

// key/value store for upstream responses
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type Config struct {
	DefinitionURL  string
	DatamuseURL    string
	TranslationURL string
	LanguagePair   string
	Timeout        time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	cache      Cache
	now        func() time.Time
}

// dictionaryapi.dev entry
type Entry struct {
	Word       string     `json:"word"`
	Phonetic   string     `json:"phonetic,omitempty"`
	Phonetics  []Phonetic `json:"phonetics"`
	Meanings   []Meaning  `json:"meanings"`
	SourceURLs []string   `json:"sourceUrls,omitempty"`
}

type Phonetic struct {
	Text  string `json:"text,omitempty"`
	Audio string `json:"audio,omitempty"`
}

type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
	Synonyms     []string     `json:"synonyms,omitempty"`
	Antonyms     []string     `json:"antonyms,omitempty"`
}

type Definition struct {
	Definition string   `json:"definition"`
	Example    string   `json:"example,omitempty"`
	Synonyms   []string `json:"synonyms,omitempty"`
	Antonyms   []string `json:"antonyms,omitempty"`
}

type Thesaurus struct {
	Synonyms []string `json:"synonyms"`
	Antonyms []string `json:"antonyms"`
}

// everything known about a word, gathered from all sources
type Lookup struct {
	Word        string   `json:"word"`
	Entry       *Entry   `json:"entry"`
	Synonyms    []string `json:"synonyms"`
	Antonyms    []string `json:"antonyms"`
	Translation string   `json:"translation,omitempty"`
}

type WordOfTheDay struct {
	Word          string `json:"word"`
	Pronunciation string `json:"pronunciation"`
	Definition    string `json:"definition"`
}

type TrendingWord struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

type Daily struct {
	WordOfTheDay WordOfTheDay   `json:"word_of_the_day"`
	Trending     []TrendingWord `json:"trending"`
}

type datamuseWord struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

type translationResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus any `json:"responseStatus"`
}
