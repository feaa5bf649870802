package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"
)

// Таблица курсов: значение каждой валюты относительно одной базовой (USD).
type RateTable map[string]float64

var ErrRateNotFound = errors.New("курс валюты не найден в таблице")

// Convert переводит сумму из одной валюты в другую по таблице курсов.
// Чистая функция: без I/O, без кеша. Если валюты совпадают, сумма
// возвращается как есть, без артефактов округления.
func Convert(amount float64, fromCurrency, toCurrency string, rates RateTable) (float64, error) {
	if fromCurrency == toCurrency {
		return amount, nil
	}
	fromRate, ok := rates[fromCurrency]
	if !ok || fromRate == 0 {
		return 0, fmt.Errorf("%w: %s", ErrRateNotFound, fromCurrency)
	}
	toRate, ok := rates[toCurrency]
	if !ok || toRate == 0 {
		return 0, fmt.Errorf("%w: %s", ErrRateNotFound, toCurrency)
	}
	return amount * (toRate / fromRate), nil
}

// RateSource тянет курсы с внешнего API и кеширует их на час.
// Поставщик обязан отдавать курс для любой используемой валюты,
// сам конвертер запасных значений не выдумывает.
type RateSource struct {
	mu         sync.Mutex
	cached     RateTable
	lastFetch  time.Time
	cacheTTL   time.Duration
	apiURL     string
	httpClient *http.Client
}

func NewRateSource() *RateSource {
	url := os.Getenv("EXCHANGE_API_URL")
	if url == "" {
		url = "https://v6.exchangerate-api.com/v6/e8c2f4afec9e1abf33fd661d/latest/"
	}
	return &RateSource{
		cacheTTL:   1 * time.Hour,
		apiURL:     url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Rates возвращает актуальную таблицу курсов. При живом кеше сеть не
// трогается; при неудачном обновлении используется устаревший кеш,
// если он есть.
func (s *RateSource) Rates() (RateTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && time.Since(s.lastFetch) < s.cacheTTL {
		return s.cached, nil
	}

	table, err := s.fetchRates()
	if err != nil {
		log.Printf("Failed to fetch exchange rates: %v", err)
		if s.cached != nil {
			log.Println("Using stale cached rates after failed fetch")
			return s.cached, nil
		}
		return nil, err
	}

	s.cached = table
	s.lastFetch = time.Now()
	return s.cached, nil
}

func (s *RateSource) fetchRates() (RateTable, error) {
	url := s.apiURL + "USD" // Base currency is set to USD for better compatibility

	var lastErr error
	for i := 0; i < 3; i++ {
		resp, err := s.httpClient.Get(url)
		if err != nil {
			lastErr = err
			log.Printf("Error fetching rates (attempt %d): %v", i+1, err)
			time.Sleep(2 * time.Second)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = errors.New("API returned non-OK status")
			log.Printf("API returned non-OK status: %d (attempt %d)", resp.StatusCode, i+1)
			time.Sleep(2 * time.Second)
			continue
		}

		var response struct {
			ConversionRates map[string]float64 `json:"conversion_rates"`
		}
		err = json.NewDecoder(resp.Body).Decode(&response)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			log.Printf("Error decoding API response (attempt %d): %v", i+1, err)
			time.Sleep(2 * time.Second)
			continue
		}

		if len(response.ConversionRates) == 0 {
			lastErr = errors.New("no valid data to update cache")
			log.Println(lastErr)
			time.Sleep(2 * time.Second)
			continue
		}

		table := make(RateTable, len(response.ConversionRates))
		for code, rate := range response.ConversionRates {
			if rate > 0 {
				table[code] = rate
			} else {
				log.Printf("Invalid rate for currency: %s", code)
			}
		}
		return table, nil
	}

	return nil, lastErr
}
